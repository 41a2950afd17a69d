// Package privacy implements the data anonymization engine: pseudonymous
// subject identifiers, per-data-type generalization rules, Laplace noise for
// differential privacy, the privacy-method pipeline, and utility scoring.
//
// The engine is stateless and free of side effects; persistence of originals
// and audit entries is owned by the anonymization domain.
package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// DataType identifies a category of health records eligible for anonymization.
type DataType string

const (
	DataTypeVitalSigns     DataType = "vital_signs"
	DataTypeHealthRecords  DataType = "health_records"
	DataTypeMedicalRecords DataType = "medical_records"
	DataTypeMedications    DataType = "medications"
	DataTypeTestResults    DataType = "test_results"
	DataTypeGenomicData    DataType = "genomic_data"
	DataTypeFamilyHistory  DataType = "family_history"
)

// AllDataTypes lists every data type the engine knows how to anonymize.
var AllDataTypes = []DataType{
	DataTypeVitalSigns,
	DataTypeHealthRecords,
	DataTypeMedicalRecords,
	DataTypeMedications,
	DataTypeTestResults,
	DataTypeGenomicData,
	DataTypeFamilyHistory,
}

var validDataTypes = func() map[DataType]bool {
	m := make(map[DataType]bool, len(AllDataTypes))
	for _, dt := range AllDataTypes {
		m[dt] = true
	}
	return m
}()

// ParseDataType validates a raw data type string.
func ParseDataType(s string) (DataType, bool) {
	dt := DataType(s)
	return dt, validDataTypes[dt]
}

// Method selects a privacy model. Each stronger model in the chain is built
// on top of the previous one; differential privacy stands alone.
type Method string

const (
	MethodBasic                Method = "basic"
	MethodKAnonymity           Method = "k_anonymity"
	MethodLDiversity           Method = "l_diversity"
	MethodTCloseness           Method = "t_closeness"
	MethodDifferentialPrivacy Method = "differential_privacy"
)

// Documented targets for the formal models. k/l/t are not numerically
// enforced; they describe the intent of the generalization rules.
const (
	TargetK        = 5
	TargetL        = 3
	TargetT        = 0.2
	DefaultEpsilon = 1.0
)

// NormalizeMethod maps a raw method string onto a supported Method. Unknown
// values degrade to MethodBasic rather than erroring; callers that want
// strict validation must check before calling the engine.
func NormalizeMethod(s string) Method {
	switch Method(s) {
	case MethodBasic, MethodKAnonymity, MethodLDiversity, MethodTCloseness, MethodDifferentialPrivacy:
		return Method(s)
	default:
		return MethodBasic
	}
}

// Record is an opaque field-map view of one health record as supplied by the
// record store. The engine never depends on a concrete schema beyond the
// field names its generalization rules look for.
type Record map[string]interface{}

// Clone returns a shallow copy of the record. Nested maps (e.g. SNP maps)
// are copied one level deep so generalization never mutates the original.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		if m, ok := v.(map[string]interface{}); ok {
			mc := make(map[string]interface{}, len(m))
			for mk, mv := range m {
				mc[mk] = mv
			}
			out[k] = mc
			continue
		}
		out[k] = v
	}
	return out
}

// DataHash returns the SHA-256 hex digest of the JSON-serialized record set.
// It is a tamper-evidence token for the audit trail, never a reversal key.
func DataHash(records []Record) string {
	b, _ := json.Marshal(records)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
