package anonymization

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulsevault/pulsevault/internal/platform/privacy"
)

// ErrInvalidRequest marks anonymization requests the orchestrator refuses to
// act on. Handlers translate it to a 400.
var ErrInvalidRequest = errors.New("invalid anonymization request")

// Request asks for an anonymized extract of one user's data. UserID is the
// authenticated subject and never comes from the request body.
type Request struct {
	UserID    uuid.UUID `json:"-"`
	DataTypes []string  `json:"data_types"`
	Method    string    `json:"method"`
	Purpose   string    `json:"purpose"`
	Epsilon   float64   `json:"epsilon,omitempty"`
}

// Validate rejects requests the orchestrator cannot act on. The method is
// not validated here: unknown methods degrade to basic stripping inside the
// engine.
func (r *Request) Validate() error {
	if r.UserID == uuid.Nil {
		return fmt.Errorf("%w: user_id is required", ErrInvalidRequest)
	}
	if len(r.DataTypes) == 0 {
		return fmt.Errorf("%w: data_types must not be empty", ErrInvalidRequest)
	}
	for _, raw := range r.DataTypes {
		if _, ok := privacy.ParseDataType(raw); !ok {
			return fmt.Errorf("%w: unknown data type %s", ErrInvalidRequest, raw)
		}
	}
	if r.Purpose == "" {
		return fmt.Errorf("%w: purpose is required", ErrInvalidRequest)
	}
	return nil
}

// DataTypeResult is the per-data-type outcome of one anonymization run.
// OriginalDataHash digests the JSON-serialized original record set, so the
// audit trail can attest to exactly what data was fed in.
type DataTypeResult struct {
	DataType         string           `json:"data_type"`
	Method           string           `json:"method"`
	RecordCount      int              `json:"record_count"`
	UtilityScore     float64          `json:"utility_score"`
	OriginalDataHash string           `json:"original_data_hash"`
	Records          []privacy.Record `json:"records"`
}

// Result is the full outcome of one anonymization run. SubjectPseudonym
// replaces the real user identifier in everything that leaves the system;
// DataHash digests the combined original record sets across all included
// data types.
type Result struct {
	SubjectPseudonym string            `json:"subject_pseudonym"`
	Method           string            `json:"method"`
	Purpose          string            `json:"purpose"`
	Results          []*DataTypeResult `json:"results"`
	DataHash         string            `json:"data_hash"`
	CreatedAt        time.Time         `json:"created_at"`
}

// Log is one append-only audit entry: who, what, why, and a tamper-evidence
// hash of the anonymized output. The compliance trail keeps the real subject
// id alongside the pseudonym; the trail itself is an operator-only surface.
type Log struct {
	ID               uuid.UUID `db:"id" json:"id"`
	SubjectID        uuid.UUID `db:"subject_id" json:"subject_id"`
	SubjectPseudonym string    `db:"subject_pseudonym" json:"subject_pseudonym"`
	Method           string    `db:"method" json:"method"`
	Purpose          string    `db:"purpose" json:"purpose"`
	DataTypes        []string  `db:"data_types" json:"data_types"`
	RecordCount      int       `db:"record_count" json:"record_count"`
	UtilityScore     float64   `db:"utility_score" json:"utility_score"`
	DataHash         string    `db:"data_hash" json:"data_hash"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// LogFilter narrows log listings.
type LogFilter struct {
	SubjectID        uuid.UUID
	SubjectPseudonym string
	Purpose          string
}

// QualityBuckets is the high/medium/low breakdown reported alongside the
// aggregate counts. The proportions are a fixed illustrative split, not an
// aggregate of stored per-run scores.
type QualityBuckets struct {
	High   float64 `json:"high"`
	Medium float64 `json:"medium"`
	Low    float64 `json:"low"`
}

// Stats summarizes audit-trail activity for the operations view.
type Stats struct {
	TotalRuns      int            `json:"total_runs"`
	RunsByDataType map[string]int `json:"runs_by_data_type"`
	RunsByPurpose  map[string]int `json:"runs_by_purpose"`
	Quality        QualityBuckets `json:"quality_buckets"`
}
