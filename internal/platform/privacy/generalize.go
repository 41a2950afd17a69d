package privacy

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"
)

// generalizedValue is the generic fallback marker: it replaces values the
// rules cannot bucket (unknown vital types, malformed numbers, unparseable
// dates) so one bad field never aborts a record set.
const generalizedValue = "generalized_value"

// maskedValue replaces SNP values selected for probabilistic redaction.
const maskedValue = "MASKED"

// snpMaskProbability is the per-key chance that a SNP entry is redacted.
const snpMaskProbability = 0.10

// directIdentifierFields are stripped from every record regardless of type.
var directIdentifierFields = []string{"id", "user_id", "created_at", "updated_at"}

// Generalizer applies the per-data-type generalization rules. Rules are pure
// except for genomic SNP masking, which draws from the injected random
// source; inject a seeded source in tests for deterministic output.
// The source is shared across concurrent callers, so draws are serialized.
type Generalizer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGeneralizer builds a Generalizer. A nil source falls back to a
// time-seeded one for production use.
func NewGeneralizer(rnd *rand.Rand) *Generalizer {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generalizer{rnd: rnd}
}

// Generalize returns a coarsened copy of rec for the given data type. Unknown
// data types fall through to direct-identifier stripping only.
func (g *Generalizer) Generalize(rec Record, dataType DataType) Record {
	out := rec.Clone()
	for _, f := range directIdentifierFields {
		delete(out, f)
	}

	switch dataType {
	case DataTypeVitalSigns:
		g.generalizeVitalSigns(out)
	case DataTypeMedicalRecords:
		g.generalizeMedicalRecords(out)
	case DataTypeGenomicData:
		g.generalizeGenomicData(out)
	case DataTypeFamilyHistory:
		g.generalizeFamilyHistory(out)
	}
	return out
}

func (g *Generalizer) generalizeVitalSigns(rec Record) {
	if ts, ok := rec["measured_at"]; ok {
		if t, ok := toTime(ts); ok {
			rec["measured_at"] = isoWeekMonday(t).Format(time.RFC3339)
		} else {
			rec["measured_at"] = generalizedValue
		}
	}

	vitalType, _ := rec["type"].(string)
	if raw, ok := rec["value"]; ok {
		if v, ok := toFloat(raw); ok {
			rec["value"] = vitalBucket(vitalType, v)
		} else {
			rec["value"] = generalizedValue
		}
	}
}

// vitalBucket maps a numeric vital reading to its named range. Types without
// documented thresholds collapse to the generic marker.
func vitalBucket(vitalType string, v float64) string {
	switch vitalType {
	case "heart_rate":
		switch {
		case v < 60:
			return "< 60"
		case v < 100:
			return "60-99"
		case v < 120:
			return "100-119"
		default:
			return "≥ 120"
		}
	case "temperature":
		switch {
		case v < 36.0:
			return "< 36.0"
		case v < 37.5:
			return "36.0-37.4"
		default:
			return "≥ 37.5"
		}
	default:
		return generalizedValue
	}
}

// hospitalRegions maps a substring of the hospital name to its region label.
// Order matters only for names matching several cities; first match wins.
var hospitalRegions = []struct {
	substr string
	region string
}{
	{"Seoul", "Seoul region"},
	{"Busan", "Busan region"},
	{"Daegu", "Daegu region"},
	{"Incheon", "Incheon region"},
	{"Gwangju", "Gwangju region"},
	{"Daejeon", "Daejeon region"},
	{"Ulsan", "Ulsan region"},
}

func (g *Generalizer) generalizeMedicalRecords(rec Record) {
	if h, ok := rec["hospital"].(string); ok {
		rec["hospital"] = hospitalRegion(h)
	}
	if code, ok := rec["diagnosis_code"].(string); ok {
		rec["diagnosis_code"] = icd10Chapter(code)
	}
	if vd, ok := rec["visit_date"]; ok {
		if t, ok := toTime(vd); ok {
			rec["visit_date"] = monthFloor(t).Format(time.RFC3339)
		} else {
			rec["visit_date"] = generalizedValue
		}
	}
}

func hospitalRegion(name string) string {
	for _, hr := range hospitalRegions {
		if strings.Contains(name, hr.substr) {
			return hr.region
		}
	}
	return "other region"
}

// icd10Chapter buckets an ICD-10 code into a coarse chapter range.
func icd10Chapter(code string) string {
	if code == "" {
		return "OTHER"
	}
	letter := code[0]
	switch letter {
	case 'A', 'B':
		return "A00-B99"
	case 'C':
		return "C00-D48"
	case 'D':
		if n, ok := icd10Number(code); ok && n <= 48 {
			return "C00-D48"
		}
		return "OTHER"
	case 'E':
		return "E00-E90"
	case 'I':
		return "I00-I99"
	case 'J':
		return "J00-J99"
	default:
		return "OTHER"
	}
}

func icd10Number(code string) (int, bool) {
	digits := code[1:]
	if i := strings.IndexByte(digits, '.'); i >= 0 {
		digits = digits[:i]
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// generalizeGenomicData redacts each SNP entry independently with fixed
// probability. This is deliberately stochastic per call: repeated runs over
// identical input produce different maskings.
func (g *Generalizer) generalizeGenomicData(rec Record) {
	snps, ok := rec["snps"].(map[string]interface{})
	if !ok {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for k := range snps {
		if g.rnd.Float64() < snpMaskProbability {
			snps[k] = maskedValue
		}
	}
}

func (g *Generalizer) generalizeFamilyHistory(rec Record) {
	for _, field := range []string{"birth_year", "death_year"} {
		raw, ok := rec[field]
		if !ok || raw == nil {
			continue
		}
		if y, ok := toFloat(raw); ok {
			rec[field] = int(y/10) * 10
		} else {
			rec[field] = generalizedValue
		}
	}
}

// isoWeekMonday truncates t to 00:00:00 UTC on the Monday of its ISO week.
func isoWeekMonday(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := t.AddDate(0, 0, 1-weekday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

func monthFloor(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func toTime(v interface{}) (time.Time, bool) {
	switch tv := v.(type) {
	case time.Time:
		return tv, true
	case *time.Time:
		if tv == nil {
			return time.Time{}, false
		}
		return *tv, true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, tv); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	case fmt.Stringer:
		f, err := strconv.ParseFloat(n.String(), 64)
		return f, err == nil
	}
	return 0, false
}
