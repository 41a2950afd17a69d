package privacy

import (
	"fmt"
	"math/rand"
	"testing"
	"time"
)

func newTestGeneralizer() *Generalizer {
	return NewGeneralizer(rand.New(rand.NewSource(1)))
}

func TestGeneralize_StripsDirectIdentifiers(t *testing.T) {
	g := newTestGeneralizer()
	rec := Record{
		"id":         "rec-1",
		"user_id":    "user-1",
		"created_at": "2024-01-01T00:00:00Z",
		"updated_at": "2024-01-02T00:00:00Z",
		"note":       "keep me",
	}
	out := g.Generalize(rec, DataTypeMedications)
	for _, f := range []string{"id", "user_id", "created_at", "updated_at"} {
		if _, ok := out[f]; ok {
			t.Errorf("direct identifier %q not stripped", f)
		}
	}
	if out["note"] != "keep me" {
		t.Errorf("non-identifier field altered: %v", out["note"])
	}
	// Original must be untouched.
	if _, ok := rec["id"]; !ok {
		t.Error("generalization mutated the original record")
	}
}

func TestGeneralize_UnknownDataTypeStripsOnly(t *testing.T) {
	g := newTestGeneralizer()
	out := g.Generalize(Record{"id": "x", "value": 87.0}, DataType("bogus"))
	if _, ok := out["id"]; ok {
		t.Error("expected id stripped for unknown data type")
	}
	if out["value"] != 87.0 {
		t.Errorf("unknown data type must not bucket values, got %v", out["value"])
	}
}

func TestVitalBucket_HeartRateBoundaries(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{59, "< 60"},
		{60, "60-99"},
		{99, "60-99"},
		{100, "100-119"},
		{119, "100-119"},
		{120, "≥ 120"},
		{180, "≥ 120"},
	}
	for _, tt := range tests {
		if got := vitalBucket("heart_rate", tt.value); got != tt.want {
			t.Errorf("heart_rate %.0f: expected %q, got %q", tt.value, tt.want, got)
		}
	}
}

func TestVitalBucket_TemperatureBoundaries(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{35.9, "< 36.0"},
		{36.0, "36.0-37.4"},
		{37.4, "36.0-37.4"},
		{37.5, "≥ 37.5"},
		{40.1, "≥ 37.5"},
	}
	for _, tt := range tests {
		if got := vitalBucket("temperature", tt.value); got != tt.want {
			t.Errorf("temperature %.1f: expected %q, got %q", tt.value, tt.want, got)
		}
	}
}

func TestVitalBucket_UnknownTypeCollapses(t *testing.T) {
	if got := vitalBucket("blood_oxygen", 97); got != generalizedValue {
		t.Errorf("expected generic marker for unknown vital type, got %q", got)
	}
}

func TestGeneralize_VitalSigns_MalformedValueDegrades(t *testing.T) {
	g := newTestGeneralizer()
	out := g.Generalize(Record{"type": "heart_rate", "value": map[string]interface{}{"odd": true}}, DataTypeVitalSigns)
	if out["value"] != generalizedValue {
		t.Errorf("malformed value must degrade to marker, got %v", out["value"])
	}
}

func TestGeneralize_VitalSigns_ISOWeekMonday(t *testing.T) {
	g := newTestGeneralizer()
	// 2024-06-12 is a Wednesday; the Monday of that ISO week is 2024-06-10.
	wantMonday := "2024-06-10T00:00:00Z"
	for _, day := range []string{
		"2024-06-10T09:30:00Z", // Monday
		"2024-06-12T23:59:59Z", // Wednesday
		"2024-06-16T01:00:00Z", // Sunday
	} {
		out := g.Generalize(Record{"measured_at": day}, DataTypeVitalSigns)
		if out["measured_at"] != wantMonday {
			t.Errorf("timestamp %s: expected %s, got %v", day, wantMonday, out["measured_at"])
		}
	}
}

func TestGeneralize_VitalSigns_TimeValueAccepted(t *testing.T) {
	g := newTestGeneralizer()
	ts := time.Date(2024, 6, 13, 14, 0, 0, 0, time.UTC) // Thursday
	out := g.Generalize(Record{"measured_at": ts}, DataTypeVitalSigns)
	if out["measured_at"] != "2024-06-10T00:00:00Z" {
		t.Errorf("expected Monday truncation, got %v", out["measured_at"])
	}
}

func TestHospitalRegion(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Seoul National University Hospital", "Seoul region"},
		{"Busan Medical Center", "Busan region"},
		{"Daegu Catholic Hospital", "Daegu region"},
		{"Incheon St. Mary", "Incheon region"},
		{"Gwangju Veterans Hospital", "Gwangju region"},
		{"Daejeon Sun Hospital", "Daejeon region"},
		{"Ulsan University Hospital", "Ulsan region"},
		{"Jeju General Hospital", "other region"},
	}
	for _, tt := range tests {
		if got := hospitalRegion(tt.name); got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestICD10Chapter(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"A09", "A00-B99"},
		{"B20.1", "A00-B99"},
		{"C50", "C00-D48"},
		{"D21", "C00-D48"},
		{"D48.9", "C00-D48"},
		{"D50", "OTHER"},
		{"E11", "E00-E90"},
		{"I10", "I00-I99"},
		{"J45.9", "J00-J99"},
		{"K52", "OTHER"},
		{"", "OTHER"},
	}
	for _, tt := range tests {
		if got := icd10Chapter(tt.code); got != tt.want {
			t.Errorf("code %q: expected %q, got %q", tt.code, tt.want, got)
		}
	}
}

func TestGeneralize_MedicalRecords_VisitDateMonthFloor(t *testing.T) {
	g := newTestGeneralizer()
	out := g.Generalize(Record{"visit_date": "2024-03-17T10:00:00Z"}, DataTypeMedicalRecords)
	if out["visit_date"] != "2024-03-01T00:00:00Z" {
		t.Errorf("expected month floor, got %v", out["visit_date"])
	}
}

func TestGeneralize_GenomicData_MasksRoughlyTenPercent(t *testing.T) {
	g := NewGeneralizer(rand.New(rand.NewSource(42)))
	snps := make(map[string]interface{}, 1000)
	for i := 0; i < 1000; i++ {
		snps[fmt.Sprintf("rs%04d", i)] = "AA"
	}
	rec := Record{"snps": snps}
	out := g.Generalize(rec, DataTypeGenomicData)
	masked := 0
	for _, v := range out["snps"].(map[string]interface{}) {
		if v == maskedValue {
			masked++
		}
	}
	// 10% of ~1000 with generous tolerance for the seeded source.
	if masked < 50 || masked > 180 {
		t.Errorf("expected roughly 10%% masked, got %d of %d", masked, len(snps))
	}
	// Original SNP map untouched.
	for _, v := range snps {
		if v == maskedValue {
			t.Fatal("generalization mutated the original SNP map")
		}
	}
}

func TestGeneralize_FamilyHistory_DecadeFloor(t *testing.T) {
	g := newTestGeneralizer()
	out := g.Generalize(Record{"birth_year": 1957, "death_year": 2023.0}, DataTypeFamilyHistory)
	if out["birth_year"] != 1950 {
		t.Errorf("expected birth_year 1950, got %v", out["birth_year"])
	}
	if out["death_year"] != 2020 {
		t.Errorf("expected death_year 2020, got %v", out["death_year"])
	}
}

func TestGeneralize_FamilyHistory_MalformedYearDegrades(t *testing.T) {
	g := newTestGeneralizer()
	out := g.Generalize(Record{"birth_year": "unknown-year"}, DataTypeFamilyHistory)
	if out["birth_year"] != generalizedValue {
		t.Errorf("expected generic marker, got %v", out["birth_year"])
	}
}
