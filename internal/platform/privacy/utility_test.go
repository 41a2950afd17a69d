package privacy

import (
	"math"
	"testing"
)

func TestUtilityScore_IdenticalRecordsScoreFull(t *testing.T) {
	records := []Record{
		{"type": "heart_rate", "value": 72.0},
		{"type": "heart_rate", "value": 80.0},
	}
	if got := UtilityScore(records, records); got != 100 {
		t.Errorf("identical sets must score 100, got %f", got)
	}
}

func TestUtilityScore_EmptyOriginals(t *testing.T) {
	// No originals: zero record loss but total information loss.
	if got := UtilityScore(nil, nil); got != 30 {
		t.Errorf("expected 30 for empty input, got %f", got)
	}
}

func TestUtilityScore_RecordLossOnly(t *testing.T) {
	orig := []Record{{"a": 1.0}, {"a": 2.0}, {"a": 3.0}, {"a": 4.0}}
	anon := []Record{{"a": 1.0}, {"a": 2.0}}
	// 50% record loss costs 15 points; first-record fields are identical.
	if got := UtilityScore(orig, anon); math.Abs(got-85) > 1e-9 {
		t.Errorf("expected 85, got %f", got)
	}
}

func TestUtilityScore_FirstRecordHeuristicOnly(t *testing.T) {
	// 10 records, field changed in records 2..4 but NOT in the first:
	// information loss must be computed from the first pair only, so the
	// later changes cost nothing.
	orig := make([]Record, 10)
	anon := make([]Record, 10)
	for i := range orig {
		orig[i] = Record{"type": "heart_rate", "value": 70.0, "unit": "bpm"}
		anon[i] = orig[i].Clone()
	}
	for i := 1; i < 4; i++ {
		anon[i]["value"] = "60-99"
	}
	if got := UtilityScore(orig, anon); got != 100 {
		t.Errorf("changes outside the first record must not score, got %f", got)
	}
}

func TestUtilityScore_FirstRecordFieldChange(t *testing.T) {
	orig := []Record{{"type": "heart_rate", "value": 70.0, "unit": "bpm"}}
	anon := []Record{{"type": "heart_rate", "value": "60-99", "unit": "bpm"}}
	// 1 of 3 compared fields lost: 100 - 70*(1/3).
	want := 100 - 70.0/3.0
	if got := UtilityScore(orig, anon); math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestUtilityScore_StrippedFieldsNotCompared(t *testing.T) {
	// Fields absent from the anonymized record (stripped identifiers) are
	// skipped, not counted as lost.
	orig := []Record{{"id": "x", "value": 70.0}}
	anon := []Record{{"value": 70.0}}
	if got := UtilityScore(orig, anon); got != 100 {
		t.Errorf("stripped field must not be compared, got %f", got)
	}
}

func TestUtilityScore_AlwaysInBounds(t *testing.T) {
	cases := [][2][]Record{
		{nil, nil},
		{{{"a": 1.0}}, nil},
		{{{"a": 1.0}, {"a": 2.0}}, {{"a": "lost"}}},
		{nil, {{"a": 1.0}}},
	}
	for i, c := range cases {
		got := UtilityScore(c[0], c[1])
		if got < 0 || got > 100 {
			t.Errorf("case %d: score %f out of [0,100]", i, got)
		}
	}
}
