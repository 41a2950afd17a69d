package privacy

import (
	"math/rand"
	"reflect"
	"testing"
)

func newTestPipeline() *Pipeline {
	return NewPipeline(
		NewGeneralizer(rand.New(rand.NewSource(1))),
		NewLaplaceMechanism(rand.New(rand.NewSource(1))),
		DefaultEpsilon,
	)
}

func sampleVitals() []Record {
	return []Record{
		{
			"id":          "v-1",
			"user_id":     "u-1",
			"type":        "heart_rate",
			"value":       72.0,
			"unit":        "bpm",
			"measured_at": "2024-06-12T08:30:00Z",
		},
		{
			"id":          "v-2",
			"user_id":     "u-1",
			"type":        "heart_rate",
			"value":       118.0,
			"unit":        "bpm",
			"measured_at": "2024-06-13T19:00:00Z",
		},
	}
}

func TestPipeline_Basic_StripsIdentifiersOnly(t *testing.T) {
	p := newTestPipeline()
	out := p.Apply(MethodBasic, sampleVitals(), DataTypeVitalSigns)
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if _, ok := out[0]["id"]; ok {
		t.Error("basic must strip id")
	}
	if out[0]["value"] != 72.0 {
		t.Errorf("basic must not bucket values, got %v", out[0]["value"])
	}
}

func TestPipeline_KAnonymity_Generalizes(t *testing.T) {
	p := newTestPipeline()
	out := p.Apply(MethodKAnonymity, sampleVitals(), DataTypeVitalSigns)
	if out[0]["value"] != "60-99" {
		t.Errorf("expected bucket 60-99, got %v", out[0]["value"])
	}
	if out[1]["value"] != "100-119" {
		t.Errorf("expected bucket 100-119, got %v", out[1]["value"])
	}
	if out[0]["measured_at"] != "2024-06-10T00:00:00Z" {
		t.Errorf("expected ISO week Monday, got %v", out[0]["measured_at"])
	}
}

// l_diversity and t_closeness wrap the previous stage; until their
// enforcement passes gain bodies the output must be at least as generalized
// as k_anonymity, i.e. identical today.
func TestPipeline_MonotonicLossAcrossChain(t *testing.T) {
	records := sampleVitals()
	kOut := newTestPipeline().Apply(MethodKAnonymity, records, DataTypeVitalSigns)
	lOut := newTestPipeline().Apply(MethodLDiversity, records, DataTypeVitalSigns)
	tOut := newTestPipeline().Apply(MethodTCloseness, records, DataTypeVitalSigns)

	if !reflect.DeepEqual(kOut, lOut) {
		t.Error("l_diversity output diverged from its k_anonymity base")
	}
	if !reflect.DeepEqual(lOut, tOut) {
		t.Error("t_closeness output diverged from its l_diversity base")
	}
}

func TestPipeline_UnknownMethodFallsBackToBasic(t *testing.T) {
	records := sampleVitals()
	unknown := newTestPipeline().Apply(Method("nonexistent"), records, DataTypeVitalSigns)
	basic := newTestPipeline().Apply(MethodBasic, records, DataTypeVitalSigns)
	if !reflect.DeepEqual(unknown, basic) {
		t.Error("unknown method must behave exactly like basic")
	}
}

func TestPipeline_DifferentialPrivacy_NoisesNumericFields(t *testing.T) {
	p := newTestPipeline()
	out := p.Apply(MethodDifferentialPrivacy, sampleVitals(), DataTypeVitalSigns)

	v, ok := out[0]["value"].(float64)
	if !ok {
		t.Fatalf("expected numeric value after noising, got %T", out[0]["value"])
	}
	if v < 0 {
		t.Errorf("noised value must be clamped at zero, got %f", v)
	}
	if out[0]["unit"] != "bpm" {
		t.Errorf("non-numeric field must pass through, got %v", out[0]["unit"])
	}
	if out[0]["measured_at"] != "2024-06-12T08:30:00Z" {
		t.Errorf("timestamps must pass through under differential privacy, got %v", out[0]["measured_at"])
	}
}

func TestPipeline_DifferentialPrivacy_StripsIdentifiers(t *testing.T) {
	p := newTestPipeline()
	records := sampleVitals()
	records[0]["created_at"] = "2024-06-12T08:31:00Z"
	out := p.Apply(MethodDifferentialPrivacy, records, DataTypeVitalSigns)

	for _, rec := range out {
		for _, f := range directIdentifierFields {
			if v, ok := rec[f]; ok {
				t.Errorf("expected %s to be stripped, got %v", f, v)
			}
		}
	}
}

func TestPipeline_DifferentialPrivacy_DoesNotMutateOriginals(t *testing.T) {
	p := newTestPipeline()
	records := sampleVitals()
	p.Apply(MethodDifferentialPrivacy, records, DataTypeVitalSigns)
	if records[0]["value"] != 72.0 {
		t.Errorf("original record mutated: %v", records[0]["value"])
	}
}

func TestNormalizeMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"basic", MethodBasic},
		{"k_anonymity", MethodKAnonymity},
		{"l_diversity", MethodLDiversity},
		{"t_closeness", MethodTCloseness},
		{"differential_privacy", MethodDifferentialPrivacy},
		{"", MethodBasic},
		{"K_ANONYMITY", MethodBasic},
		{"nonexistent", MethodBasic},
	}
	for _, tt := range tests {
		if got := NormalizeMethod(tt.in); got != tt.want {
			t.Errorf("NormalizeMethod(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
