package privacy

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestPseudonymize_Deterministic(t *testing.T) {
	p := NewPseudonymizer("test-salt", zerolog.Nop())
	a := p.Pseudonymize("user-123")
	b := p.Pseudonymize("user-123")
	if a != b {
		t.Errorf("same subject produced different pseudonyms: %q vs %q", a, b)
	}
}

func TestPseudonymize_DistinctSubjects(t *testing.T) {
	p := NewPseudonymizer("test-salt", zerolog.Nop())
	if p.Pseudonymize("user-123") == p.Pseudonymize("user-124") {
		t.Error("different subjects produced identical pseudonyms")
	}
}

func TestPseudonymize_SaltChangesOutput(t *testing.T) {
	a := NewPseudonymizer("salt-a", zerolog.Nop()).Pseudonymize("user-123")
	b := NewPseudonymizer("salt-b", zerolog.Nop()).Pseudonymize("user-123")
	if a == b {
		t.Error("different salts produced identical pseudonyms")
	}
}

func TestPseudonymize_Format(t *testing.T) {
	p := NewPseudonymizer("test-salt", zerolog.Nop())
	got := p.Pseudonymize("user-123")
	if !strings.HasPrefix(got, "anon_") {
		t.Errorf("expected anon_ prefix, got %q", got)
	}
	if len(got) != len("anon_")+pseudonymHexLen {
		t.Errorf("expected %d chars after prefix, got %q", pseudonymHexLen, got)
	}
	for _, c := range got[len("anon_"):] {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Errorf("non-hex character %q in pseudonym %q", c, got)
		}
	}
}

func TestNewPseudonymizer_EmptySaltFallsBack(t *testing.T) {
	p := NewPseudonymizer("", zerolog.Nop())
	if !p.UsingDefaultSalt() {
		t.Error("expected default-salt fallback to be flagged")
	}
	// Still deterministic on the fallback salt.
	if p.Pseudonymize("u") != p.Pseudonymize("u") {
		t.Error("fallback salt broke determinism")
	}
}

func TestNewPseudonymizer_ConfiguredSaltNotFlagged(t *testing.T) {
	p := NewPseudonymizer("s3cret", zerolog.Nop())
	if p.UsingDefaultSalt() {
		t.Error("configured salt wrongly flagged as default")
	}
}
