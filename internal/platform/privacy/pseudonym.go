package privacy

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/rs/zerolog"
)

// defaultSalt keeps the engine functional when no salt is configured. A
// deployment running on it gets linkable but trivially reversible
// pseudonyms, so construction logs a loud operator warning.
const defaultSalt = "pulsevault-insecure-default-salt"

const pseudonymHexLen = 16

// Pseudonymizer derives a stable anonymous subject identifier from a real
// subject identifier. The same subject always maps to the same pseudonym
// under one salt, keeping longitudinal analyses linkable without exposing
// the real identifier.
type Pseudonymizer struct {
	salt        string
	defaultSalt bool
}

// NewPseudonymizer builds a Pseudonymizer with the configured secret salt.
// An empty salt falls back to the built-in default and is reported as an
// operational misconfiguration.
func NewPseudonymizer(salt string, logger zerolog.Logger) *Pseudonymizer {
	if salt == "" {
		logger.Warn().
			Str("component", "privacy.pseudonymizer").
			Msg("ANONYMIZATION_SALT not configured; using built-in default salt. Pseudonyms are NOT irreversible in this configuration")
		return &Pseudonymizer{salt: defaultSalt, defaultSalt: true}
	}
	return &Pseudonymizer{salt: salt}
}

// Pseudonymize returns the anonymous identifier for subjectID: a fixed-length
// hex prefix of SHA-256(subjectID || salt) under a literal "anon_" prefix.
func (p *Pseudonymizer) Pseudonymize(subjectID string) string {
	sum := sha256.Sum256([]byte(subjectID + p.salt))
	return "anon_" + hex.EncodeToString(sum[:])[:pseudonymHexLen]
}

// UsingDefaultSalt reports whether the fallback salt is in effect, so the
// health/readiness surface can flag the misconfiguration.
func (p *Pseudonymizer) UsingDefaultSalt() bool {
	return p.defaultSalt
}
