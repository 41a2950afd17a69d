package familyhistory

import (
	"time"

	"github.com/google/uuid"
)

// FamilyMember records a relative's health history: who they are and what
// condition they had, with coarse life dates for hereditary risk analysis.
type FamilyMember struct {
	ID            uuid.UUID `db:"id" json:"id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	Relation      string    `db:"relation" json:"relation"`
	Condition     string    `db:"condition" json:"condition"`
	ConditionCode string    `db:"condition_code" json:"condition_code,omitempty"`
	BirthYear     *int      `db:"birth_year" json:"birth_year,omitempty"`
	DeathYear     *int      `db:"death_year" json:"death_year,omitempty"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
