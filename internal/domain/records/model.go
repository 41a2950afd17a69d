package records

import (
	"time"

	"github.com/google/uuid"
)

// HealthRecord is a free-form health journal entry such as a symptom note or
// lifestyle observation.
type HealthRecord struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	RecordType  string    `db:"record_type" json:"record_type"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	RecordedAt  time.Time `db:"recorded_at" json:"recorded_at"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// MedicalRecord is a clinical visit: where the user was seen and what was
// diagnosed, coded in ICD-10.
type MedicalRecord struct {
	ID            uuid.UUID `db:"id" json:"id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	Hospital      string    `db:"hospital" json:"hospital"`
	DiagnosisCode string    `db:"diagnosis_code" json:"diagnosis_code"`
	DiagnosisName string    `db:"diagnosis_name" json:"diagnosis_name"`
	VisitDate     time.Time `db:"visit_date" json:"visit_date"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Medication is a prescribed or self-reported medication course.
type Medication struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UserID    uuid.UUID  `db:"user_id" json:"user_id"`
	Name      string     `db:"name" json:"name"`
	Dosage    string     `db:"dosage" json:"dosage"`
	Frequency string     `db:"frequency" json:"frequency"`
	StartDate time.Time  `db:"start_date" json:"start_date"`
	EndDate   *time.Time `db:"end_date" json:"end_date,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// TestResult is one laboratory or imaging result.
type TestResult struct {
	ID             uuid.UUID `db:"id" json:"id"`
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	TestName       string    `db:"test_name" json:"test_name"`
	ResultValue    float64   `db:"result_value" json:"result_value"`
	Unit           string    `db:"unit" json:"unit"`
	ReferenceRange *string   `db:"reference_range" json:"reference_range,omitempty"`
	TestedAt       time.Time `db:"tested_at" json:"tested_at"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
