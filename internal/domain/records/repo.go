package records

import (
	"context"

	"github.com/google/uuid"
)

// HealthRecordRepository defines persistence for health journal entries.
type HealthRecordRepository interface {
	CreateHealthRecord(ctx context.Context, r *HealthRecord) error
	GetHealthRecord(ctx context.Context, id uuid.UUID) (*HealthRecord, error)
	UpdateHealthRecord(ctx context.Context, r *HealthRecord) error
	DeleteHealthRecord(ctx context.Context, id uuid.UUID) error
	ListHealthRecords(ctx context.Context, userID uuid.UUID, recordType string, limit, offset int) ([]*HealthRecord, int, error)
}

// MedicalRecordRepository defines persistence for clinical visit records.
type MedicalRecordRepository interface {
	CreateMedicalRecord(ctx context.Context, r *MedicalRecord) error
	GetMedicalRecord(ctx context.Context, id uuid.UUID) (*MedicalRecord, error)
	UpdateMedicalRecord(ctx context.Context, r *MedicalRecord) error
	DeleteMedicalRecord(ctx context.Context, id uuid.UUID) error
	ListMedicalRecords(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error)
}

// MedicationRepository defines persistence for medication courses.
type MedicationRepository interface {
	CreateMedication(ctx context.Context, m *Medication) error
	GetMedication(ctx context.Context, id uuid.UUID) (*Medication, error)
	UpdateMedication(ctx context.Context, m *Medication) error
	DeleteMedication(ctx context.Context, id uuid.UUID) error
	ListMedications(ctx context.Context, userID uuid.UUID, activeOnly bool, limit, offset int) ([]*Medication, int, error)
}

// TestResultRepository defines persistence for lab and imaging results.
type TestResultRepository interface {
	CreateTestResult(ctx context.Context, r *TestResult) error
	GetTestResult(ctx context.Context, id uuid.UUID) (*TestResult, error)
	UpdateTestResult(ctx context.Context, r *TestResult) error
	DeleteTestResult(ctx context.Context, id uuid.UUID) error
	ListTestResults(ctx context.Context, userID uuid.UUID, testName string, limit, offset int) ([]*TestResult, int, error)
}

// Repository bundles all record kinds behind one persistence boundary.
type Repository interface {
	HealthRecordRepository
	MedicalRecordRepository
	MedicationRepository
	TestResultRepository
}
