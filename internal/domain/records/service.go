package records

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Service provides business logic for the records domain.
type Service struct {
	repo Repository
}

// NewService creates a new records service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var validRecordTypes = map[string]bool{
	"symptom":   true,
	"lifestyle": true,
	"sleep":     true,
	"diet":      true,
	"exercise":  true,
	"note":      true,
}

// ICD-10 codes look like "J45" or "J45.909".
var icd10Pattern = regexp.MustCompile(`^[A-Z][0-9]{2}(\.[0-9A-Z]{1,4})?$`)

// -- Health records --

func (s *Service) CreateHealthRecord(ctx context.Context, r *HealthRecord) error {
	if r.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if !validRecordTypes[r.RecordType] {
		return fmt.Errorf("invalid record type: %s", r.RecordType)
	}
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now().UTC()
	}
	return s.repo.CreateHealthRecord(ctx, r)
}

func (s *Service) GetHealthRecord(ctx context.Context, id uuid.UUID) (*HealthRecord, error) {
	return s.repo.GetHealthRecord(ctx, id)
}

func (s *Service) UpdateHealthRecord(ctx context.Context, r *HealthRecord) error {
	if !validRecordTypes[r.RecordType] {
		return fmt.Errorf("invalid record type: %s", r.RecordType)
	}
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	return s.repo.UpdateHealthRecord(ctx, r)
}

func (s *Service) DeleteHealthRecord(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteHealthRecord(ctx, id)
}

func (s *Service) ListHealthRecords(ctx context.Context, userID uuid.UUID, recordType string, limit, offset int) ([]*HealthRecord, int, error) {
	if recordType != "" && !validRecordTypes[recordType] {
		return nil, 0, fmt.Errorf("invalid record type: %s", recordType)
	}
	return s.repo.ListHealthRecords(ctx, userID, recordType, limit, offset)
}

// -- Medical records --

func (s *Service) CreateMedicalRecord(ctx context.Context, r *MedicalRecord) error {
	if err := s.validateMedicalRecord(r); err != nil {
		return err
	}
	if r.VisitDate.IsZero() {
		r.VisitDate = time.Now().UTC()
	}
	return s.repo.CreateMedicalRecord(ctx, r)
}

func (s *Service) validateMedicalRecord(r *MedicalRecord) error {
	if r.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if r.Hospital == "" {
		return fmt.Errorf("hospital is required")
	}
	if r.DiagnosisCode == "" {
		return fmt.Errorf("diagnosis_code is required")
	}
	if !icd10Pattern.MatchString(r.DiagnosisCode) {
		return fmt.Errorf("diagnosis_code %q is not a valid ICD-10 code", r.DiagnosisCode)
	}
	return nil
}

func (s *Service) GetMedicalRecord(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	return s.repo.GetMedicalRecord(ctx, id)
}

func (s *Service) UpdateMedicalRecord(ctx context.Context, r *MedicalRecord) error {
	if err := s.validateMedicalRecord(r); err != nil {
		return err
	}
	return s.repo.UpdateMedicalRecord(ctx, r)
}

func (s *Service) DeleteMedicalRecord(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteMedicalRecord(ctx, id)
}

func (s *Service) ListMedicalRecords(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error) {
	return s.repo.ListMedicalRecords(ctx, userID, limit, offset)
}

// -- Medications --

func (s *Service) CreateMedication(ctx context.Context, m *Medication) error {
	if err := s.validateMedication(m); err != nil {
		return err
	}
	if m.StartDate.IsZero() {
		m.StartDate = time.Now().UTC()
	}
	return s.repo.CreateMedication(ctx, m)
}

func (s *Service) validateMedication(m *Medication) error {
	if m.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.EndDate != nil && !m.StartDate.IsZero() && m.EndDate.Before(m.StartDate) {
		return fmt.Errorf("end_date precedes start_date")
	}
	return nil
}

func (s *Service) GetMedication(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return s.repo.GetMedication(ctx, id)
}

func (s *Service) UpdateMedication(ctx context.Context, m *Medication) error {
	if err := s.validateMedication(m); err != nil {
		return err
	}
	return s.repo.UpdateMedication(ctx, m)
}

func (s *Service) DeleteMedication(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteMedication(ctx, id)
}

func (s *Service) ListMedications(ctx context.Context, userID uuid.UUID, activeOnly bool, limit, offset int) ([]*Medication, int, error) {
	return s.repo.ListMedications(ctx, userID, activeOnly, limit, offset)
}

// -- Test results --

func (s *Service) CreateTestResult(ctx context.Context, r *TestResult) error {
	if r.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if r.TestName == "" {
		return fmt.Errorf("test_name is required")
	}
	if r.TestedAt.IsZero() {
		r.TestedAt = time.Now().UTC()
	}
	return s.repo.CreateTestResult(ctx, r)
}

func (s *Service) GetTestResult(ctx context.Context, id uuid.UUID) (*TestResult, error) {
	return s.repo.GetTestResult(ctx, id)
}

func (s *Service) UpdateTestResult(ctx context.Context, r *TestResult) error {
	if r.TestName == "" {
		return fmt.Errorf("test_name is required")
	}
	return s.repo.UpdateTestResult(ctx, r)
}

func (s *Service) DeleteTestResult(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTestResult(ctx, id)
}

func (s *Service) ListTestResults(ctx context.Context, userID uuid.UUID, testName string, limit, offset int) ([]*TestResult, int, error) {
	return s.repo.ListTestResults(ctx, userID, testName, limit, offset)
}
