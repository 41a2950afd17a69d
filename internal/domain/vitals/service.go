package vitals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service provides business logic for the vital signs domain.
type Service struct {
	repo Repository
}

// NewService creates a new vital signs service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var validVitalTypes = map[string]bool{
	"heart_rate":               true,
	"temperature":              true,
	"blood_pressure_systolic":  true,
	"blood_pressure_diastolic": true,
	"respiratory_rate":         true,
	"oxygen_saturation":        true,
	"blood_glucose":            true,
	"weight":                   true,
}

func (s *Service) validate(v *VitalSign) error {
	if v.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if !validVitalTypes[v.Type] {
		return fmt.Errorf("invalid vital type: %s", v.Type)
	}
	if v.Value < 0 {
		return fmt.Errorf("value must be non-negative")
	}
	if v.MeasuredAt.IsZero() {
		v.MeasuredAt = time.Now().UTC()
	}
	return nil
}

func (s *Service) CreateVitalSign(ctx context.Context, v *VitalSign) error {
	if err := s.validate(v); err != nil {
		return err
	}
	return s.repo.Create(ctx, v)
}

// CreateBatch validates and inserts a batch of measurements, used by the
// wearable sync path. The whole batch is rejected on the first invalid entry.
func (s *Service) CreateBatch(ctx context.Context, batch []*VitalSign) error {
	if len(batch) == 0 {
		return fmt.Errorf("batch is empty")
	}
	for i, v := range batch {
		if err := s.validate(v); err != nil {
			return fmt.Errorf("batch entry %d: %w", i, err)
		}
	}
	return s.repo.CreateBatch(ctx, batch)
}

func (s *Service) GetVitalSign(ctx context.Context, id uuid.UUID) (*VitalSign, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateVitalSign(ctx context.Context, v *VitalSign) error {
	if !validVitalTypes[v.Type] {
		return fmt.Errorf("invalid vital type: %s", v.Type)
	}
	if v.Value < 0 {
		return fmt.Errorf("value must be non-negative")
	}
	return s.repo.Update(ctx, v)
}

func (s *Service) DeleteVitalSign(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListVitalSigns(ctx context.Context, userID uuid.UUID, vitalType string, limit, offset int) ([]*VitalSign, int, error) {
	if vitalType != "" && !validVitalTypes[vitalType] {
		return nil, 0, fmt.Errorf("invalid vital type: %s", vitalType)
	}
	return s.repo.ListByUser(ctx, userID, vitalType, limit, offset)
}

// LatestByType returns the most recent measurement per vital type, the
// dashboard's current-status feed.
func (s *Service) LatestByType(ctx context.Context, userID uuid.UUID) ([]*VitalSign, error) {
	return s.repo.LatestByType(ctx, userID)
}

// DailyAverages returns per-day mean values for one vital type over the last
// `days` days.
func (s *Service) DailyAverages(ctx context.Context, userID uuid.UUID, vitalType string, days int) ([]*DailyAverage, error) {
	if !validVitalTypes[vitalType] {
		return nil, fmt.Errorf("invalid vital type: %s", vitalType)
	}
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.repo.DailyAverages(ctx, userID, vitalType, since)
}
