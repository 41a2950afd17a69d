package wearable

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service provides business logic for wearable devices and sync ingest.
type Service struct {
	repo Repository
	sink Sink
}

// NewService creates a new wearable service.
func NewService(repo Repository, sink Sink) *Service {
	return &Service{repo: repo, sink: sink}
}

func (s *Service) RegisterDevice(ctx context.Context, d *Device) error {
	if d.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if d.Manufacturer == "" || d.Model == "" {
		return fmt.Errorf("manufacturer and model are required")
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) GetDevice(ctx context.Context, id uuid.UUID) (*Device, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListDevices(ctx context.Context, userID uuid.UUID) ([]*Device, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Sync validates a measurement batch against the registered device, hands it
// to the sink, and stamps the device's last sync time.
func (s *Service) Sync(ctx context.Context, req *SyncRequest) (*SyncResult, error) {
	if len(req.Measurements) == 0 {
		return nil, fmt.Errorf("sync contains no measurements")
	}
	device, err := s.repo.GetByID(ctx, req.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("unknown device: %w", err)
	}
	now := time.Now().UTC()
	for i := range req.Measurements {
		if req.Measurements[i].MeasuredAt.IsZero() {
			req.Measurements[i].MeasuredAt = now
		}
	}
	if err := s.sink.IngestBatch(ctx, device.UserID, device.ID, req.Measurements); err != nil {
		return nil, err
	}
	if err := s.repo.TouchLastSync(ctx, device.ID, now); err != nil {
		return nil, err
	}
	return &SyncResult{DeviceID: device.ID, Ingested: len(req.Measurements), SyncedAt: now}, nil
}
