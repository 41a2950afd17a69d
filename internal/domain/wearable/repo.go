package wearable

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines persistence for wearable devices.
type Repository interface {
	Create(ctx context.Context, d *Device) error
	GetByID(ctx context.Context, id uuid.UUID) (*Device, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Device, error)
	TouchLastSync(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Sink receives validated measurement batches from a device sync. The vitals
// service satisfies this through an adapter at wiring time.
type Sink interface {
	IngestBatch(ctx context.Context, userID, deviceID uuid.UUID, ms []Measurement) error
}
