package wearable

import (
	"time"

	"github.com/google/uuid"
)

// Device is a registered wearable that can push measurement batches.
type Device struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UserID       uuid.UUID  `db:"user_id" json:"user_id"`
	Manufacturer string     `db:"manufacturer" json:"manufacturer"`
	Model        string     `db:"model" json:"model"`
	LastSyncAt   *time.Time `db:"last_sync_at" json:"last_sync_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Measurement is one reading inside a sync batch.
type Measurement struct {
	Type       string    `json:"type"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	MeasuredAt time.Time `json:"measured_at"`
}

// SyncRequest is the payload a device pushes on sync.
type SyncRequest struct {
	DeviceID     uuid.UUID     `json:"device_id"`
	Measurements []Measurement `json:"measurements"`
}

// SyncResult reports what a sync ingested.
type SyncResult struct {
	DeviceID uuid.UUID `json:"device_id"`
	Ingested int       `json:"ingested"`
	SyncedAt time.Time `json:"synced_at"`
}
