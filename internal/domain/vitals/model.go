package vitals

import (
	"time"

	"github.com/google/uuid"
)

// VitalSign maps to the vital_sign table: one measurement of one vital type,
// recorded manually or ingested from a wearable sync.
type VitalSign struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	UserID     uuid.UUID  `db:"user_id" json:"user_id"`
	Type       string     `db:"type" json:"type"`
	Value      float64    `db:"value" json:"value"`
	Unit       string     `db:"unit" json:"unit"`
	MeasuredAt time.Time  `db:"measured_at" json:"measured_at"`
	DeviceID   *uuid.UUID `db:"device_id" json:"device_id,omitempty"`
	Note       *string    `db:"note" json:"note,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// DailyAverage is one bucket of the trend query: the mean value of one vital
// type over one calendar day.
type DailyAverage struct {
	Day     time.Time `db:"day" json:"day"`
	Average float64   `db:"average" json:"average"`
	Count   int       `db:"count" json:"count"`
}
