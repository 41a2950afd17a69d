package vitals

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines CRUD and query operations for vital signs.
type Repository interface {
	Create(ctx context.Context, v *VitalSign) error
	CreateBatch(ctx context.Context, batch []*VitalSign) error
	GetByID(ctx context.Context, id uuid.UUID) (*VitalSign, error)
	Update(ctx context.Context, v *VitalSign) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, vitalType string, limit, offset int) ([]*VitalSign, int, error)
	LatestByType(ctx context.Context, userID uuid.UUID) ([]*VitalSign, error)
	DailyAverages(ctx context.Context, userID uuid.UUID, vitalType string, since time.Time) ([]*DailyAverage, error)
}
