package familyhistory

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence for family health history.
type Repository interface {
	Create(ctx context.Context, f *FamilyMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*FamilyMember, error)
	Update(ctx context.Context, f *FamilyMember) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*FamilyMember, int, error)
}
