package familyhistory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service provides business logic for family health history.
type Service struct {
	repo Repository
}

// NewService creates a new family history service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var validRelations = map[string]bool{
	"father":      true,
	"mother":      true,
	"brother":     true,
	"sister":      true,
	"son":         true,
	"daughter":    true,
	"grandfather": true,
	"grandmother": true,
	"uncle":       true,
	"aunt":        true,
}

func (s *Service) validate(f *FamilyMember) error {
	if f.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if !validRelations[f.Relation] {
		return fmt.Errorf("invalid relation: %s", f.Relation)
	}
	if f.Condition == "" {
		return fmt.Errorf("condition is required")
	}
	currentYear := time.Now().Year()
	if f.BirthYear != nil && (*f.BirthYear < 1850 || *f.BirthYear > currentYear) {
		return fmt.Errorf("birth_year %d out of range", *f.BirthYear)
	}
	if f.DeathYear != nil {
		if *f.DeathYear > currentYear {
			return fmt.Errorf("death_year %d is in the future", *f.DeathYear)
		}
		if f.BirthYear != nil && *f.DeathYear < *f.BirthYear {
			return fmt.Errorf("death_year precedes birth_year")
		}
	}
	return nil
}

func (s *Service) CreateFamilyMember(ctx context.Context, f *FamilyMember) error {
	if err := s.validate(f); err != nil {
		return err
	}
	return s.repo.Create(ctx, f)
}

func (s *Service) GetFamilyMember(ctx context.Context, id uuid.UUID) (*FamilyMember, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateFamilyMember(ctx context.Context, f *FamilyMember) error {
	if err := s.validate(f); err != nil {
		return err
	}
	return s.repo.Update(ctx, f)
}

func (s *Service) DeleteFamilyMember(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListFamilyMembers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*FamilyMember, int, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}
