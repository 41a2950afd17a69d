package genomic

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Service provides business logic for genomic reports.
type Service struct {
	repo Repository
}

// NewService creates a new genomic report service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var rsIDPattern = regexp.MustCompile(`^rs[0-9]+$`)

func (s *Service) CreateReport(ctx context.Context, r *Report) error {
	if r.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if len(r.SNPs) == 0 {
		return fmt.Errorf("report contains no SNPs")
	}
	for rsID := range r.SNPs {
		if !rsIDPattern.MatchString(rsID) {
			return fmt.Errorf("invalid rsID: %s", rsID)
		}
	}
	if r.ReportDate.IsZero() {
		r.ReportDate = time.Now().UTC()
	}
	return s.repo.Create(ctx, r)
}

func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) DeleteReport(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListReports(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Report, int, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}
