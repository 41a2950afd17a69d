package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pulsevault/pulsevault/internal/domain/records"
	"github.com/pulsevault/pulsevault/internal/domain/vitals"
)

// VitalSource is the slice of the vitals service the dashboard reads from.
type VitalSource interface {
	LatestByType(ctx context.Context, userID uuid.UUID) ([]*vitals.VitalSign, error)
	DailyAverages(ctx context.Context, userID uuid.UUID, vitalType string, days int) ([]*vitals.DailyAverage, error)
}

// RecordSource is the slice of the records service the dashboard reads from.
type RecordSource interface {
	ListMedications(ctx context.Context, userID uuid.UUID, activeOnly bool, limit, offset int) ([]*records.Medication, int, error)
	ListMedicalRecords(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*records.MedicalRecord, int, error)
}

// Summary is the home-screen payload: current vitals, active medications and
// the most recent clinical visits.
type Summary struct {
	UserID            uuid.UUID                `json:"user_id"`
	GeneratedAt       time.Time                `json:"generated_at"`
	LatestVitals      []*vitals.VitalSign      `json:"latest_vitals"`
	ActiveMedications []*records.Medication    `json:"active_medications"`
	RecentVisits      []*records.MedicalRecord `json:"recent_visits"`
	VisitCount        int                      `json:"visit_count"`
}

// Trend is a named series of daily averages for one vital type.
type Trend struct {
	Type   string                 `json:"type"`
	Days   int                    `json:"days"`
	Points []*vitals.DailyAverage `json:"points"`
}

// Service assembles dashboard views from the vitals and records domains.
type Service struct {
	vitalSrc  VitalSource
	recordSrc RecordSource
}

// NewService creates a new dashboard service.
func NewService(vitalSrc VitalSource, recordSrc RecordSource) *Service {
	return &Service{vitalSrc: vitalSrc, recordSrc: recordSrc}
}

const recentVisitLimit = 3

// Summary fans out the three source queries concurrently and assembles the
// result. Any source error fails the whole summary.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	summary := &Summary{UserID: userID, GeneratedAt: time.Now().UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		latest, err := s.vitalSrc.LatestByType(gctx, userID)
		if err != nil {
			return err
		}
		summary.LatestVitals = latest
		return nil
	})
	g.Go(func() error {
		meds, _, err := s.recordSrc.ListMedications(gctx, userID, true, 100, 0)
		if err != nil {
			return err
		}
		summary.ActiveMedications = meds
		return nil
	})
	g.Go(func() error {
		visits, total, err := s.recordSrc.ListMedicalRecords(gctx, userID, recentVisitLimit, 0)
		if err != nil {
			return err
		}
		summary.RecentVisits = visits
		summary.VisitCount = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

// Trend returns daily averages for one vital type over the given window.
func (s *Service) Trend(ctx context.Context, userID uuid.UUID, vitalType string, days int) (*Trend, error) {
	if days <= 0 {
		days = 7
	}
	points, err := s.vitalSrc.DailyAverages(ctx, userID, vitalType, days)
	if err != nil {
		return nil, err
	}
	return &Trend{Type: vitalType, Days: days, Points: points}, nil
}
