package genomic

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

type mockReportRepo struct {
	store map[uuid.UUID]*Report
}

func newMockReportRepo() *mockReportRepo {
	return &mockReportRepo{store: make(map[uuid.UUID]*Report)}
}

func (m *mockReportRepo) Create(_ context.Context, r *Report) error {
	r.ID = uuid.New()
	m.store[r.ID] = r
	return nil
}

func (m *mockReportRepo) GetByID(_ context.Context, id uuid.UUID) (*Report, error) {
	r, ok := m.store[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return r, nil
}

func (m *mockReportRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store, id)
	return nil
}

func (m *mockReportRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*Report, int, error) {
	var result []*Report
	for _, r := range m.store {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	return result, len(result), nil
}

func newTestService() *Service {
	return NewService(newMockReportRepo())
}

func TestCreateReport_Success(t *testing.T) {
	svc := newTestService()
	r := &Report{UserID: uuid.New(), Provider: "23andMe", SNPs: map[string]string{"rs429358": "CT"}}
	if err := svc.CreateReport(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ReportDate.IsZero() {
		t.Error("expected report_date to default to now")
	}
}

func TestCreateReport_EmptySNPs(t *testing.T) {
	svc := newTestService()
	r := &Report{UserID: uuid.New(), Provider: "23andMe"}
	if err := svc.CreateReport(context.Background(), r); err == nil {
		t.Fatal("expected error for empty SNPs")
	}
}

func TestCreateReport_InvalidRsID(t *testing.T) {
	svc := newTestService()
	for _, bad := range []string{"429358", "rs", "snp1", "RS429358"} {
		r := &Report{UserID: uuid.New(), SNPs: map[string]string{bad: "CT"}}
		if err := svc.CreateReport(context.Background(), r); err == nil {
			t.Errorf("expected error for rsID %q", bad)
		}
	}
}

func TestCreateReport_MissingUser(t *testing.T) {
	svc := newTestService()
	r := &Report{SNPs: map[string]string{"rs429358": "CT"}}
	if err := svc.CreateReport(context.Background(), r); err == nil {
		t.Fatal("expected error for missing user_id")
	}
}

func TestDeleteReport(t *testing.T) {
	svc := newTestService()
	r := &Report{UserID: uuid.New(), SNPs: map[string]string{"rs429358": "CT"}}
	svc.CreateReport(context.Background(), r)
	if err := svc.DeleteReport(context.Background(), r.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetReport(context.Background(), r.ID); err == nil {
		t.Fatal("expected error after delete")
	}
}

func TestListReports_ScopedToUser(t *testing.T) {
	svc := newTestService()
	uid := uuid.New()
	svc.CreateReport(context.Background(), &Report{UserID: uid, SNPs: map[string]string{"rs1": "AA"}})
	svc.CreateReport(context.Background(), &Report{UserID: uuid.New(), SNPs: map[string]string{"rs2": "GG"}})

	items, total, err := svc.ListReports(context.Background(), uid, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("expected 1 report for user, got %d", total)
	}
}
