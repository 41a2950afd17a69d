package vitals

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

// =========== Mock Repository ===========

type mockVitalRepo struct {
	store map[uuid.UUID]*VitalSign
}

func newMockVitalRepo() *mockVitalRepo {
	return &mockVitalRepo{store: make(map[uuid.UUID]*VitalSign)}
}

func (m *mockVitalRepo) Create(_ context.Context, v *VitalSign) error {
	v.ID = uuid.New()
	m.store[v.ID] = v
	return nil
}

func (m *mockVitalRepo) CreateBatch(_ context.Context, batch []*VitalSign) error {
	for _, v := range batch {
		v.ID = uuid.New()
		m.store[v.ID] = v
	}
	return nil
}

func (m *mockVitalRepo) GetByID(_ context.Context, id uuid.UUID) (*VitalSign, error) {
	v, ok := m.store[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return v, nil
}

func (m *mockVitalRepo) Update(_ context.Context, v *VitalSign) error {
	if _, ok := m.store[v.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.store[v.ID] = v
	return nil
}

func (m *mockVitalRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store, id)
	return nil
}

func (m *mockVitalRepo) ListByUser(_ context.Context, userID uuid.UUID, vitalType string, limit, offset int) ([]*VitalSign, int, error) {
	var result []*VitalSign
	for _, v := range m.store {
		if v.UserID != userID {
			continue
		}
		if vitalType != "" && v.Type != vitalType {
			continue
		}
		result = append(result, v)
	}
	return result, len(result), nil
}

func (m *mockVitalRepo) LatestByType(_ context.Context, userID uuid.UUID) ([]*VitalSign, error) {
	latest := map[string]*VitalSign{}
	for _, v := range m.store {
		if v.UserID != userID {
			continue
		}
		if cur, ok := latest[v.Type]; !ok || v.MeasuredAt.After(cur.MeasuredAt) {
			latest[v.Type] = v
		}
	}
	var result []*VitalSign
	for _, v := range latest {
		result = append(result, v)
	}
	return result, nil
}

func (m *mockVitalRepo) DailyAverages(_ context.Context, userID uuid.UUID, vitalType string, since time.Time) ([]*DailyAverage, error) {
	buckets := map[time.Time]*DailyAverage{}
	for _, v := range m.store {
		if v.UserID != userID || v.Type != vitalType || v.MeasuredAt.Before(since) {
			continue
		}
		day := v.MeasuredAt.Truncate(24 * time.Hour)
		b, ok := buckets[day]
		if !ok {
			b = &DailyAverage{Day: day}
			buckets[day] = b
		}
		b.Average = (b.Average*float64(b.Count) + v.Value) / float64(b.Count+1)
		b.Count++
	}
	var result []*DailyAverage
	for _, b := range buckets {
		result = append(result, b)
	}
	return result, nil
}

// =========== Helper ===========

func newTestService() *Service {
	return NewService(newMockVitalRepo())
}

// =========== Tests ===========

func TestCreateVitalSign_Success(t *testing.T) {
	svc := newTestService()
	v := &VitalSign{UserID: uuid.New(), Type: "heart_rate", Value: 72, Unit: "bpm"}
	if err := svc.CreateVitalSign(context.Background(), v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.MeasuredAt.IsZero() {
		t.Error("expected measured_at to default to now")
	}
}

func TestCreateVitalSign_MissingUser(t *testing.T) {
	svc := newTestService()
	v := &VitalSign{Type: "heart_rate", Value: 72}
	if err := svc.CreateVitalSign(context.Background(), v); err == nil {
		t.Fatal("expected error for missing user_id")
	}
}

func TestCreateVitalSign_InvalidType(t *testing.T) {
	svc := newTestService()
	v := &VitalSign{UserID: uuid.New(), Type: "mood", Value: 5}
	if err := svc.CreateVitalSign(context.Background(), v); err == nil {
		t.Fatal("expected error for invalid vital type")
	}
}

func TestCreateVitalSign_NegativeValue(t *testing.T) {
	svc := newTestService()
	v := &VitalSign{UserID: uuid.New(), Type: "heart_rate", Value: -1}
	if err := svc.CreateVitalSign(context.Background(), v); err == nil {
		t.Fatal("expected error for negative value")
	}
}

func TestCreateVitalSign_ValidTypes(t *testing.T) {
	for typ := range validVitalTypes {
		svc := newTestService()
		v := &VitalSign{UserID: uuid.New(), Type: typ, Value: 10}
		if err := svc.CreateVitalSign(context.Background(), v); err != nil {
			t.Errorf("type %q should be valid: %v", typ, err)
		}
	}
}

func TestCreateBatch_Empty(t *testing.T) {
	svc := newTestService()
	if err := svc.CreateBatch(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty batch")
	}
}

func TestCreateBatch_RejectsInvalidEntry(t *testing.T) {
	svc := newTestService()
	batch := []*VitalSign{
		{UserID: uuid.New(), Type: "heart_rate", Value: 70},
		{UserID: uuid.New(), Type: "bogus", Value: 70},
	}
	err := svc.CreateBatch(context.Background(), batch)
	if err == nil {
		t.Fatal("expected error for invalid batch entry")
	}
}

func TestCreateBatch_Success(t *testing.T) {
	svc := newTestService()
	uid := uuid.New()
	batch := []*VitalSign{
		{UserID: uid, Type: "heart_rate", Value: 70},
		{UserID: uid, Type: "temperature", Value: 36.6},
	}
	if err := svc.CreateBatch(context.Background(), batch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, total, err := svc.ListVitalSigns(context.Background(), uid, "", 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("expected 2 vital signs, got %d", total)
	}
}

func TestGetVitalSign_NotFound(t *testing.T) {
	svc := newTestService()
	if _, err := svc.GetVitalSign(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error for not found")
	}
}

func TestUpdateVitalSign_InvalidType(t *testing.T) {
	svc := newTestService()
	v := &VitalSign{UserID: uuid.New(), Type: "heart_rate", Value: 72}
	svc.CreateVitalSign(context.Background(), v)
	v.Type = "bogus"
	if err := svc.UpdateVitalSign(context.Background(), v); err == nil {
		t.Fatal("expected error for invalid type")
	}
}

func TestDeleteVitalSign(t *testing.T) {
	svc := newTestService()
	v := &VitalSign{UserID: uuid.New(), Type: "heart_rate", Value: 72}
	svc.CreateVitalSign(context.Background(), v)
	if err := svc.DeleteVitalSign(context.Background(), v.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetVitalSign(context.Background(), v.ID); err == nil {
		t.Fatal("expected error after delete")
	}
}

func TestListVitalSigns_FilterByType(t *testing.T) {
	svc := newTestService()
	uid := uuid.New()
	svc.CreateVitalSign(context.Background(), &VitalSign{UserID: uid, Type: "heart_rate", Value: 70})
	svc.CreateVitalSign(context.Background(), &VitalSign{UserID: uid, Type: "temperature", Value: 36.5})

	items, total, err := svc.ListVitalSigns(context.Background(), uid, "heart_rate", 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("expected 1 heart_rate entry, got %d", total)
	}
}

func TestListVitalSigns_InvalidTypeFilter(t *testing.T) {
	svc := newTestService()
	if _, _, err := svc.ListVitalSigns(context.Background(), uuid.New(), "bogus", 10, 0); err == nil {
		t.Fatal("expected error for invalid type filter")
	}
}

func TestLatestByType(t *testing.T) {
	svc := newTestService()
	uid := uuid.New()
	old := time.Now().Add(-time.Hour)
	recent := time.Now()
	svc.CreateVitalSign(context.Background(), &VitalSign{UserID: uid, Type: "heart_rate", Value: 60, MeasuredAt: old})
	svc.CreateVitalSign(context.Background(), &VitalSign{UserID: uid, Type: "heart_rate", Value: 80, MeasuredAt: recent})

	items, err := svc.LatestByType(context.Background(), uid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 latest entry, got %d", len(items))
	}
	if items[0].Value != 80 {
		t.Errorf("expected most recent value 80, got %v", items[0].Value)
	}
}

func TestDailyAverages_InvalidType(t *testing.T) {
	svc := newTestService()
	if _, err := svc.DailyAverages(context.Background(), uuid.New(), "bogus", 7); err == nil {
		t.Fatal("expected error for invalid type")
	}
}

func TestDailyAverages_DefaultsWindow(t *testing.T) {
	svc := newTestService()
	uid := uuid.New()
	svc.CreateVitalSign(context.Background(), &VitalSign{UserID: uid, Type: "heart_rate", Value: 60, MeasuredAt: time.Now()})
	svc.CreateVitalSign(context.Background(), &VitalSign{UserID: uid, Type: "heart_rate", Value: 80, MeasuredAt: time.Now().AddDate(0, 0, -30)})

	items, err := svc.DailyAverages(context.Background(), uid, "heart_rate", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected only measurements inside the default window, got %d buckets", len(items))
	}
}
