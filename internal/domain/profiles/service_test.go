package profiles

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"medication-adherence/internal/domain/medications"
)

// El handler de medications depende de este módulo solo vía su interfaz
// MealTimesSource (profiles ya importa medications por NormalizeClockTime,
// así que la dependencia directa al revés armaría un ciclo).
var _ medications.MealTimesSource = (*Service)(nil)

type stubRepo struct {
	byUserID map[string]Profile
}

func newStubRepo() *stubRepo {
	return &stubRepo{byUserID: make(map[string]Profile)}
}

func (r *stubRepo) Get(_ context.Context, userID string) (Profile, error) {
	p, ok := r.byUserID[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *stubRepo) Upsert(_ context.Context, p Profile) error {
	r.byUserID[p.UserID] = p
	return nil
}

func newTestService(repo Repository) *Service {
	s := NewService(repo)
	s.now = func() time.Time {
		return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	}
	return s
}

func TestGet_FallsBackToDefaults(t *testing.T) {
	svc := newTestService(newStubRepo())

	p, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(p.Slots, DefaultSlots()) {
		t.Fatalf("expected default slots, got %v", p.Slots)
	}
	want := []string{"08:00:00", "13:00:00", "19:00:00"}
	if !reflect.DeepEqual(p.Times(), want) {
		t.Fatalf("expected default times %v, got %v", want, p.Times())
	}
}

func TestMealTimes_ReturnsCanonicalOrderTimes(t *testing.T) {
	svc := newTestService(newStubRepo())
	ctx := context.Background()

	// Sin perfil: horas del default.
	times, err := svc.MealTimes(ctx, "user-1")
	if err != nil {
		t.Fatalf("meal times: %v", err)
	}
	want := []string{"08:00:00", "13:00:00", "19:00:00"}
	if !reflect.DeepEqual(times, want) {
		t.Fatalf("expected default times %v, got %v", want, times)
	}

	// Con perfil guardado: las horas del perfil, canónicas primero.
	if _, err := svc.Put(ctx, "user-1", []SlotInput{
		{Name: "dinner", Time: "21:00"},
		{Name: "breakfast", Time: "06:30"},
	}); err != nil {
		t.Fatalf("put: %v", err)
	}
	times, err = svc.MealTimes(ctx, "user-1")
	if err != nil {
		t.Fatalf("meal times after put: %v", err)
	}
	want = []string{"06:30:00", "21:00:00"}
	if !reflect.DeepEqual(times, want) {
		t.Fatalf("expected saved times %v, got %v", want, times)
	}
}

func TestGet_StorageErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	svc := newTestService(&failingRepo{err: boom})

	if _, err := svc.Get(context.Background(), "user-1"); !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

type failingRepo struct{ err error }

func (r *failingRepo) Get(_ context.Context, _ string) (Profile, error) {
	return Profile{}, r.err
}
func (r *failingRepo) Upsert(_ context.Context, _ Profile) error { return r.err }

func TestPut_CanonicalSlotsFirstInFixedOrder(t *testing.T) {
	svc := newTestService(newStubRepo())

	// El cliente manda desordenado y con un slot custom en el medio.
	p, err := svc.Put(context.Background(), "user-1", []SlotInput{
		{Name: "Dinner", Time: "20:30"},
		{Name: "merienda", Time: "17:00"},
		{Name: "breakfast", Time: "07:15"},
		{Name: "LUNCH", Time: "12:45"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	want := []Slot{
		{Name: "breakfast", Time: "07:15:00"},
		{Name: "lunch", Time: "12:45:00"},
		{Name: "dinner", Time: "20:30:00"},
		{Name: "merienda", Time: "17:00:00"},
	}
	if !reflect.DeepEqual(p.Slots, want) {
		t.Fatalf("expected canonical order %v, got %v", want, p.Slots)
	}
}

func TestPut_PersistsAndGetReturnsIt(t *testing.T) {
	svc := newTestService(newStubRepo())
	ctx := context.Background()

	saved, err := svc.Put(ctx, "user-1", []SlotInput{
		{Name: "breakfast", Time: "06:00"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := svc.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got.Slots, saved.Slots) {
		t.Fatalf("expected saved slots %v, got %v", saved.Slots, got.Slots)
	}
}

func TestPut_Validation(t *testing.T) {
	svc := newTestService(newStubRepo())
	ctx := context.Background()

	if _, err := svc.Put(ctx, "user-1", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty slots: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Put(ctx, "user-1", []SlotInput{
		{Name: "breakfast", Time: "08:00"},
		{Name: "Breakfast", Time: "09:00"},
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("duplicate names: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Put(ctx, "user-1", []SlotInput{
		{Name: "breakfast", Time: "25:00"},
	}); err == nil {
		t.Fatal("invalid time: expected error")
	}
	if _, err := svc.Put(ctx, "  ", []SlotInput{
		{Name: "breakfast", Time: "08:00"},
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank user: expected ErrInvalidInput, got %v", err)
	}
}

func TestPut_DuplicateTimesAccepted(t *testing.T) {
	svc := newTestService(newStubRepo())

	p, err := svc.Put(context.Background(), "user-1", []SlotInput{
		{Name: "breakfast", Time: "09:00"},
		{Name: "lunch", Time: "09:00"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	want := []string{"09:00:00", "09:00:00"}
	if !reflect.DeepEqual(p.Times(), want) {
		t.Fatalf("expected duplicate times kept %v, got %v", want, p.Times())
	}
}
