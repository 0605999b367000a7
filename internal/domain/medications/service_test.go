package medications

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

// stubRepo: repositorio en memoria mínimo para los tests del service.
type stubRepo struct {
	byID map[string]Medication
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: make(map[string]Medication)}
}

func (r *stubRepo) Create(_ context.Context, m Medication) error {
	r.byID[m.ID] = m
	return nil
}

func (r *stubRepo) Update(_ context.Context, m Medication) error {
	if _, ok := r.byID[m.ID]; !ok {
		return ErrNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (Medication, error) {
	m, ok := r.byID[id]
	if !ok {
		return Medication{}, ErrNotFound
	}
	return m, nil
}

func (r *stubRepo) ListByUser(_ context.Context, userID string) ([]Medication, error) {
	var out []Medication
	for _, m := range r.byID {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func newTestService(repo Repository) *Service {
	s := NewService(repo)
	s.now = func() time.Time {
		return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	}
	return s
}

func TestService_CreateDefaultsToUnlimited(t *testing.T) {
	svc := newTestService(newStubRepo())

	m, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:      "Amoxicillin",
		Dosage:    "500mg tablet",
		Frequency: 3,
		MealTimes: []string{"08:00", "13:00", "19:00"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.DaysRemaining != DaysUnlimited {
		t.Fatalf("expected unlimited course, got %d days", m.DaysRemaining)
	}
	want := []string{"08:00:00", "13:00:00", "19:00:00"}
	if !reflect.DeepEqual(m.ReminderTimes, want) {
		t.Fatalf("expected times %v, got %v", want, m.ReminderTimes)
	}
	if m.Terminal() {
		t.Fatal("unlimited course must not be terminal")
	}
}

func TestService_CreateValidation(t *testing.T) {
	svc := newTestService(newStubRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-1", CreateInput{Name: "  ", Frequency: 1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty name: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(ctx, "user-1", CreateInput{Name: "Ibuprofen", Frequency: 0}); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("frequency 0: expected ErrInvalidFrequency, got %v", err)
	}
	negative := -3
	if _, err := svc.Create(ctx, "user-1", CreateInput{Name: "Ibuprofen", Frequency: 1, DaysRemaining: &negative}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative days: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(ctx, "", CreateInput{Name: "Ibuprofen", Frequency: 1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty user: expected ErrInvalidInput, got %v", err)
	}
}

func TestService_UpdateFrequencyRegeneratesTimes(t *testing.T) {
	svc := newTestService(newStubRepo())
	ctx := context.Background()

	m, err := svc.Create(ctx, "user-1", CreateInput{
		Name:          "Metformin",
		Frequency:     2,
		MealTimes:     []string{"08:00", "13:00", "19:00"},
		ExplicitTimes: []string{"19:00", "08:00"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	freq := 3
	updated, err := svc.Update(ctx, m.ID, UpdateInput{
		Frequency: &freq,
		MealTimes: []string{"08:00", "13:00", "19:00"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	// El cambio de frecuencia descarta por completo las horas anteriores.
	want := []string{"08:00:00", "13:00:00", "19:00:00"}
	if !reflect.DeepEqual(updated.ReminderTimes, want) {
		t.Fatalf("expected regenerated times %v, got %v", want, updated.ReminderTimes)
	}
	if updated.Frequency != 3 {
		t.Fatalf("expected frequency 3, got %d", updated.Frequency)
	}
}

func TestService_UpdateWithoutFrequencyKeepsTimes(t *testing.T) {
	svc := newTestService(newStubRepo())
	ctx := context.Background()

	m, err := svc.Create(ctx, "user-1", CreateInput{
		Name:      "Metformin",
		Frequency: 2,
		MealTimes: []string{"08:00", "13:00"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Metformina"
	updated, err := svc.Update(ctx, m.ID, UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !reflect.DeepEqual(updated.ReminderTimes, m.ReminderTimes) {
		t.Fatalf("times changed without frequency change: %v -> %v", m.ReminderTimes, updated.ReminderTimes)
	}
	if updated.Name != "Metformina" {
		t.Fatalf("expected renamed medication, got %q", updated.Name)
	}
}

func TestService_SetDaysRemainingFloorsAtZero(t *testing.T) {
	svc := newTestService(newStubRepo())
	ctx := context.Background()

	days := 1
	m, err := svc.Create(ctx, "user-1", CreateInput{
		Name:          "Amoxicillin",
		Frequency:     1,
		MealTimes:     []string{"08:00"},
		DaysRemaining: &days,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.SetDaysRemaining(ctx, m.ID, -5); err != nil {
		t.Fatalf("set days: %v", err)
	}
	got, err := svc.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DaysRemaining != 0 {
		t.Fatalf("expected floor at 0, got %d", got.DaysRemaining)
	}
	if !got.Terminal() {
		t.Fatal("expected terminal course at 0 days")
	}
}

func TestService_GetByIDNotFound(t *testing.T) {
	svc := newTestService(newStubRepo())

	if _, err := svc.GetByID(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
