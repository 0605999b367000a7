package medications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name   string
	Dosage string

	Frequency int

	// MealTimes: horas del perfil del usuario en orden canónico.
	// ExplicitTimes: selección manual del usuario (solo frecuencia 1 o 2);
	// si no coincide en cantidad con Frequency, se ignora y manda el perfil.
	MealTimes     []string
	ExplicitTimes []string

	// DaysRemaining nil => sin límite (DaysUnlimited).
	DaysRemaining *int

	PrescriptionID string
	Instructions   string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Medication, error) {
	if strings.TrimSpace(userID) == "" {
		return Medication{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Medication{}, ErrInvalidInput
	}
	if in.Frequency < 1 {
		return Medication{}, ErrInvalidFrequency
	}

	times, err := BuildReminderSchedule(in.Frequency, in.MealTimes, in.ExplicitTimes)
	if err != nil {
		return Medication{}, err
	}

	days := DaysUnlimited
	if in.DaysRemaining != nil {
		if *in.DaysRemaining < 0 {
			return Medication{}, ErrInvalidInput
		}
		days = *in.DaysRemaining
	}

	now := s.now()
	m := Medication{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           strings.TrimSpace(in.Name),
		Dosage:         strings.TrimSpace(in.Dosage),
		Frequency:      in.Frequency,
		ReminderTimes:  times,
		DaysRemaining:  days,
		PrescriptionID: strings.TrimSpace(in.PrescriptionID),
		Instructions:   strings.TrimSpace(in.Instructions),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medication{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Medication, error) {
	return s.repo.ListByUser(ctx, userID)
}

type UpdateInput struct {
	Name   *string
	Dosage *string

	// Frequency: si viene, regenera ReminderTimes completas
	// (las anteriores se descartan; no se guarda historial).
	Frequency     *int
	MealTimes     []string
	ExplicitTimes []string

	DaysRemaining *int
	Instructions  *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Medication, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Medication{}, ErrInvalidInput
		}
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Dosage != nil {
		m.Dosage = strings.TrimSpace(*in.Dosage)
	}
	if in.Instructions != nil {
		m.Instructions = strings.TrimSpace(*in.Instructions)
	}
	if in.DaysRemaining != nil {
		if *in.DaysRemaining < 0 && *in.DaysRemaining != DaysUnlimited {
			return Medication{}, ErrInvalidInput
		}
		m.DaysRemaining = *in.DaysRemaining
	}

	if in.Frequency != nil {
		if *in.Frequency < 1 {
			return Medication{}, ErrInvalidFrequency
		}
		times, err := BuildReminderSchedule(*in.Frequency, in.MealTimes, in.ExplicitTimes)
		if err != nil {
			return Medication{}, err
		}
		m.Frequency = *in.Frequency
		m.ReminderTimes = times
	}

	m.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

// SetDaysRemaining persiste el contador de días.
// Lo usa el módulo de adherencia al completar un día; piso en 0 (terminal).
func (s *Service) SetDaysRemaining(ctx context.Context, id string, days int) error {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if days < 0 && days != DaysUnlimited {
		days = 0
	}
	m.DaysRemaining = days
	m.UpdatedAt = s.now()
	return s.repo.Update(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// OwnerOf expone el dueño de un medicamento.
// Evita que otros módulos tengan que conocer el modelo completo.
func (s *Service) OwnerOf(ctx context.Context, id string) (string, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return m.UserID, nil
}
