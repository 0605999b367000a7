package profiles

import (
	"context"
	"errors"
	"strings"
	"time"

	"medication-adherence/internal/domain/medications"
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

// Get devuelve el perfil del usuario, o el default si nunca guardó uno.
// Solo not-found cae al default; otros errores de storage se propagan.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}

	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Profile{UserID: userID, Slots: DefaultSlots()}, nil
		}
		return Profile{}, err
	}
	return p, nil
}

// MealTimes devuelve solo las horas del perfil (o del default), en orden
// canónico. Es lo que consume el armado de horarios de medicamentos.
func (s *Service) MealTimes(ctx context.Context, userID string) ([]string, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p.Times(), nil
}

type SlotInput struct {
	Name string
	Time string
}

// Put reemplaza el perfil completo.
// Los tres slots canónicos van primero (en ese orden, tengan la hora que
// tengan); los custom conservan el orden en que llegaron. Horas duplicadas
// se aceptan: el builder de recordatorios las tolera.
func (s *Service) Put(ctx context.Context, userID string, in []SlotInput) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}
	if len(in) == 0 {
		return Profile{}, ErrInvalidInput
	}

	canonical := make([]Slot, 0, 3)
	custom := make([]Slot, 0)
	seen := map[string]bool{}

	for _, si := range in {
		name := strings.ToLower(strings.TrimSpace(si.Name))
		if name == "" {
			return Profile{}, ErrInvalidInput
		}
		if seen[name] {
			return Profile{}, ErrInvalidInput
		}
		seen[name] = true

		t, err := medications.NormalizeClockTime(si.Time)
		if err != nil {
			return Profile{}, err
		}

		slot := Slot{Name: name, Time: t}
		switch name {
		case SlotBreakfast, SlotLunch, SlotDinner:
			canonical = append(canonical, slot)
		default:
			custom = append(custom, slot)
		}
	}

	// Orden canónico fijo para breakfast/lunch/dinner, aunque el cliente
	// los haya mandado desordenados.
	ordered := make([]Slot, 0, len(in))
	for _, want := range []string{SlotBreakfast, SlotLunch, SlotDinner} {
		for _, c := range canonical {
			if c.Name == want {
				ordered = append(ordered, c)
			}
		}
	}
	ordered = append(ordered, custom...)

	p := Profile{
		UserID:    userID,
		Slots:     ordered,
		UpdatedAt: s.now(),
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
