package adherence

import (
	"context"
	"errors"
	"strings"
	"time"

	"medication-adherence/internal/domain/medications"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownDoseTime = errors.New("dose time not in schedule")
	ErrCourseComplete  = errors.New("course already complete")
)

// MedicationSource es lo único que este módulo necesita del módulo medications.
// medications.Service lo implementa.
type MedicationSource interface {
	GetByID(ctx context.Context, id string) (medications.Medication, error)
	SetDaysRemaining(ctx context.Context, id string, days int) error
}

type Service struct {
	logs Repository
	meds MedicationSource
	now  func() time.Time
}

func NewService(logs Repository, meds MedicationSource) *Service {
	return &Service{
		logs: logs,
		meds: meds,
		now:  time.Now,
	}
}

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"
)

// sample fija "ahora" una sola vez por cálculo: fecha calendario y hora del día.
// No se vuelve a muestrear a mitad de una operación para no tomar decisiones
// de borde inconsistentes.
func (s *Service) sample() (day string, clock string) {
	now := s.now()
	return now.Format(dateLayout), now.Format(clockLayout)
}

// DaySummary calcula el progreso de hoy y la última toma vencida sin registrar
// ("" si no hay) en una sola pasada: un solo muestreo de "ahora" y una sola
// lectura de logs, así una misma respuesta nunca se contradice en el borde de
// una hora agendada.
func (s *Service) DaySummary(ctx context.Context, medicationID string) (Progress, string, error) {
	m, err := s.meds.GetByID(ctx, medicationID)
	if err != nil {
		return Progress{}, "", err
	}

	day, clock := s.sample()
	taken, err := s.logs.TakenTimes(ctx, m.ID, day)
	if err != nil {
		return Progress{}, "", err
	}

	return ComputeProgress(m.ReminderTimes, taken, clock),
		LastMissed(m.ReminderTimes, taken, clock),
		nil
}

// MarkResult es lo que el UI necesita después de marcar una toma,
// para no tener que re-consultar estado.
type MarkResult struct {
	Progress      Progress
	State         DayState
	DaysRemaining int

	// CourseComplete: el día quedó completo y el contador llegó a 0.
	CourseComplete bool
}

// MarkTaken registra una toma de hoy.
//
// Idempotente: si ya había log para (medicamento, hoy, doseTime) no escribe nada
// y devuelve el estado actual. El decremento de DaysRemaining se decide con una
// relectura del set de logs posterior al insert (nunca con el snapshot previo del
// caller) y solo cuando este insert fue el que creó fila: así un doble tap o dos
// llamadas concurrentes decrementan a lo sumo una vez por día.
func (s *Service) MarkTaken(ctx context.Context, medicationID, doseTime string) (MarkResult, error) {
	m, err := s.meds.GetByID(ctx, medicationID)
	if err != nil {
		return MarkResult{}, err
	}
	if m.Terminal() {
		return MarkResult{}, ErrCourseComplete
	}

	doseTime = strings.TrimSpace(doseTime)
	n, err := medications.NormalizeClockTime(doseTime)
	if err != nil {
		return MarkResult{}, ErrUnknownDoseTime
	}
	if !m.HasReminderAt(n) {
		return MarkResult{}, ErrUnknownDoseTime
	}

	day, clock := s.sample()

	created, err := s.logs.Insert(ctx, DoseLog{
		ID:           uuid.NewString(),
		MedicationID: m.ID,
		LogDate:      day,
		LogTime:      n,
		Status:       DoseStatusTaken,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return MarkResult{}, err
	}

	// Relectura fresca: fuente de verdad para la transición del día.
	taken, err := s.logs.TakenTimes(ctx, m.ID, day)
	if err != nil {
		return MarkResult{}, err
	}
	prog := ComputeProgress(m.ReminderTimes, taken, clock)

	days := m.DaysRemaining
	if created && prog.AllTaken && days > 0 {
		days--
		if err := s.meds.SetDaysRemaining(ctx, m.ID, days); err != nil {
			return MarkResult{}, err
		}
	}

	return MarkResult{
		Progress:       prog,
		State:          prog.State(),
		DaysRemaining:  days,
		CourseComplete: prog.AllTaken && days == 0,
	}, nil
}

// NextDose resuelve la próxima toma cruzando días:
//   - curso terminado => nil: no habrá ninguna toma más, aunque el día de hoy
//     tenga horas sin marcar (días restantes en 0 manda sobre el horario);
//   - queda algo hoy (o vencido de hoy) => esa hora;
//   - si no, con días restantes (o sin límite) => primera hora, día siguiente.
func (s *Service) NextDose(ctx context.Context, medicationID string) (*NextDose, error) {
	m, err := s.meds.GetByID(ctx, medicationID)
	if err != nil {
		return nil, err
	}
	if m.Terminal() {
		return nil, nil
	}

	day, clock := s.sample()
	taken, err := s.logs.TakenTimes(ctx, m.ID, day)
	if err != nil {
		return nil, err
	}

	prog := ComputeProgress(m.ReminderTimes, taken, clock)
	if prog.NextDoseTime != "" {
		return &NextDose{Time: prog.NextDoseTime}, nil
	}

	if (m.DaysRemaining == medications.DaysUnlimited || m.DaysRemaining > 0) && len(m.ReminderTimes) > 0 {
		return &NextDose{Time: m.ReminderTimes[0], NextDay: true}, nil
	}

	return nil, nil
}

// ListToday lista los logs de hoy (para la vista de historial del día).
func (s *Service) ListToday(ctx context.Context, medicationID string) ([]DoseLog, error) {
	day, _ := s.sample()
	return s.logs.ListByDate(ctx, medicationID, day)
}

// DeleteLogs borra los logs de un medicamento (cascade al eliminarlo).
func (s *Service) DeleteLogs(ctx context.Context, medicationID string) error {
	medicationID = strings.TrimSpace(medicationID)
	if medicationID == "" {
		return ErrInvalidInput
	}
	return s.logs.DeleteByMedication(ctx, medicationID)
}
