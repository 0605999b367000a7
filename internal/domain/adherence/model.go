package adherence

import "time"

// DoseStatus por ahora solo tiene "taken": los logs son append-only y
// una toma no registrada simplemente no tiene fila.
type DoseStatus string

const (
	DoseStatusTaken DoseStatus = "taken"
)

// DoseLog registra que una hora agendada se cumplió en una fecha concreta.
// Invariante: a lo sumo un log "taken" por (MedicationID, LogDate, LogTime);
// el store lo garantiza y marcar dos veces es idempotente.
type DoseLog struct {
	ID           string
	MedicationID string

	LogDate string // fecha calendario "2006-01-02", sin hora
	LogTime string // HH:MM:SS, debe ser una de las ReminderTimes vigentes

	Status    DoseStatus
	CreatedAt time.Time
}

// DayState es el estado del día por medicamento:
// pending -> partial -> complete, y solo avanza al marcar tomas.
type DayState string

const (
	DayStatePending  DayState = "pending"
	DayStatePartial  DayState = "partial"
	DayStateComplete DayState = "complete"
)

// Progress resume el día de un medicamento.
// NextDoseTime vacío significa que no queda próxima toma hoy.
type Progress struct {
	TakenCount   int
	TotalCount   int
	NextDoseTime string
	AllTaken     bool
}

// State deriva el estado del día a partir de los contadores.
func (p Progress) State() DayState {
	switch {
	case p.TakenCount == 0:
		return DayStatePending
	case p.AllTaken:
		return DayStateComplete
	default:
		return DayStatePartial
	}
}

// NextDose es la próxima toma cruzando días: si hoy ya no queda nada y el
// curso sigue, es la primera hora del día siguiente (NextDay = true).
type NextDose struct {
	Time    string
	NextDay bool
}
