package medications

import "time"

// DaysUnlimited es el sentinel para tratamientos sin fecha de fin
// (crónicos / indefinidos). Un DaysRemaining == 0 significa curso terminado.
const DaysUnlimited = -1

// Medication representa un medicamento registrado por el usuario.
// ReminderTimes siempre tiene exactamente Frequency entradas, en formato HH:MM:SS
// (segundos siempre "00"). Se regeneran completas cuando cambia Frequency.
type Medication struct {
	ID     string
	UserID string

	Name   string
	Dosage string // texto libre: "500mg tablet"

	Frequency     int      // tomas por día (>= 1)
	ReminderTimes []string // HH:MM:SS, len == Frequency

	// DaysRemaining baja de a uno por cada día con todas las tomas completas.
	// DaysUnlimited (-1) = sin límite. 0 = curso terminado (terminal).
	DaysRemaining int

	// Referencia opcional a la receta que agrupa varios medicamentos.
	PrescriptionID string

	Instructions string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Terminal indica si el curso ya terminó (no se agenda ni registra nada más).
func (m Medication) Terminal() bool {
	return m.DaysRemaining == 0
}

// HasReminderAt valida que t sea una de las horas agendadas actuales.
func (m Medication) HasReminderAt(t string) bool {
	for _, rt := range m.ReminderTimes {
		if rt == t {
			return true
		}
	}
	return false
}
