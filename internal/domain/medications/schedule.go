package medications

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidTime      = errors.New("invalid time of day")
)

// Horario sintético: arranca 08:00 y avanza de a 4 horas por slot faltante.
const (
	syntheticStartHour = 8
	syntheticStepHours = 4
)

// BuildReminderSchedule arma las horas de recordatorio para una frecuencia dada.
//
// Reglas:
//  1. Si explicit viene con exactamente frequency horas, se respeta tal cual
//     (el orden lo eligió el usuario; no se reordena).
//  2. Si no, se toman las primeras frequency horas de mealTimes (orden canónico
//     del perfil: desayuno, almuerzo, cena, luego slots custom).
//  3. Si el perfil no alcanza, se rellena con horas sintéticas (08:00, 12:00,
//     16:00, 20:00, ...). Con perfil vacío todas son sintéticas.
//
// Duplicados del perfil se preservan: dos recordatorios a la misma hora son válidos.
// Toda salida queda normalizada a HH:MM:SS con segundos en "00".
func BuildReminderSchedule(frequency int, mealTimes []string, explicit []string) ([]string, error) {
	if frequency < 1 {
		return nil, ErrInvalidFrequency
	}

	if len(explicit) == frequency {
		out := make([]string, 0, frequency)
		for _, t := range explicit {
			n, err := NormalizeClockTime(t)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	}

	out := make([]string, 0, frequency)
	for i := 0; i < frequency; i++ {
		if i < len(mealTimes) {
			n, err := NormalizeClockTime(mealTimes[i])
			if err != nil {
				return nil, err
			}
			out = append(out, n)
			continue
		}
		out = append(out, syntheticTime(i-len(mealTimes)))
	}
	return out, nil
}

// syntheticTime devuelve la hora sintética para el slot faltante n (0-based).
func syntheticTime(n int) string {
	h := (syntheticStartHour + n*syntheticStepHours) % 24
	return fmt.Sprintf("%02d:00:00", h)
}

// NormalizeClockTime acepta "HH:MM" o "HH:MM:SS" y devuelve "HH:MM:00".
// Los segundos siempre se fuerzan a "00"; las tomas se agendan al minuto.
func NormalizeClockTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return "", ErrInvalidTime
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return "", ErrInvalidTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return "", ErrInvalidTime
	}

	return fmt.Sprintf("%02d:%02d:00", h, m), nil
}
