package extraction

import (
	"math"
	"strconv"
	"strings"
)

// InferDays estima los días de tratamiento a partir de cantidad despachada,
// frecuencia diaria y el texto de dosificación. Devuelve ok=false cuando no se
// puede inferir (dato ausente/ilegible o frecuencia <= 0): eso no es un error,
// es un "desconocido" explícito. Nunca pisa un valor de días ya conocido; el
// caller solo lo invoca para llenar el hueco.
func InferDays(quantity, frequency, dosageText string) (int, bool) {
	q, okQ := parseNumeric(quantity)
	f, okF := parseNumeric(frequency)
	if !okQ || !okF || f <= 0 {
		return 0, false
	}

	units := unitsPerDose(dosageText)

	days := int(math.Ceil(q / (f * float64(units))))
	if days < 1 {
		days = 1
	}
	return days, true
}

// unitsPerDose reconoce solo los patrones multi-unidad "2 tablet/capsule/pill"
// y "3 tablet/capsule/pill" (case-insensitive). Cualquier otra cosa es 1.
func unitsPerDose(dosageText string) int {
	t := strings.ToLower(dosageText)
	for _, unit := range []string{"tablet", "capsule", "pill"} {
		if strings.Contains(t, "3 "+unit) {
			return 3
		}
		if strings.Contains(t, "2 "+unit) {
			return 2
		}
	}
	return 1
}

// parseNumeric saca todo lo que no sea dígito o punto y parsea.
// El OCR suele devolver cosas como "30 tabletas" o "x2".
func parseNumeric(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
