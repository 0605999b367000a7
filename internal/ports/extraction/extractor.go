package extraction

import "context"

// RawLabel es lo que devuelve el modelo de visión tal cual: todo texto,
// sin validar. El módulo de extracción lo limpia y completa.
type RawLabel struct {
	Name         string
	DosageText   string
	Frequency    string
	Quantity     string
	Days         string
	Instructions string
}

// LabelExtractor es el colaborador de OCR (endpoint de visión hosteado).
type LabelExtractor interface {
	ExtractLabel(ctx context.Context, image []byte) (RawLabel, error)
}
