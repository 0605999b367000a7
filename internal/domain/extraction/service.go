package extraction

import (
	"context"
	"errors"
	"strconv"
	"strings"

	ports "medication-adherence/internal/ports/extraction"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoExtractor  = errors.New("label extractor not configured")
)

type Service struct {
	extractor ports.LabelExtractor
}

func NewService(extractor ports.LabelExtractor) *Service {
	return &Service{extractor: extractor}
}

// Ingest manda la foto de la etiqueta al modelo de visión y arma la
// DosageExtraction. Si la etiqueta no trae días explícitos, se infieren de
// quantity/frequency/dosage; si tampoco se puede, Days queda en 0 (desconocido)
// y el cliente decide qué hacer con eso. El resultado es transitorio: se
// consume una vez y se descarta.
func (s *Service) Ingest(ctx context.Context, image []byte) (DosageExtraction, error) {
	if s == nil || s.extractor == nil {
		return DosageExtraction{}, ErrNoExtractor
	}
	if len(image) == 0 {
		return DosageExtraction{}, ErrInvalidInput
	}

	raw, err := s.extractor.ExtractLabel(ctx, image)
	if err != nil {
		return DosageExtraction{}, err
	}

	out := DosageExtraction{
		Name:         strings.TrimSpace(raw.Name),
		DosageText:   strings.TrimSpace(raw.DosageText),
		Instructions: strings.TrimSpace(raw.Instructions),
	}

	if f, err := strconv.Atoi(strings.TrimSpace(raw.Frequency)); err == nil && f > 0 {
		out.Frequency = f
	}
	if q, err := strconv.Atoi(strings.TrimSpace(raw.Quantity)); err == nil && q > 0 {
		out.Quantity = q
	}

	// Días explícitos de la etiqueta mandan; la inferencia es solo backfill.
	if d, err := strconv.Atoi(strings.TrimSpace(raw.Days)); err == nil && d > 0 {
		out.Days = d
		return out, nil
	}

	if d, ok := InferDays(raw.Quantity, raw.Frequency, raw.DosageText); ok {
		out.Days = d
		out.DaysInferred = true
	}

	return out, nil
}
