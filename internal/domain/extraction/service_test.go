package extraction

import (
	"context"
	"errors"
	"testing"

	ports "medication-adherence/internal/ports/extraction"
)

// fakeExtractor devuelve una etiqueta fija o un error, según configuración.
type fakeExtractor struct {
	label ports.RawLabel
	err   error
}

func (f *fakeExtractor) ExtractLabel(_ context.Context, _ []byte) (ports.RawLabel, error) {
	if f.err != nil {
		return ports.RawLabel{}, f.err
	}
	return f.label, nil
}

var somePhoto = []byte{0xff, 0xd8, 0xff}

func TestIngest_ExplicitDaysWin(t *testing.T) {
	svc := NewService(&fakeExtractor{label: ports.RawLabel{
		Name:      "Amoxicillin",
		Frequency: "3",
		Quantity:  "90", // inferiría 30, pero la etiqueta dice 7
		Days:      "7",
	}})

	out, err := svc.Ingest(context.Background(), somePhoto)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if out.Days != 7 || out.DaysInferred {
		t.Fatalf("expected explicit 7 days (not inferred), got days=%d inferred=%v",
			out.Days, out.DaysInferred)
	}
}

func TestIngest_BackfillsInferredDays(t *testing.T) {
	svc := NewService(&fakeExtractor{label: ports.RawLabel{
		Name:       "  Amoxicillin ",
		DosageText: "500mg tablet",
		Frequency:  "3",
		Quantity:   "30",
	}})

	out, err := svc.Ingest(context.Background(), somePhoto)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if out.Days != 10 || !out.DaysInferred {
		t.Fatalf("expected inferred 10 days, got days=%d inferred=%v", out.Days, out.DaysInferred)
	}
	if out.Name != "Amoxicillin" {
		t.Fatalf("expected trimmed name, got %q", out.Name)
	}
	if out.Frequency != 3 || out.Quantity != 30 {
		t.Fatalf("expected parsed frequency/quantity, got %d/%d", out.Frequency, out.Quantity)
	}
}

func TestIngest_UnknownDaysStaysZero(t *testing.T) {
	svc := NewService(&fakeExtractor{label: ports.RawLabel{
		Name:      "Amoxicillin",
		Frequency: "3",
		// sin quantity ni days: no hay de dónde inferir
	}})

	out, err := svc.Ingest(context.Background(), somePhoto)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if out.Days != 0 || out.DaysInferred {
		t.Fatalf("expected unknown days, got days=%d inferred=%v", out.Days, out.DaysInferred)
	}
}

func TestIngest_Errors(t *testing.T) {
	if _, err := NewService(nil).Ingest(context.Background(), somePhoto); !errors.Is(err, ErrNoExtractor) {
		t.Fatalf("nil extractor: expected ErrNoExtractor, got %v", err)
	}

	svc := NewService(&fakeExtractor{label: ports.RawLabel{Name: "X"}})
	if _, err := svc.Ingest(context.Background(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty image: expected ErrInvalidInput, got %v", err)
	}

	upstream := errors.New("vision endpoint down")
	svc = NewService(&fakeExtractor{err: upstream})
	if _, err := svc.Ingest(context.Background(), somePhoto); !errors.Is(err, upstream) {
		t.Fatalf("expected upstream error to propagate, got %v", err)
	}
}
