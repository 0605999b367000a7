package extraction

import "testing"

func TestInferDays(t *testing.T) {
	cases := []struct {
		name      string
		quantity  string
		frequency string
		dosage    string
		want      int
		ok        bool
	}{
		{"simple division", "30", "3", "500mg tablet", 10, true},
		{"two units per dose", "32", "2", "Take 2 tablets with food", 8, true},
		{"three units per dose", "30", "1", "3 capsules daily", 10, true},
		{"rounds up", "10", "3", "tablet", 4, true},
		{"floor at one day", "1", "3", "tablet", 1, true},
		{"ocr noise stripped", "30 tabletas", "x3", "tablet", 10, true},
		{"missing quantity", "", "3", "tablet", 0, false},
		{"non numeric quantity", "unas cuantas", "3", "tablet", 0, false},
		{"missing frequency", "30", "", "tablet", 0, false},
		{"zero frequency", "30", "0", "tablet", 0, false},
		{"case insensitive units", "20", "1", "2 PILLS at night", 10, true},
	}

	for _, c := range cases {
		got, ok := InferDays(c.quantity, c.frequency, c.dosage)
		if ok != c.ok || got != c.want {
			t.Fatalf("%s: InferDays(%q, %q, %q) = (%d, %v), expected (%d, %v)",
				c.name, c.quantity, c.frequency, c.dosage, got, ok, c.want, c.ok)
		}
	}
}

func TestInferDays_CoversDispensedQuantity(t *testing.T) {
	// El resultado siempre alcanza para consumir lo despachado:
	// days * frequency * units >= quantity.
	cases := []struct {
		quantity, frequency string
		dosage              string
		units               int
	}{
		{"30", "3", "tablet", 1},
		{"31", "3", "tablet", 1},
		{"7", "2", "2 tablets", 2},
		{"100", "4", "3 pills", 3},
	}

	for _, c := range cases {
		days, ok := InferDays(c.quantity, c.frequency, c.dosage)
		if !ok {
			t.Fatalf("InferDays(%q, %q, %q): expected ok", c.quantity, c.frequency, c.dosage)
		}
		q, _ := parseNumeric(c.quantity)
		f, _ := parseNumeric(c.frequency)
		if float64(days)*f*float64(c.units) < q {
			t.Fatalf("InferDays(%q, %q, %q) = %d days does not cover quantity",
				c.quantity, c.frequency, c.dosage, days)
		}
	}
}

func TestUnitsPerDose(t *testing.T) {
	cases := []struct {
		dosage string
		want   int
	}{
		{"500mg tablet", 1},
		{"Take 2 tablets twice a day", 2},
		{"3 capsules with meals", 3},
		{"2 Pills", 2},
		{"take two tablets", 1}, // solo dígitos, no palabras
		{"", 1},
	}

	for _, c := range cases {
		if got := unitsPerDose(c.dosage); got != c.want {
			t.Fatalf("unitsPerDose(%q) = %d, expected %d", c.dosage, got, c.want)
		}
	}
}
