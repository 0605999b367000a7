package medications

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuildReminderSchedule_ExactLengthForAllFrequencies(t *testing.T) {
	profile := []string{"08:00:00", "13:00:00", "19:00:00"}

	for freq := 1; freq <= 6; freq++ {
		times, err := BuildReminderSchedule(freq, profile, nil)
		if err != nil {
			t.Fatalf("freq=%d: unexpected error: %v", freq, err)
		}
		if len(times) != freq {
			t.Fatalf("freq=%d: expected %d times, got %d (%v)", freq, freq, len(times), times)
		}
		for _, tm := range times {
			if len(tm) != 8 || tm[2] != ':' || tm[5] != ':' || tm[6:] != "00" {
				t.Fatalf("freq=%d: time %q is not normalized HH:MM:00", freq, tm)
			}
		}
	}
}

func TestBuildReminderSchedule_TakesProfileInCanonicalOrder(t *testing.T) {
	// Perfil típico: desayuno 08:00, almuerzo 13:00, cena 19:00.
	profile := []string{"08:00", "13:00", "19:00"}

	times, err := BuildReminderSchedule(2, profile, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"08:00:00", "13:00:00"}
	if !reflect.DeepEqual(times, want) {
		t.Fatalf("expected %v, got %v", want, times)
	}
}

func TestBuildReminderSchedule_ExplicitSelectionKeepsUserOrder(t *testing.T) {
	profile := []string{"08:00", "13:00", "19:00"}

	// El usuario eligió cena y desayuno, en ese orden. No se reordena.
	times, err := BuildReminderSchedule(2, profile, []string{"19:00", "08:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"19:00:00", "08:00:00"}
	if !reflect.DeepEqual(times, want) {
		t.Fatalf("expected %v, got %v", want, times)
	}
}

func TestBuildReminderSchedule_ExplicitCountMismatchFallsBackToProfile(t *testing.T) {
	profile := []string{"08:00", "13:00", "19:00"}

	times, err := BuildReminderSchedule(2, profile, []string{"19:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"08:00:00", "13:00:00"}
	if !reflect.DeepEqual(times, want) {
		t.Fatalf("expected fallback to profile %v, got %v", want, times)
	}
}

func TestBuildReminderSchedule_PadsWithSyntheticTimes(t *testing.T) {
	// Perfil corto: un solo slot para frecuencia 4.
	times, err := BuildReminderSchedule(4, []string{"07:30"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"07:30:00", "08:00:00", "12:00:00", "16:00:00"}
	if !reflect.DeepEqual(times, want) {
		t.Fatalf("expected %v, got %v", want, times)
	}
}

func TestBuildReminderSchedule_EmptyProfileAllSynthetic(t *testing.T) {
	times, err := BuildReminderSchedule(6, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 08, 12, 16, 20 y después sigue dando la vuelta: 00, 04.
	want := []string{"08:00:00", "12:00:00", "16:00:00", "20:00:00", "00:00:00", "04:00:00"}
	if !reflect.DeepEqual(times, want) {
		t.Fatalf("expected %v, got %v", want, times)
	}
}

func TestBuildReminderSchedule_DuplicateProfileTimesPreserved(t *testing.T) {
	// Dos slots a la misma hora: no se deduplica.
	times, err := BuildReminderSchedule(2, []string{"09:00", "09:00"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"09:00:00", "09:00:00"}
	if !reflect.DeepEqual(times, want) {
		t.Fatalf("expected duplicates preserved %v, got %v", want, times)
	}
}

func TestBuildReminderSchedule_InvalidFrequency(t *testing.T) {
	for _, freq := range []int{0, -1} {
		if _, err := BuildReminderSchedule(freq, nil, nil); !errors.Is(err, ErrInvalidFrequency) {
			t.Fatalf("freq=%d: expected ErrInvalidFrequency, got %v", freq, err)
		}
	}
}

func TestNormalizeClockTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"08:00", "08:00:00", true},
		{"8:5", "08:05:00", true},
		{"19:30:45", "19:30:00", true}, // segundos siempre a 00
		{" 13:00 ", "13:00:00", true},
		{"24:00", "", false},
		{"12:60", "", false},
		{"mediodía", "", false},
		{"", "", false},
	}

	for _, c := range cases {
		got, err := NormalizeClockTime(c.in)
		if c.ok && (err != nil || got != c.want) {
			t.Fatalf("NormalizeClockTime(%q) = (%q, %v), expected %q", c.in, got, err, c.want)
		}
		if !c.ok && err == nil {
			t.Fatalf("NormalizeClockTime(%q): expected error, got %q", c.in, got)
		}
	}
}
