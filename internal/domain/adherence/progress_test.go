package adherence

import "testing"

func TestComputeProgress_NextIsEarliestUpcomingUntaken(t *testing.T) {
	// Dos tomas (08 y 18), son las 10:00 y no se registró ninguna.
	p := ComputeProgress([]string{"08:00:00", "18:00:00"}, nil, "10:00:00")

	if p.TakenCount != 0 || p.TotalCount != 2 {
		t.Fatalf("expected 0/2, got %d/%d", p.TakenCount, p.TotalCount)
	}
	// La de las 08 ya venció; la próxima es la de las 18.
	if p.NextDoseTime != "18:00:00" {
		t.Fatalf("expected next dose 18:00:00, got %q", p.NextDoseTime)
	}
	if p.AllTaken {
		t.Fatal("nothing taken, AllTaken must be false")
	}
}

func TestComputeProgress_OverdueDoseSurfacesAsNext(t *testing.T) {
	// Son las 20:00, la de las 08 está tomada y la de las 18 quedó pendiente.
	// La vencida se devuelve como próxima para poder registrarla tarde.
	p := ComputeProgress([]string{"08:00:00", "18:00:00"}, []string{"08:00:00"}, "20:00:00")

	if p.TakenCount != 1 {
		t.Fatalf("expected 1 taken, got %d", p.TakenCount)
	}
	if p.NextDoseTime != "18:00:00" {
		t.Fatalf("expected overdue 18:00:00 as next, got %q", p.NextDoseTime)
	}
}

func TestComputeProgress_AllTaken(t *testing.T) {
	times := []string{"08:00:00", "13:00:00", "19:00:00"}
	p := ComputeProgress(times, []string{"13:00:00", "08:00:00", "19:00:00"}, "21:00:00")

	if !p.AllTaken {
		t.Fatal("expected AllTaken")
	}
	if p.NextDoseTime != "" {
		t.Fatalf("expected no next dose, got %q", p.NextDoseTime)
	}
	if p.State() != DayStateComplete {
		t.Fatalf("expected complete state, got %q", p.State())
	}
}

func TestComputeProgress_AllOverdueFallsBackToEarliest(t *testing.T) {
	p := ComputeProgress([]string{"08:00:00", "13:00:00"}, nil, "23:00:00")

	if p.NextDoseTime != "08:00:00" {
		t.Fatalf("expected earliest overdue 08:00:00, got %q", p.NextDoseTime)
	}
}

func TestProgress_StateTransitions(t *testing.T) {
	cases := []struct {
		taken []string
		want  DayState
	}{
		{nil, DayStatePending},
		{[]string{"08:00:00"}, DayStatePartial},
		{[]string{"08:00:00", "18:00:00"}, DayStateComplete},
	}

	for _, c := range cases {
		p := ComputeProgress([]string{"08:00:00", "18:00:00"}, c.taken, "12:00:00")
		if got := p.State(); got != c.want {
			t.Fatalf("taken=%v: expected %q, got %q", c.taken, c.want, got)
		}
	}
}

func TestLastMissed(t *testing.T) {
	times := []string{"08:00:00", "13:00:00", "19:00:00"}

	cases := []struct {
		name  string
		taken []string
		now   string
		want  string
	}{
		{"nothing elapsed", nil, "07:00:00", ""},
		{"one missed", nil, "10:00:00", "08:00:00"},
		{"latest of two missed", nil, "15:00:00", "13:00:00"},
		{"taken doses not missed", []string{"08:00:00", "13:00:00"}, "15:00:00", ""},
		{"future never missed", []string{"08:00:00"}, "14:00:00", "13:00:00"},
		{"exact reminder time not yet missed", nil, "08:00:00", ""},
	}

	for _, c := range cases {
		if got := LastMissed(times, c.taken, c.now); got != c.want {
			t.Fatalf("%s: expected %q, got %q", c.name, c.want, got)
		}
	}
}
