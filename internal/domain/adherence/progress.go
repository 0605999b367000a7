package adherence

// Las horas se comparan como strings HH:MM:SS zero-padded:
// el orden lexicográfico coincide con el cronológico, así que no hace falta
// parsear nada acá. "now" llega ya muestreado (una sola vez por cálculo).

// ComputeProgress resume el día: cuántas tomas van, cuál sigue, si ya está todo.
//
// La próxima toma es la más temprana de las no tomadas estrictamente posteriores
// a now. Si todas las pendientes ya pasaron, se devuelve igual la más temprana:
// una toma vencida se muestra como "próxima" para que el usuario pueda
// registrarla tarde, en vez de desaparecer del día.
func ComputeProgress(reminderTimes []string, taken []string, now string) Progress {
	takenSet := make(map[string]bool, len(taken))
	for _, t := range taken {
		takenSet[t] = true
	}

	p := Progress{TotalCount: len(reminderTimes)}

	untaken := make([]string, 0, len(reminderTimes))
	for _, rt := range reminderTimes {
		if takenSet[rt] {
			p.TakenCount++
			continue
		}
		untaken = append(untaken, rt)
	}

	if len(untaken) == 0 {
		p.AllTaken = true
		return p
	}

	next := ""
	for _, rt := range untaken {
		if rt > now && (next == "" || rt < next) {
			next = rt
		}
	}
	if next == "" {
		// Todas las pendientes ya vencieron: la más temprana queda como próxima.
		for _, rt := range untaken {
			if next == "" || rt < next {
				next = rt
			}
		}
	}
	p.NextDoseTime = next

	return p
}

// LastMissed devuelve la última hora vencida (estrictamente antes de now) sin
// toma registrada, o "" si no hay. Una hora futura nunca cuenta como perdida.
// Nota: solo se reporta la más reciente del día, no la lista completa.
func LastMissed(reminderTimes []string, taken []string, now string) string {
	takenSet := make(map[string]bool, len(taken))
	for _, t := range taken {
		takenSet[t] = true
	}

	missed := ""
	for _, rt := range reminderTimes {
		if takenSet[rt] {
			continue
		}
		if rt < now && rt > missed {
			missed = rt
		}
	}
	return missed
}
