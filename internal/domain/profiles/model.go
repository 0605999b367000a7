package profiles

import "time"

// Nombres canónicos de slots. El orden del perfil es siempre:
// breakfast, lunch, dinner y después los custom en el orden que definió el
// usuario. Nunca dependemos del orden de iteración de un map.
const (
	SlotBreakfast = "breakfast"
	SlotLunch     = "lunch"
	SlotDinner    = "dinner"
)

// Slot es un ancla horaria con nombre (desayuno, almuerzo, cena o custom).
type Slot struct {
	Name string
	Time string // HH:MM:SS
}

// Profile son las horas de comida del usuario, como lista ordenada.
type Profile struct {
	UserID string
	Slots  []Slot

	UpdatedAt time.Time
}

// Times devuelve solo las horas, en orden canónico.
func (p Profile) Times() []string {
	out := make([]string, 0, len(p.Slots))
	for _, s := range p.Slots {
		out = append(out, s.Time)
	}
	return out
}

// DefaultSlots es el perfil que ve un usuario que nunca guardó el suyo.
func DefaultSlots() []Slot {
	return []Slot{
		{Name: SlotBreakfast, Time: "08:00:00"},
		{Name: SlotLunch, Time: "13:00:00"},
		{Name: SlotDinner, Time: "19:00:00"},
	}
}
