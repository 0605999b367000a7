package profiles

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"medication-adherence/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/me/meal-times", func(pr chi.Router) {
		pr.Get("/", getMealTimesHandler(svc))
		pr.Put("/", putMealTimesHandler(svc))
	})
}

type slotPayload struct {
	Name string `json:"name"`
	Time string `json:"time"` // HH:MM o HH:MM:SS
}

// mealTimesResponse es el perfil de horas de comida, en orden canónico:
// breakfast, lunch, dinner y después los slots custom.
type mealTimesResponse struct {
	Slots     []slotPayload `json:"slots"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
}

// getMealTimesHandler godoc
// @Summary Ver mis horas de comida
// @Description Devuelve el perfil de horas de comida del usuario. Si nunca guardó uno, devuelve el default (08:00 / 13:00 / 19:00). Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags profiles
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {object} mealTimesResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/meal-times [get]
func getMealTimesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Get(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toMealTimesResponse(p))
	}
}

// putMealTimesHandler godoc
// @Summary Reemplazar mis horas de comida
// @Description Reemplaza el perfil completo. Los slots canónicos (breakfast/lunch/dinner) quedan siempre primero; los custom conservan el orden enviado. Nombres duplicados son inválidos, horas duplicadas no.
// @Tags profiles
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body []slotPayload true "Slots con nombre y hora"
// @Success 200 {object} mealTimesResponse
// @Failure 400 {string} string "invalid json / slots inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /me/meal-times [put]
func putMealTimesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req []slotPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := make([]SlotInput, 0, len(req))
		for _, sp := range req {
			in = append(in, SlotInput{Name: sp.Name, Time: sp.Time})
		}

		p, err := svc.Put(r.Context(), claims.UserID, in)
		if err != nil {
			// Entrada inválida u hora ilegible, ambas son culpa del payload.
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, toMealTimesResponse(p))
	}
}

func toMealTimesResponse(p Profile) mealTimesResponse {
	out := mealTimesResponse{Slots: make([]slotPayload, 0, len(p.Slots))}
	for _, s := range p.Slots {
		out.Slots = append(out.Slots, slotPayload{Name: s.Name, Time: s.Time})
	}
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
