package adherence

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"medication-adherence/internal/domain/medications"
	"medication-adherence/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, medsSvc *medications.Service) {
	// Rutas sueltas (sin Route/Mount en "{medicationID}") para no pisar el
	// subrouter de /medications del módulo medications.
	r.Get("/medications/{medicationID}/progress", progressHandler(svc, medsSvc))
	r.Get("/medications/{medicationID}/next-dose", nextDoseHandler(svc, medsSvc))
	r.Post("/medications/{medicationID}/doses/taken", markTakenHandler(svc, medsSvc))
}

// progressResponse es el estado del día de un medicamento.
// next_dose_time vacío = no queda nada hoy; last_missed vacío = nada vencido.
type progressResponse struct {
	TakenCount   int    `json:"taken_count"`
	TotalCount   int    `json:"total_count"`
	NextDoseTime string `json:"next_dose_time,omitempty"`
	AllTaken     bool   `json:"all_taken"`
	State        string `json:"state"`
	LastMissed   string `json:"last_missed,omitempty"`
}

type nextDoseResponse struct {
	Time    string `json:"time"`
	NextDay bool   `json:"next_day"`
}

type markTakenRequest struct {
	Time string `json:"time"` // HH:MM o HH:MM:SS, debe estar en el horario vigente
}

type markTakenResponse struct {
	progressResponse
	DaysRemaining  int  `json:"days_remaining"`
	CourseComplete bool `json:"course_complete"`
}

// progressHandler godoc
// @Summary Progreso de hoy
// @Description Resumen del día: tomas hechas/totales, próxima toma (una vencida se reporta igual como próxima) y última toma perdida. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags adherence
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {object} progressResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID}/progress [get]
func progressHandler(svc *Service, medsSvc *medications.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medID, ok := ownedMedicationID(w, r, medsSvc)
		if !ok {
			return
		}

		prog, missed, err := svc.DaySummary(r.Context(), medID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toProgressResponse(prog, missed))
	}
}

// nextDoseHandler godoc
// @Summary Próxima toma
// @Description Próxima toma cruzando días: hoy si queda algo, primera hora de mañana si el curso sigue, 204 si el curso terminó (no habrá más tomas).
// @Tags adherence
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {object} nextDoseResponse
// @Success 204 {string} string "curso terminado"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID}/next-dose [get]
func nextDoseHandler(svc *Service, medsSvc *medications.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medID, ok := ownedMedicationID(w, r, medsSvc)
		if !ok {
			return
		}

		nd, err := svc.NextDose(r.Context(), medID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if nd == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		writeJSON(w, http.StatusOK, nextDoseResponse{Time: nd.Time, NextDay: nd.NextDay})
	}
}

// markTakenHandler godoc
// @Summary Marcar toma
// @Description Registra una toma de hoy. Idempotente: repetir la misma hora no duplica el log ni decrementa dos veces los días restantes. Al completar todas las tomas del día, days_remaining baja en 1 (piso 0).
// @Tags adherence
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param medicationID path string true "ID del medicamento"
// @Param payload body markTakenRequest true "Hora agendada a marcar"
// @Success 200 {object} markTakenResponse
// @Failure 400 {string} string "invalid json / hora fuera del horario"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Failure 409 {string} string "curso ya terminado"
// @Router /medications/{medicationID}/doses/taken [post]
func markTakenHandler(svc *Service, medsSvc *medications.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medID, ok := ownedMedicationID(w, r, medsSvc)
		if !ok {
			return
		}

		var req markTakenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.MarkTaken(r.Context(), medID, req.Time)
		if err != nil {
			switch {
			case errors.Is(err, ErrUnknownDoseTime):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrCourseComplete):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, markTakenResponse{
			progressResponse: toProgressResponse(res.Progress, ""),
			DaysRemaining:    res.DaysRemaining,
			CourseComplete:   res.CourseComplete,
		})
	}
}

// ownedMedicationID valida claims + ownership y devuelve el ID del medicamento.
func ownedMedicationID(w http.ResponseWriter, r *http.Request, medsSvc *medications.Service) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}

	medID := chi.URLParam(r, "medicationID")
	owner, err := medsSvc.OwnerOf(r.Context(), medID)
	if err != nil || owner != claims.UserID {
		http.Error(w, "medication not found", http.StatusNotFound)
		return "", false
	}

	return medID, true
}

func toProgressResponse(p Progress, missed string) progressResponse {
	return progressResponse{
		TakenCount:   p.TakenCount,
		TotalCount:   p.TotalCount,
		NextDoseTime: p.NextDoseTime,
		AllTaken:     p.AllTaken,
		State:        string(p.State()),
		LastMissed:   missed,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
