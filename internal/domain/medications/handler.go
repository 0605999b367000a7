package medications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"medication-adherence/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// LogPurger borra los dose logs de un medicamento al eliminarlo.
// adherence.Service lo implementa; la interfaz vive acá para no importar
// ese módulo y armar un ciclo (adherence ya importa medications).
type LogPurger interface {
	DeleteLogs(ctx context.Context, medicationID string) error
}

// MealTimesSource entrega las horas de comida del usuario en orden canónico.
// profiles.Service lo implementa; misma inversión que LogPurger, porque
// profiles ya importa este módulo (NormalizeClockTime).
type MealTimesSource interface {
	MealTimes(ctx context.Context, userID string) ([]string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, meals MealTimesSource, purger LogPurger) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Post("/", createMedicationHandler(svc, meals))
		mr.Get("/", listMedicationsHandler(svc))
		mr.Get("/{medicationID}", getMedicationHandler(svc))
		mr.Patch("/{medicationID}", updateMedicationHandler(svc, meals))
		mr.Delete("/{medicationID}", deleteMedicationHandler(svc, purger))
	})
}

// createMedicationRequest es el cuerpo para registrar un medicamento.
// reminder_times solo se respeta con frecuencia 1 o 2 (selección manual de
// horas de comida); en cualquier otro caso el horario sale del perfil.
type createMedicationRequest struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency int    `json:"frequency"`

	ReminderTimes []string `json:"reminder_times"` // opcional
	DaysRemaining *int     `json:"days_remaining"` // opcional; ausente = sin límite

	PrescriptionID string `json:"prescription_id"` // opcional
	Instructions   string `json:"instructions"`    // opcional
}

type updateMedicationRequest struct {
	Name          *string  `json:"name"`
	Dosage        *string  `json:"dosage"`
	Frequency     *int     `json:"frequency"`
	ReminderTimes []string `json:"reminder_times"`
	DaysRemaining *int     `json:"days_remaining"`
	Instructions  *string  `json:"instructions"`
}

// medicationResponse representa un medicamento devuelto por la API.
type medicationResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Dosage         string    `json:"dosage"`
	Frequency      int       `json:"frequency"`
	ReminderTimes  []string  `json:"reminder_times"`
	DaysRemaining  int       `json:"days_remaining"` // -1 = sin límite
	PrescriptionID string    `json:"prescription_id,omitempty"`
	Instructions   string    `json:"instructions,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// createMedicationHandler godoc
// @Summary Registrar medicamento
// @Description Crea un medicamento para el usuario autenticado. Las horas de recordatorio se arman con la frecuencia y las horas de comida del perfil; con frecuencia 1-2 el usuario puede mandar reminder_times para elegir a mano. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags medications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body createMedicationRequest true "Datos del medicamento"
// @Success 201 {object} medicationResponse
// @Failure 400 {string} string "invalid json / frecuencia inválida / horas inválidas"
// @Failure 401 {string} string "unauthorized"
// @Router /medications [post]
func createMedicationHandler(svc *Service, meals MealTimesSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		mealTimes, err := meals.MealTimes(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// Selección manual solo para 1 o 2 tomas diarias; si no matchea la
		// frecuencia, el service la descarta solo.
		explicit := req.ReminderTimes
		if req.Frequency > 2 {
			explicit = nil
		}

		m, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:           req.Name,
			Dosage:         req.Dosage,
			Frequency:      req.Frequency,
			MealTimes:      mealTimes,
			ExplicitTimes:  explicit,
			DaysRemaining:  req.DaysRemaining,
			PrescriptionID: req.PrescriptionID,
			Instructions:   req.Instructions,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toMedicationResponse(m))
	}
}

// listMedicationsHandler godoc
// @Summary Listar mis medicamentos
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {array} medicationResponse
// @Failure 401 {string} string "unauthorized"
// @Router /medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicationResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getMedicationHandler godoc
// @Summary Ver un medicamento
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {object} medicationResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [get]
func getMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := ownedMedication(w, r, svc)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

// updateMedicationHandler godoc
// @Summary Editar un medicamento
// @Description Actualiza campos del medicamento. Si cambia frequency, las horas de recordatorio se regeneran completas (perfil + relleno sintético); reminder_times manual solo aplica con frecuencia 1-2.
// @Tags medications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param medicationID path string true "ID del medicamento"
// @Param payload body updateMedicationRequest true "Campos a actualizar"
// @Success 200 {object} medicationResponse
// @Failure 400 {string} string "invalid json / frecuencia inválida"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [patch]
func updateMedicationHandler(svc *Service, meals MealTimesSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		m, ok := ownedMedication(w, r, svc)
		if !ok {
			return
		}

		var req updateMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:          req.Name,
			Dosage:        req.Dosage,
			Frequency:     req.Frequency,
			DaysRemaining: req.DaysRemaining,
			Instructions:  req.Instructions,
		}

		if req.Frequency != nil {
			mealTimes, err := meals.MealTimes(r.Context(), claims.UserID)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			in.MealTimes = mealTimes
			if *req.Frequency <= 2 {
				in.ExplicitTimes = req.ReminderTimes
			}
		}

		updated, err := svc.Update(r.Context(), m.ID, in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, toMedicationResponse(updated))
	}
}

// deleteMedicationHandler godoc
// @Summary Eliminar un medicamento
// @Description Borra el medicamento y sus dose logs (cascade).
// @Tags medications
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param medicationID path string true "ID del medicamento"
// @Success 204 {string} string ""
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [delete]
func deleteMedicationHandler(svc *Service, purger LogPurger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := ownedMedication(w, r, svc)
		if !ok {
			return
		}

		if purger != nil {
			if err := purger.DeleteLogs(r.Context(), m.ID); err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
		}
		if err := svc.Delete(r.Context(), m.ID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ownedMedication resuelve claims + path param + ownership.
// Escribe la respuesta de error y devuelve ok=false si algo falla.
func ownedMedication(w http.ResponseWriter, r *http.Request, svc *Service) (Medication, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return Medication{}, false
	}

	medID := chi.URLParam(r, "medicationID")
	m, err := svc.GetByID(r.Context(), medID)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) {
			http.Error(w, "medication not found", http.StatusNotFound)
			return Medication{}, false
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return Medication{}, false
	}

	// Cada usuario solo ve sus propios medicamentos; devolvemos 404 (no 403)
	// para no confirmar que el ID existe.
	if m.UserID != claims.UserID {
		http.Error(w, "medication not found", http.StatusNotFound)
		return Medication{}, false
	}

	return m, true
}

func toMedicationResponse(m Medication) medicationResponse {
	return medicationResponse{
		ID:             m.ID,
		Name:           m.Name,
		Dosage:         m.Dosage,
		Frequency:      m.Frequency,
		ReminderTimes:  m.ReminderTimes,
		DaysRemaining:  m.DaysRemaining,
		PrescriptionID: m.PrescriptionID,
		Instructions:   m.Instructions,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
