package extraction

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"medication-adherence/internal/middleware"
	"medication-adherence/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, caps capabilities.CapabilitiesResolver) {
	r.Post("/extractions", createExtractionHandler(svc, caps))
}

type createExtractionRequest struct {
	Image string `json:"image"` // foto de la etiqueta, base64
}

// extractionResponse es el resultado de leer la etiqueta. days = 0 significa
// desconocido: ni la etiqueta lo traía ni se pudo inferir. No se persiste nada;
// el cliente confirma y recién ahí crea el medicamento.
type extractionResponse struct {
	Name         string `json:"name"`
	DosageText   string `json:"dosage_text"`
	Frequency    int    `json:"frequency"`
	Quantity     int    `json:"quantity"`
	Days         int    `json:"days"`
	DaysInferred bool   `json:"days_inferred"`
	Instructions string `json:"instructions"`
}

// createExtractionHandler godoc
// @Summary Leer etiqueta de medicamento
// @Description Manda la foto de la etiqueta al modelo de visión y devuelve nombre, dosis, frecuencia, cantidad e instrucciones. Si la etiqueta no trae días de tratamiento, se infieren de cantidad/frecuencia/dosis. Feature gateada por plan (`label_extraction`). Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags extractions
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body createExtractionRequest true "Imagen base64"
// @Success 200 {object} extractionResponse
// @Failure 400 {string} string "invalid json / imagen inválida"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "feature no habilitada para el plan"
// @Failure 502 {string} string "extractor upstream error"
// @Router /extractions [post]
func createExtractionHandler(svc *Service, caps capabilities.CapabilitiesResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if caps != nil {
			has, err := caps.Has(r.Context(), claims.UserID, capabilities.FeatureLabelExtraction)
			if err != nil || !has {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		var req createExtractionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		img, err := base64.StdEncoding.DecodeString(strings.TrimSpace(req.Image))
		if err != nil || len(img) == 0 {
			http.Error(w, "invalid image", http.StatusBadRequest)
			return
		}

		out, err := svc.Ingest(r.Context(), img)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "invalid image", http.StatusBadRequest)
				return
			}
			// Falla del colaborador de visión: la reportamos como upstream,
			// el retry queda del lado del cliente.
			http.Error(w, "extractor upstream error", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusOK, extractionResponse{
			Name:         out.Name,
			DosageText:   out.DosageText,
			Frequency:    out.Frequency,
			Quantity:     out.Quantity,
			Days:         out.Days,
			DaysInferred: out.DaysInferred,
			Instructions: out.Instructions,
		})
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
