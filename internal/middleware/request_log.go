package middleware

import (
	"net/http"
	"time"

	"medication-adherence/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLog loguea una línea por request: método, path, status, duración y
// request id. Con logger nil es un no-op (tests).
func RequestLog(lg logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if lg == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			lg.Info("http request", map[string]any{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"duration":   time.Since(start).String(),
				"request_id": chimw.GetReqID(r.Context()),
			})
		})
	}
}
