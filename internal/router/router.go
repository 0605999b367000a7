package router

import (
	"database/sql"
	"net/http"
	"os"

	_ "medication-adherence/docs"
	mem "medication-adherence/internal/adapters/storage/memory"
	pg "medication-adherence/internal/adapters/storage/postgres"
	"medication-adherence/internal/domain/adherence"
	"medication-adherence/internal/domain/extraction"
	"medication-adherence/internal/domain/medications"
	"medication-adherence/internal/domain/profiles"
	"medication-adherence/internal/middleware"
	"medication-adherence/internal/platform/logger"
	"medication-adherence/internal/ports/auth"
	"medication-adherence/internal/ports/capabilities"
	portsext "medication-adherence/internal/ports/extraction"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Logger para la línea por request; nil = sin request log (tests).
	Logger logger.Logger

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Colaboradores externos. LabelExtractor nil => /extractions responde 502.
	// Capabilities nil => sin gate de plan (dev).
	LabelExtractor portsext.LabelExtractor
	Capabilities   capabilities.CapabilitiesResolver
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(opts.Logger))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	var (
		medsRepo     medications.Repository
		profilesRepo profiles.Repository
		logsRepo     adherence.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		medsRepo = pg.NewMedicationsRepo(db)
		profilesRepo = pg.NewProfilesRepo(db)
		logsRepo = pg.NewDoseLogsRepo(db)
	} else {
		medsRepo = mem.NewMedicationsRepo()
		profilesRepo = mem.NewProfilesRepo()
		logsRepo = mem.NewDoseLogsRepo()
	}

	// Services por módulo
	medsSvc := medications.NewService(medsRepo)
	profilesSvc := profiles.NewService(profilesRepo)
	adherenceSvc := adherence.NewService(logsRepo, medsSvc)
	extractionSvc := extraction.NewService(opts.LabelExtractor)

	// Rutas por módulo
	medications.RegisterRoutes(r, medsSvc, profilesSvc, adherenceSvc)
	profiles.RegisterRoutes(r, profilesSvc)
	adherence.RegisterRoutes(r, adherenceSvc, medsSvc)
	extraction.RegisterRoutes(r, extractionSvc, opts.Capabilities)

	return r
}
