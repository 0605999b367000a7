// @title Medication Adherence API
// @version 1.0
// @description API de medicamentos, horarios de tomas y adherencia.
// @BasePath /
package main

import (
	"net/http"
	"os"
	"time"

	"medication-adherence/internal/adapters/auth/idp"
	"medication-adherence/internal/adapters/capabilities/plansfeatures"
	"medication-adherence/internal/adapters/extraction/visionlabel"
	"medication-adherence/internal/platform/logger"
	"medication-adherence/internal/ports/auth"
	"medication-adherence/internal/ports/capabilities"
	portsext "medication-adherence/internal/ports/extraction"
	"medication-adherence/internal/router"
)

func main() {
	lg := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := router.NewRouter(router.Options{
		AuthVerifier:   verifierFromEnv(lg),
		Logger:         lg,
		LabelExtractor: extractorFromEnv(lg),
		Capabilities:   capabilitiesFromEnv(lg),
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second, // la extracción espera al modelo de visión
	}

	lg.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lg.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}

// verifierFromEnv arma el verifier contra el IdP, o nil (modo dev) si no hay
// AUTH_BASE_URL configurada.
func verifierFromEnv(lg logger.Logger) auth.AuthVerifier {
	baseURL := os.Getenv("AUTH_BASE_URL")
	if baseURL == "" {
		lg.Warn("auth verifier not configured, running in dev mode", nil)
		return nil
	}

	client, err := idp.NewClient(idp.Config{
		BaseURL: baseURL,
		APIKey:  os.Getenv("AUTH_API_KEY"),
	})
	if err != nil {
		lg.Error("invalid auth config", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	return idp.NewVerifier(client)
}

func extractorFromEnv(lg logger.Logger) portsext.LabelExtractor {
	baseURL := os.Getenv("EXTRACT_BASE_URL")
	if baseURL == "" {
		lg.Warn("label extractor not configured, /extractions disabled", nil)
		return nil
	}

	client, err := visionlabel.NewClient(visionlabel.Config{
		BaseURL: baseURL,
		APIKey:  os.Getenv("EXTRACT_API_KEY"),
	})
	if err != nil {
		lg.Error("invalid extractor config", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	return client
}

func capabilitiesFromEnv(lg logger.Logger) capabilities.CapabilitiesResolver {
	baseURL := os.Getenv("PLANS_BASE_URL")

	var client *plansfeatures.Client
	if baseURL != "" {
		c, err := plansfeatures.NewClient(plansfeatures.Config{
			BaseURL: baseURL,
			APIKey:  os.Getenv("PLANS_API_KEY"),
		})
		if err != nil {
			lg.Error("invalid plans-features config", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		client = c
	} else {
		lg.Warn("plans-features not configured, relying on ALLOW_ALL_CAPABILITIES", nil)
	}

	return plansfeatures.NewResolver(client)
}
