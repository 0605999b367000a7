package visionlabel

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"medication-adherence/internal/platform/httpclient"
	ports "medication-adherence/internal/ports/extraction"
)

var (
	ErrNotConfigured = errors.New("vision label client not configured")
	ErrUpstream      = errors.New("vision label upstream error")
)

// Config del cliente del endpoint de visión hosteado.
// BaseURL y APIKey normalmente vienen de env vars (EXTRACT_BASE_URL /
// EXTRACT_API_KEY) en quien lo instancie.
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: header de la API key. Vacío => "X-Api-Key".
	APIKeyHeader string

	// El modelo de visión tarda; default generoso.
	Timeout time.Duration
}

type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

// extractRequest/extractResponse siguen el contrato del endpoint de visión:
// entra la imagen en base64, salen los campos de la etiqueta como texto crudo
// (el módulo de extracción valida y completa después).
type extractRequest struct {
	Image string `json:"image"`
}

type extractResponse struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Quantity     string `json:"quantity"`
	Days         string `json:"days"`
	Instructions string `json:"instructions"`
}

// ExtractLabel implementa ports/extraction.LabelExtractor.
func (c *Client) ExtractLabel(ctx context.Context, image []byte) (ports.RawLabel, error) {
	if !c.IsConfigured() {
		return ports.RawLabel{}, ErrNotConfigured
	}
	if len(image) == 0 {
		return ports.RawLabel{}, errors.New("image is empty")
	}

	headers := map[string]string{
		c.apiKeyHeader: c.apiKey,
	}

	var out extractResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/v1/label/extract", headers,
		extractRequest{Image: base64.StdEncoding.EncodeToString(image)},
		&out,
	)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			return ports.RawLabel{}, fmt.Errorf("%w: status=%d", ErrUpstream, httpErr.StatusCode)
		}
		return ports.RawLabel{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return ports.RawLabel{
		Name:         out.Name,
		DosageText:   out.Dosage,
		Frequency:    out.Frequency,
		Quantity:     out.Quantity,
		Days:         out.Days,
		Instructions: out.Instructions,
	}, nil
}
