package plansfeatures

import (
	"context"
	"errors"
	"os"
	"strings"
)

// Resolver implementa capabilities.CapabilitiesResolver contra plans-features.
// Con ALLOW_ALL_CAPABILITIES=true (env) todo devuelve true: modo dev, o
// fallback mientras el upstream no esté desplegado.
type Resolver struct {
	client   *Client
	allowAll bool
}

func NewResolver(client *Client) *Resolver {
	allowAll := strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_ALL_CAPABILITIES")), "true")
	return &Resolver{
		client:   client,
		allowAll: allowAll,
	}
}

// Has responde si userID tiene una feature habilitada por su plan.
func (r *Resolver) Has(ctx context.Context, userID string, feature string) (bool, error) {
	feature = strings.TrimSpace(feature)
	if feature == "" {
		return false, errors.New("feature required")
	}

	if r != nil && r.allowAll {
		return true, nil
	}

	if r == nil || r.client == nil || !r.client.IsConfigured() {
		// Preferimos fallar explícito antes que "permitir" sin control.
		return false, ErrPlansNotConfigured
	}

	resp, err := r.client.GetFeatures(ctx, userID)
	if err != nil {
		return false, err
	}

	return resp.Features[feature], nil
}
