package capabilities

import "context"

// Features conocidas por el backend. La extracción de etiquetas usa un modelo
// de visión pago, así que va gateada por plan.
const (
	FeatureLabelExtraction = "label_extraction"
)

// CapabilitiesResolver decide si un usuario tiene habilitada una feature.
type CapabilitiesResolver interface {
	Has(ctx context.Context, userID string, feature string) (bool, error)
}
