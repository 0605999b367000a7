package adherence

import "context"

// Repository persiste los dose logs.
//
// Insert debe ser idempotente respecto de (MedicationID, LogDate, LogTime):
// si ya existe un log para esa tripleta devuelve created=false sin error.
// El store es quien garantiza la unicidad (índice único en Postgres, key
// compuesta en memoria); dos Insert concurrentes nunca duplican fila.
type Repository interface {
	Insert(ctx context.Context, l DoseLog) (created bool, err error)
	TakenTimes(ctx context.Context, medicationID, logDate string) ([]string, error)
	ListByDate(ctx context.Context, medicationID, logDate string) ([]DoseLog, error)
	DeleteByMedication(ctx context.Context, medicationID string) error
}
