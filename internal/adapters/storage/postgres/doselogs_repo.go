package postgres

import (
	"context"
	"database/sql"
	"strings"

	"medication-adherence/internal/domain/adherence"
)

type DoseLogsRepo struct {
	db *sql.DB
}

func NewDoseLogsRepo(db *sql.DB) *DoseLogsRepo {
	return &DoseLogsRepo{db: db}
}

// Insert es idempotente: la tabla tiene unique (medication_id, log_date,
// log_time) y acá va ON CONFLICT DO NOTHING, así que dos inserts casi
// simultáneos de la misma toma nunca duplican fila: el segundo afecta 0 filas
// y devuelve created=false.
func (r *DoseLogsRepo) Insert(ctx context.Context, l adherence.DoseLog) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO dose_logs (
			id, medication_id,
			log_date, log_time,
			status, created_at
		) VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (medication_id, log_date, log_time) DO NOTHING
	`,
		l.ID,
		l.MedicationID,
		l.LogDate,
		l.LogTime,
		string(l.Status),
		l.CreatedAt,
	)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *DoseLogsRepo) TakenTimes(ctx context.Context, medicationID, logDate string) ([]string, error) {
	medicationID = strings.TrimSpace(medicationID)
	if medicationID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT log_time
		FROM dose_logs
		WHERE medication_id = $1 AND log_date = $2 AND status = 'taken'
		ORDER BY log_time ASC
	`, medicationID, logDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, rows.Err()
}

func (r *DoseLogsRepo) ListByDate(ctx context.Context, medicationID, logDate string) ([]adherence.DoseLog, error) {
	medicationID = strings.TrimSpace(medicationID)
	if medicationID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, medication_id, log_date, log_time, status, created_at
		FROM dose_logs
		WHERE medication_id = $1 AND log_date = $2
		ORDER BY log_time ASC
	`, medicationID, logDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adherence.DoseLog, 0)
	for rows.Next() {
		var l adherence.DoseLog
		var status string
		if err := rows.Scan(
			&l.ID,
			&l.MedicationID,
			&l.LogDate,
			&l.LogTime,
			&status,
			&l.CreatedAt,
		); err != nil {
			return nil, err
		}
		l.Status = adherence.DoseStatus(status)
		out = append(out, l)
	}

	return out, rows.Err()
}

func (r *DoseLogsRepo) DeleteByMedication(ctx context.Context, medicationID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM dose_logs
		WHERE medication_id = $1
	`, medicationID)
	return err
}
