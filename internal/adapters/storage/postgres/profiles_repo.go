package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"medication-adherence/internal/domain/profiles"
)

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

// Los slots van como dos arrays paralelos (nombres y horas) en la misma fila:
// el orden del array ES el orden canónico del perfil, nunca depende de cómo
// itere nadie un map.
func (r *ProfilesRepo) Get(ctx context.Context, userID string) (profiles.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profiles.Profile{}, profiles.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, slot_names, slot_times, updated_at
		FROM meal_time_profiles
		WHERE user_id = $1
	`, userID)

	var p profiles.Profile
	var names, times []string

	if err := row.Scan(&p.UserID, &names, &times, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return profiles.Profile{}, profiles.ErrNotFound
		}
		return profiles.Profile{}, err
	}

	if len(names) != len(times) {
		return profiles.Profile{}, errors.New("corrupt meal time profile row")
	}

	p.Slots = make([]profiles.Slot, 0, len(names))
	for i := range names {
		p.Slots = append(p.Slots, profiles.Slot{Name: names[i], Time: times[i]})
	}

	return p, nil
}

func (r *ProfilesRepo) Upsert(ctx context.Context, p profiles.Profile) error {
	names := make([]string, 0, len(p.Slots))
	times := make([]string, 0, len(p.Slots))
	for _, s := range p.Slots {
		names = append(names, s.Name)
		times = append(times, s.Time)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO meal_time_profiles (user_id, slot_names, slot_times, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET slot_names = $2, slot_times = $3, updated_at = $4
	`,
		p.UserID,
		names,
		times,
		p.UpdatedAt,
	)
	return err
}
