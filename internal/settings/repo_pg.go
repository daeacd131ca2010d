package settings

import (
	"context"
	"database/sql"
	"strconv"
	"time"
)

// PGRepo implements Repo over the app_settings key/value table.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Get(ctx context.Context) (Settings, error) {
	const query = `SELECT key, value, updated_at FROM app_settings`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return Settings{}, err
	}
	defer rows.Close()

	var s Settings
	for rows.Next() {
		var key, value string
		var updatedAt time.Time
		if err := rows.Scan(&key, &value, &updatedAt); err != nil {
			return Settings{}, err
		}
		if updatedAt.After(s.UpdatedAt) {
			s.UpdatedAt = updatedAt
		}
		switch key {
		case keyAIAPIKey:
			s.AIAPIKey = value
		case keyAIModel:
			s.AIModel = value
		case keyDailyAnalysisLimit:
			if n, err := strconv.Atoi(value); err == nil {
				s.DailyAnalysisLimit = n
			}
		case keyDailyPlanLimit:
			if n, err := strconv.Atoi(value); err == nil {
				s.DailyPlanLimit = n
			}
		}
	}
	if err := rows.Err(); err != nil {
		return Settings{}, err
	}
	return withDefaults(s), nil
}

func (r *PGRepo) Update(ctx context.Context, s Settings) error {
	s = withDefaults(s)
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	pairs := map[string]string{
		keyAIAPIKey:           s.AIAPIKey,
		keyAIModel:            s.AIModel,
		keyDailyAnalysisLimit: strconv.Itoa(s.DailyAnalysisLimit),
		keyDailyPlanLimit:     strconv.Itoa(s.DailyPlanLimit),
	}
	const query = `
INSERT INTO app_settings (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	for key, value := range pairs {
		if _, err := tx.ExecContext(ctx, query, key, value); err != nil {
			return err
		}
	}
	return tx.Commit()
}
