package marketing

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres. Plans are keyed by analysis,
// so regeneration overwrites in place.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, record Record) error {
	payload, err := json.Marshal(record.Plan)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO marketing_plans (id, user_id, analysis_id, language, model, fallback, plan, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (analysis_id) DO UPDATE SET
  language = EXCLUDED.language,
  model = EXCLUDED.model,
  fallback = EXCLUDED.fallback,
  plan = EXCLUDED.plan,
  created_at = EXCLUDED.created_at`
	_, err = r.DB.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.AnalysisID,
		record.Language,
		record.Model,
		record.Fallback,
		payload,
		record.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByAnalysis(ctx context.Context, userID, analysisID string) (Record, error) {
	const query = `
SELECT id, user_id, analysis_id, language, model, fallback, plan, created_at
FROM marketing_plans
WHERE analysis_id = $1 AND user_id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, analysisID, userID)

	var record Record
	var model sql.NullString
	var payload []byte
	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.AnalysisID,
		&record.Language,
		&model,
		&record.Fallback,
		&payload,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	record.Model = model.String
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &record.Plan); err != nil {
			return Record{}, err
		}
	}
	return record, nil
}
