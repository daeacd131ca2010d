package analysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres. The result is stored as a
// jsonb document alongside the submission metadata.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, record Record) error {
	payload, err := json.Marshal(record.Result)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO analyses (id, user_id, idea_text, mode, language, model, result, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.DB.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.IdeaText,
		string(record.Mode),
		record.Language,
		record.Model,
		payload,
		record.CreatedAt,
	)
	return err
}

func (r *PGRepo) UpdateResult(ctx context.Context, userID, recordID string, result Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE analyses SET result = $1, updated_at = now() WHERE id = $2 AND user_id = $3`,
		payload, recordID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, userID, recordID string) (Record, error) {
	const query = `
SELECT id, user_id, idea_text, mode, language, model, result, created_at
FROM analyses
WHERE id = $1 AND user_id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, recordID, userID)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return record, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
SELECT id, user_id, idea_text, mode, language, model, result, created_at
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var record Record
	var mode string
	var model sql.NullString
	var payload []byte
	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.IdeaText,
		&mode,
		&record.Language,
		&model,
		&payload,
		&record.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}
	record.Mode = Mode(mode)
	record.Model = model.String
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &record.Result); err != nil {
			return Record{}, err
		}
	}
	return record, nil
}
