package usage

import (
	"context"
	"database/sql"
	"errors"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed usage store.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) IncrementBelow(ctx context.Context, userID string, kind Kind, day string, limit int) (int, bool, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	// Serialize per (user, kind, day) so concurrent requests cannot
	// push the counter past the limit.
	var count int
	row := tx.QueryRowContext(ctx, `
SELECT count FROM usage_daily WHERE user_id = $1 AND kind = $2 AND day = $3 FOR UPDATE`,
		userID, string(kind), day)
	if err = row.Scan(&count); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, false, err
		}
		err = nil
		count = 0
		if _, err = tx.ExecContext(ctx, `
INSERT INTO usage_daily (user_id, kind, day, count) VALUES ($1, $2, $3, 0)
ON CONFLICT (user_id, kind, day) DO NOTHING`,
			userID, string(kind), day); err != nil {
			return 0, false, err
		}
		row = tx.QueryRowContext(ctx, `
SELECT count FROM usage_daily WHERE user_id = $1 AND kind = $2 AND day = $3 FOR UPDATE`,
			userID, string(kind), day)
		if err = row.Scan(&count); err != nil {
			return 0, false, err
		}
	}

	if count >= limit {
		if err = tx.Commit(); err != nil {
			return 0, false, err
		}
		return count, false, nil
	}

	count++
	if _, err = tx.ExecContext(ctx, `
UPDATE usage_daily SET count = $1, updated_at = now() WHERE user_id = $2 AND kind = $3 AND day = $4`,
		count, userID, string(kind), day); err != nil {
		return 0, false, err
	}
	if err = tx.Commit(); err != nil {
		return 0, false, err
	}
	return count, true, nil
}

func (s *pgStore) Count(ctx context.Context, userID string, kind Kind, day string) (int, error) {
	var count int
	row := s.DB.QueryRowContext(ctx, `
SELECT count FROM usage_daily WHERE user_id = $1 AND kind = $2 AND day = $3`,
		userID, string(kind), day)
	if err := row.Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

func (s *pgStore) Reset(ctx context.Context, userID string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM usage_daily WHERE user_id = $1`, userID)
	return err
}
