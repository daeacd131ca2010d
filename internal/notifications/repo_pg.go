package notifications

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, n Notification) error {
	const query = `
INSERT INTO notifications (id, title, body, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query, n.ID, n.Title, n.Body, n.Active, n.CreatedAt, n.UpdatedAt)
	return err
}

func (r *PGRepo) Update(ctx context.Context, n Notification) error {
	const query = `
UPDATE notifications SET title = $1, body = $2, active = $3, updated_at = $4
WHERE id = $5`
	res, err := r.DB.ExecContext(ctx, query, n.Title, n.Body, n.Active, n.UpdatedAt, n.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Notification, error) {
	const query = `
SELECT id, title, body, active, created_at, updated_at
FROM notifications
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, id)
	var n Notification
	err := row.Scan(&n.ID, &n.Title, &n.Body, &n.Active, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Notification{}, ErrNotFound
		}
		return Notification{}, err
	}
	return n, nil
}

func (r *PGRepo) ListActive(ctx context.Context) ([]Notification, error) {
	return r.list(ctx, `
SELECT id, title, body, active, created_at, updated_at
FROM notifications
WHERE active
ORDER BY created_at DESC`)
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Notification, error) {
	return r.list(ctx, `
SELECT id, title, body, active, created_at, updated_at
FROM notifications
ORDER BY created_at DESC`)
}

func (r *PGRepo) list(ctx context.Context, query string) ([]Notification, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.Active, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
