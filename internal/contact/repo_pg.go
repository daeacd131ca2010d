package contact

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, m Message) error {
	const query = `
INSERT INTO contact_messages (id, user_id, name, email, subject, body, read, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		m.ID, nullableString(m.UserID), m.Name, m.Email, m.Subject, m.Body, m.Read, m.CreatedAt,
	)
	return err
}

func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
SELECT id, user_id, name, email, subject, body, read, created_at
FROM contact_messages
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var userID sql.NullString
		err := rows.Scan(&m.ID, &userID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Read, &m.CreatedAt)
		if err != nil {
			return nil, err
		}
		m.UserID = userID.String
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PGRepo) MarkRead(ctx context.Context, id string, read bool) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE contact_messages SET read = $1 WHERE id = $2`, read, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
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

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
