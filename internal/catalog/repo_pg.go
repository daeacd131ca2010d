package catalog

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, item Item) error {
	const query = `
INSERT INTO catalog_items (id, kind, name, description, price, url, active, sort_order, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.ExecContext(ctx, query,
		item.ID, string(item.Kind), item.Name, item.Description,
		item.Price, item.URL, item.Active, item.SortOrder,
		item.CreatedAt, item.UpdatedAt,
	)
	return err
}

func (r *PGRepo) Update(ctx context.Context, item Item) error {
	const query = `
UPDATE catalog_items
SET kind = $1, name = $2, description = $3, price = $4, url = $5,
    active = $6, sort_order = $7, updated_at = $8
WHERE id = $9`
	res, err := r.DB.ExecContext(ctx, query,
		string(item.Kind), item.Name, item.Description, item.Price,
		item.URL, item.Active, item.SortOrder, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM catalog_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Item, error) {
	const query = `
SELECT id, kind, name, description, price, url, active, sort_order, created_at, updated_at
FROM catalog_items
WHERE id = $1
LIMIT 1`
	item, err := scanItem(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return item, nil
}

func (r *PGRepo) List(ctx context.Context, activeOnly bool) ([]Item, error) {
	query := `
SELECT id, kind, name, description, price, url, active, sort_order, created_at, updated_at
FROM catalog_items`
	if activeOnly {
		query += `
WHERE active`
	}
	query += `
ORDER BY sort_order, created_at`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (Item, error) {
	var item Item
	var kind string
	var price, url sql.NullString
	err := row.Scan(
		&item.ID,
		&kind,
		&item.Name,
		&item.Description,
		&price,
		&url,
		&item.Active,
		&item.SortOrder,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return Item{}, err
	}
	item.Kind = ItemKind(kind)
	item.Price = price.String
	item.URL = url.String
	return item, nil
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
