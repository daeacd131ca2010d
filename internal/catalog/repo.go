package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a catalog item does not exist.
var ErrNotFound = errors.New("catalog item not found")

// Repo stores catalog items.
type Repo interface {
	Create(ctx context.Context, item Item) error
	Update(ctx context.Context, item Item) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Item, error)
	List(ctx context.Context, activeOnly bool) ([]Item, error)
}
