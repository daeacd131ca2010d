package contact

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a message does not exist.
var ErrNotFound = errors.New("contact message not found")

// Repo stores contact messages for the admin inbox.
type Repo interface {
	Create(ctx context.Context, m Message) error
	List(ctx context.Context, limit, offset int) ([]Message, error)
	MarkRead(ctx context.Context, id string, read bool) error
	Delete(ctx context.Context, id string) error
}
