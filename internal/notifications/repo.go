package notifications

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a notification does not exist.
var ErrNotFound = errors.New("notification not found")

// Repo stores notifications. ListActive is the user-facing read path;
// the rest serve the admin console.
type Repo interface {
	Create(ctx context.Context, n Notification) error
	Update(ctx context.Context, n Notification) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Notification, error)
	ListActive(ctx context.Context) ([]Notification, error)
	ListAll(ctx context.Context) ([]Notification, error)
}
