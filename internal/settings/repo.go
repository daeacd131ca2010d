package settings

import "context"

// Repo persists the key/value settings rows.
type Repo interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) error
}
