package settings

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is the in-memory settings store used when no database is
// configured.
type MemoryRepo struct {
	mu sync.RWMutex
	s  Settings
}

// NewMemoryRepo constructs a MemoryRepo with default limits.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{s: withDefaults(Settings{})}
}

func (r *MemoryRepo) Get(ctx context.Context) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return Settings{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return withDefaults(r.s), nil
}

func (r *MemoryRepo) Update(ctx context.Context, s Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.UpdatedAt = time.Now().UTC()
	r.mu.Lock()
	r.s = withDefaults(s)
	r.mu.Unlock()
	return nil
}
