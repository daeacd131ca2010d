package notifications

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is the in-memory notification store used when no database
// is configured.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Notification
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Notification)}
}

func (r *MemoryRepo) Create(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.items[n.ID] = n
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[n.ID]
	if !ok {
		return ErrNotFound
	}
	n.CreatedAt = existing.CreatedAt
	r.items[n.ID] = n
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Notification, error) {
	if err := ctx.Err(); err != nil {
		return Notification{}, err
	}
	r.mu.RLock()
	n, ok := r.items[id]
	r.mu.RUnlock()
	if !ok {
		return Notification{}, ErrNotFound
	}
	return n, nil
}

func (r *MemoryRepo) ListActive(ctx context.Context) ([]Notification, error) {
	return r.list(ctx, true)
}

func (r *MemoryRepo) ListAll(ctx context.Context) ([]Notification, error) {
	return r.list(ctx, false)
}

func (r *MemoryRepo) list(ctx context.Context, activeOnly bool) ([]Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Notification, 0, len(r.items))
	for _, n := range r.items {
		if activeOnly && !n.Active {
			continue
		}
		out = append(out, n)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
