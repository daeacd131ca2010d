package marketing

import (
	"context"
	"sync"
)

// MemoryRepo is the in-memory plan store used when no database is
// configured.
type MemoryRepo struct {
	mu    sync.RWMutex
	plans map[string]Record
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{plans: make(map[string]Record)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.plans[record.AnalysisID] = record
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepo) GetByAnalysis(ctx context.Context, userID, analysisID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	record, ok := r.plans[analysisID]
	r.mu.RUnlock()
	if !ok || record.UserID != userID {
		return Record{}, ErrNotFound
	}
	return record, nil
}
