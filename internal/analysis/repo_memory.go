package analysis

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is the in-memory history store used when no database is
// configured.
type MemoryRepo struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{records: make(map[string]Record)}
}

func (r *MemoryRepo) Create(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.records[record.ID] = record
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepo) UpdateResult(ctx context.Context, userID, recordID string, result Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[recordID]
	if !ok || record.UserID != userID {
		return ErrNotFound
	}
	record.Result = result
	r.records[recordID] = record
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, recordID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	record, ok := r.records[recordID]
	r.mu.RUnlock()
	if !ok || record.UserID != userID {
		return Record{}, ErrNotFound
	}
	return record, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var out []Record
	for _, record := range r.records {
		if record.UserID == userID {
			out = append(out, record)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []Record{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
