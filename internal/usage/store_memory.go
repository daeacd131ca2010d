package usage

import (
	"context"
	"strings"
	"sync"
)

type memoryStore struct {
	mu     sync.Mutex
	counts map[string]int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{counts: make(map[string]int)}
}

func counterKey(userID string, kind Kind, day string) string {
	return userID + "|" + string(kind) + "|" + day
}

func (s *memoryStore) IncrementBelow(ctx context.Context, userID string, kind Kind, day string, limit int) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	key := counterKey(userID, kind, day)
	s.mu.Lock()
	defer s.mu.Unlock()
	count := s.counts[key]
	if count >= limit {
		return count, false, nil
	}
	count++
	s.counts[key] = count
	return count, true, nil
}

func (s *memoryStore) Count(ctx context.Context, userID string, kind Kind, day string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[counterKey(userID, kind, day)], nil
}

func (s *memoryStore) Reset(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.counts {
		if strings.HasPrefix(key, userID+"|") {
			delete(s.counts, key)
		}
	}
	return nil
}
