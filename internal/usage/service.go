package usage

import (
	"context"
	"errors"
	"strings"
	"time"
)

type store interface {
	// IncrementBelow atomically increments the (user, kind, day)
	// counter when it is below limit. It returns the counter value
	// after the call and whether the increment happened.
	IncrementBelow(ctx context.Context, userID string, kind Kind, day string, limit int) (int, bool, error)
	Count(ctx context.Context, userID string, kind Kind, day string) (int, error)
	Reset(ctx context.Context, userID string) error
}

// LimitSource provides the current daily limit for a kind. Limits are
// admin-settable and must be read fresh on every check, so this is an
// interface over the settings service rather than a cached value.
type LimitSource interface {
	DailyLimit(ctx context.Context, kind string) (int, error)
}

// Service is the usage governor: it enforces per-user daily quotas
// before any AI call is made.
type Service struct {
	store  store
	limits LimitSource
	now    func() time.Time
}

// NewService constructs a Service with an in-memory store.
func NewService(limits LimitSource) *Service {
	return &Service{store: newMemoryStore(), limits: limits, now: time.Now}
}

// NewPostgresService constructs a Service backed by Postgres.
func NewPostgresService(pgStore store, limits LimitSource) *Service {
	return &Service{store: pgStore, limits: limits, now: time.Now}
}

// CheckAndIncrement consumes one unit of the kind's daily quota. On
// denial it returns ErrLimitReached together with a Decision carrying
// the standing count and limit for the user-facing message; the caller
// must not invoke the AI backend in that case.
func (s *Service) CheckAndIncrement(ctx context.Context, userID string, kind Kind) (Decision, error) {
	if strings.TrimSpace(userID) == "" {
		return Decision{}, errors.New("userID is required")
	}
	limit, err := s.limits.DailyLimit(ctx, string(kind))
	if err != nil {
		return Decision{}, err
	}
	day := s.today()
	count, allowed, err := s.store.IncrementBelow(ctx, userID, kind, day, limit)
	if err != nil {
		return Decision{}, err
	}
	decision := Decision{Allowed: allowed, Count: count, Limit: limit}
	if !allowed {
		return decision, ErrLimitReached
	}
	return decision, nil
}

// Snapshots reports today's consumption for all kinds.
func (s *Service) Snapshots(ctx context.Context, userID string) ([]Snapshot, error) {
	day := s.today()
	kinds := []Kind{KindAnalysis, KindMarketingPlan}
	out := make([]Snapshot, 0, len(kinds))
	for _, kind := range kinds {
		limit, err := s.limits.DailyLimit(ctx, string(kind))
		if err != nil {
			return nil, err
		}
		count, err := s.store.Count(ctx, userID, kind, day)
		if err != nil {
			return nil, err
		}
		out = append(out, Snapshot{Kind: kind, Count: count, Limit: limit})
	}
	return out, nil
}

// Reset clears today's counters for a user. Dev-only affordance; in
// production the day keying is the reset.
func (s *Service) Reset(ctx context.Context, userID string) error {
	return s.store.Reset(ctx, userID)
}

func (s *Service) today() string {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return now().UTC().Format(dayFormat)
}
