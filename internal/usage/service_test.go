package usage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type staticLimits struct {
	analysis int
	plan     int
}

func (l staticLimits) DailyLimit(ctx context.Context, kind string) (int, error) {
	switch kind {
	case "analysis":
		return l.analysis, nil
	case "marketing_plan":
		return l.plan, nil
	default:
		return 0, nil
	}
}

func TestCheckAndIncrement_DeniesAtLimit(t *testing.T) {
	svc := NewService(staticLimits{analysis: 3, plan: 1})
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		decision, err := svc.CheckAndIncrement(ctx, "u1", KindAnalysis)
		if err != nil {
			t.Fatalf("call %d: unexpected error %v", i, err)
		}
		if !decision.Allowed || decision.Count != i {
			t.Fatalf("call %d: unexpected decision %+v", i, decision)
		}
	}

	decision, err := svc.CheckAndIncrement(ctx, "u1", KindAnalysis)
	if !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
	if decision.Allowed {
		t.Fatal("denial must not be marked allowed")
	}
	if decision.Count != 3 || decision.Limit != 3 {
		t.Fatalf("denial must report the standing count and limit: %+v", decision)
	}
}

func TestCheckAndIncrement_KindsAreIndependent(t *testing.T) {
	svc := NewService(staticLimits{analysis: 1, plan: 1})
	ctx := context.Background()

	if _, err := svc.CheckAndIncrement(ctx, "u1", KindAnalysis); err != nil {
		t.Fatalf("analysis: %v", err)
	}
	if _, err := svc.CheckAndIncrement(ctx, "u1", KindMarketingPlan); err != nil {
		t.Fatalf("marketing plan quota must be independent: %v", err)
	}
	if _, err := svc.CheckAndIncrement(ctx, "u1", KindAnalysis); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected analysis denial, got %v", err)
	}
}

func TestCheckAndIncrement_UsersAreIndependent(t *testing.T) {
	svc := NewService(staticLimits{analysis: 1})
	ctx := context.Background()

	if _, err := svc.CheckAndIncrement(ctx, "u1", KindAnalysis); err != nil {
		t.Fatalf("u1: %v", err)
	}
	if _, err := svc.CheckAndIncrement(ctx, "u2", KindAnalysis); err != nil {
		t.Fatalf("u2 must have its own counter: %v", err)
	}
}

func TestCheckAndIncrement_ZeroLimitDeniesEverything(t *testing.T) {
	svc := NewService(staticLimits{analysis: 0})
	if _, err := svc.CheckAndIncrement(context.Background(), "u1", KindAnalysis); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected denial with zero limit, got %v", err)
	}
}

func TestCheckAndIncrement_DayRolloverResetsCounter(t *testing.T) {
	svc := NewService(staticLimits{analysis: 1})
	day := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }
	ctx := context.Background()

	if _, err := svc.CheckAndIncrement(ctx, "u1", KindAnalysis); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := svc.CheckAndIncrement(ctx, "u1", KindAnalysis); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected denial, got %v", err)
	}

	svc.now = func() time.Time { return day.Add(2 * time.Hour) }
	if _, err := svc.CheckAndIncrement(ctx, "u1", KindAnalysis); err != nil {
		t.Fatalf("new UTC day must reset the counter: %v", err)
	}
}

func TestCheckAndIncrement_ConcurrentCallsNeverExceedLimit(t *testing.T) {
	const limit = 5
	svc := NewService(staticLimits{analysis: limit})
	ctx := context.Background()

	var wg sync.WaitGroup
	allowed := make(chan struct{}, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.CheckAndIncrement(ctx, "u1", KindAnalysis); err == nil {
				allowed <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(allowed)

	granted := 0
	for range allowed {
		granted++
	}
	if granted != limit {
		t.Fatalf("expected exactly %d grants, got %d", limit, granted)
	}
}

func TestSnapshotsAndReset(t *testing.T) {
	svc := NewService(staticLimits{analysis: 5, plan: 2})
	ctx := context.Background()

	svc.CheckAndIncrement(ctx, "u1", KindAnalysis)
	svc.CheckAndIncrement(ctx, "u1", KindAnalysis)
	svc.CheckAndIncrement(ctx, "u1", KindMarketingPlan)

	snaps, err := svc.Snapshots(ctx, "u1")
	if err != nil {
		t.Fatalf("snapshots: %v", err)
	}
	byKind := map[Kind]Snapshot{}
	for _, s := range snaps {
		byKind[s.Kind] = s
	}
	if byKind[KindAnalysis].Count != 2 || byKind[KindAnalysis].Limit != 5 {
		t.Fatalf("unexpected analysis snapshot: %+v", byKind[KindAnalysis])
	}
	if byKind[KindMarketingPlan].Count != 1 || byKind[KindMarketingPlan].Limit != 2 {
		t.Fatalf("unexpected plan snapshot: %+v", byKind[KindMarketingPlan])
	}

	if err := svc.Reset(ctx, "u1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	snaps, _ = svc.Snapshots(ctx, "u1")
	for _, s := range snaps {
		if s.Count != 0 {
			t.Fatalf("expected zeroed counters after reset, got %+v", s)
		}
	}
}
