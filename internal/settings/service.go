package settings

import (
	"context"
	"errors"
	"strings"
)

// Service manages application settings via an underlying repo. It is
// deliberately cache-free: quota limits and the AI credential must be
// read fresh on every check so admin changes take effect immediately.
type Service struct {
	repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// Get returns the current settings with defaults applied.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	if s == nil || s.repo == nil {
		return Settings{}, errors.New("settings service not configured")
	}
	return s.repo.Get(ctx)
}

// Update validates and persists new settings. An empty API key in the
// update keeps the stored one, so admins can change limits without
// re-entering the credential.
func (s *Service) Update(ctx context.Context, next Settings) (Settings, error) {
	if s == nil || s.repo == nil {
		return Settings{}, errors.New("settings service not configured")
	}
	current, err := s.repo.Get(ctx)
	if err != nil {
		return Settings{}, err
	}
	if strings.TrimSpace(next.AIAPIKey) == "" {
		next.AIAPIKey = current.AIAPIKey
	}
	if strings.TrimSpace(next.AIModel) == "" {
		next.AIModel = current.AIModel
	}
	if next.DailyAnalysisLimit < 0 || next.DailyPlanLimit < 0 {
		return Settings{}, errors.New("limits must be non-negative")
	}
	next = withDefaults(next)
	if err := s.repo.Update(ctx, next); err != nil {
		return Settings{}, err
	}
	return s.repo.Get(ctx)
}

// DailyLimit reports the configured limit for a usage kind. Unknown
// kinds get a zero limit, which denies everything.
func (s *Service) DailyLimit(ctx context.Context, kind string) (int, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return 0, err
	}
	switch kind {
	case "analysis":
		return cfg.DailyAnalysisLimit, nil
	case "marketing_plan":
		return cfg.DailyPlanLimit, nil
	default:
		return 0, nil
	}
}
