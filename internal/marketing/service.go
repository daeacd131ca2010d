package marketing

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"ideaspark-backend/internal/analysis"
	"ideaspark-backend/internal/llm"
	"ideaspark-backend/internal/settings"
	"ideaspark-backend/internal/shared/telemetry"
	"ideaspark-backend/internal/usage"
)

// AnalysisSource loads the analysis a plan is generated for.
type AnalysisSource interface {
	Get(ctx context.Context, userID, recordID string) (analysis.Record, error)
}

// SettingsSource provides the AI backend configuration.
type SettingsSource interface {
	Get(ctx context.Context) (settings.Settings, error)
}

// Governor enforces daily quotas before any AI call.
type Governor interface {
	CheckAndIncrement(ctx context.Context, userID string, kind usage.Kind) (usage.Decision, error)
}

// Service generates marketing plans from stored analyses. Generation
// degrades rather than fails: only quota denial and missing
// configuration surface as errors; any AI backend failure yields the
// deterministic fallback plan.
type Service struct {
	Repo     Repo
	Analyses AnalysisSource
	Settings SettingsSource
	Usage    Governor
	NewLLM   llm.Factory
}

// NewService constructs a Service.
func NewService(repo Repo, analyses AnalysisSource, settingsSrc SettingsSource, governor Governor, factory llm.Factory) *Service {
	return &Service{
		Repo:     repo,
		Analyses: analyses,
		Settings: settingsSrc,
		Usage:    governor,
		NewLLM:   factory,
	}
}

const planTemperature = 0.7

// Generate produces a marketing plan for the analysis. Regenerating
// replaces any previous plan for the same analysis.
func (s *Service) Generate(ctx context.Context, userID, analysisID string) (Record, error) {
	source, err := s.Analyses.Get(ctx, userID, analysisID)
	if err != nil {
		return Record{}, err
	}

	cfg, err := s.Settings.Get(ctx)
	if err != nil {
		return Record{}, err
	}
	if strings.TrimSpace(cfg.AIAPIKey) == "" || strings.TrimSpace(cfg.AIModel) == "" {
		return Record{}, analysis.ErrNotConfigured
	}

	decision, err := s.Usage.CheckAndIncrement(ctx, userID, usage.KindMarketingPlan)
	if err != nil {
		if errors.Is(err, usage.ErrLimitReached) {
			return Record{}, &analysis.QuotaError{Kind: string(usage.KindMarketingPlan), Count: decision.Count, Limit: decision.Limit}
		}
		return Record{}, err
	}

	plan, usedFallback := s.generate(ctx, cfg.AIAPIKey, cfg.AIModel, source)

	record := Record{
		ID:         uuid.NewString(),
		UserID:     userID,
		AnalysisID: analysisID,
		Language:   source.Language,
		Model:      cfg.AIModel,
		Fallback:   usedFallback,
		Plan:       plan,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Upsert(ctx, record); err != nil {
		telemetry.Error("marketing.persist", map[string]any{
			"code":     analysis.ErrorCodePersistence,
			"user_id":  userID,
			"analysis": analysisID,
			"error":    err.Error(),
		})
	}
	return record, nil
}

// Get returns the stored plan for an analysis.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Record, error) {
	if analysisID == "" {
		return Record{}, errors.New("analysisID is required")
	}
	return s.Repo.GetByAnalysis(ctx, userID, analysisID)
}

// generate runs one completion and extracts a plan from whatever the
// model returns. Every failure path lands on the fallback plan.
func (s *Service) generate(ctx context.Context, apiKey, model string, source analysis.Record) (Plan, bool) {
	resultJSON, err := json.Marshal(source.Result)
	if err != nil {
		return FallbackPlan(source.Language), true
	}

	client := s.NewLLM(apiKey)
	raw, err := client.Complete(ctx, llm.Request{
		Model:       model,
		Messages:    llm.BuildMarketingMessages(source.IdeaText, resultJSON, source.Language),
		Temperature: planTemperature,
	})
	if err != nil {
		telemetry.Error("marketing.generate", map[string]any{
			"code":  analysis.ErrorCodeAnalysis,
			"error": err.Error(),
		})
		return FallbackPlan(source.Language), true
	}

	object, ok := FirstJSONObject(raw)
	if !ok {
		return FallbackPlan(source.Language), true
	}
	var plan Plan
	if err := json.Unmarshal([]byte(object), &plan); err != nil || plan.Empty() {
		return FallbackPlan(source.Language), true
	}
	return plan, false
}
