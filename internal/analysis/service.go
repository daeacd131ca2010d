package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"ideaspark-backend/internal/llm"
	"ideaspark-backend/internal/settings"
	"ideaspark-backend/internal/shared/telemetry"
	"ideaspark-backend/internal/usage"
)

// SettingsSource provides the AI backend configuration, read fresh on
// every call so admin changes take effect immediately.
type SettingsSource interface {
	Get(ctx context.Context) (settings.Settings, error)
}

// Governor enforces daily quotas before any AI call.
type Governor interface {
	CheckAndIncrement(ctx context.Context, userID string, kind usage.Kind) (usage.Decision, error)
}

// Service is the analysis orchestrator: it translates domain requests
// into AI backend calls and deterministically parses the responses.
// It is stateless between calls; the interactive session travels with
// the client.
type Service struct {
	Repo     Repo
	Settings SettingsSource
	Usage    Governor
	NewLLM   llm.Factory

	busy *inflight
}

// NewService constructs a Service.
func NewService(repo Repo, settingsSrc SettingsSource, governor Governor, factory llm.Factory) *Service {
	return &Service{
		Repo:     repo,
		Settings: settingsSrc,
		Usage:    governor,
		NewLLM:   factory,
		busy:     newInflight(),
	}
}

const defaultTemperature = 0.7

// Submit runs the initial analysis for an idea. For interactive mode
// with follow-up questions in the response, the returned session is
// active and the caller drives it through SubmitAnswer.
func (s *Service) Submit(ctx context.Context, req Request) (Session, error) {
	ideaText := strings.TrimSpace(req.IdeaText)
	if ideaText == "" {
		return Session{}, ErrEmptyIdea
	}
	req.Language = NormalizeLanguage(req.Language)

	if !s.busy.Begin(req.UserID) {
		return Session{}, ErrInProgress
	}
	defer s.busy.End(req.UserID)

	cfg, err := s.aiConfig(ctx)
	if err != nil {
		return Session{}, err
	}

	decision, err := s.Usage.CheckAndIncrement(ctx, req.UserID, usage.KindAnalysis)
	if err != nil {
		if errors.Is(err, usage.ErrLimitReached) {
			return Session{}, &QuotaError{Kind: string(usage.KindAnalysis), Count: decision.Count, Limit: decision.Limit}
		}
		return Session{}, err
	}

	client := s.NewLLM(cfg.AIAPIKey)
	result, err := s.generate(ctx, client, cfg.AIModel, func(strict bool) []llm.Message {
		return llm.BuildAnalysisMessages(ideaText, string(req.Mode), req.Language, strict)
	})
	if err != nil {
		return Session{}, err
	}

	sess, _ := Apply(Session{}, InitialResult{
		Mode:     req.Mode,
		IdeaText: ideaText,
		Language: req.Language,
		Result:   result,
	})

	record := Record{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		IdeaText:  ideaText,
		Mode:      req.Mode,
		Language:  req.Language,
		Model:     cfg.AIModel,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
	sess.RecordID = record.ID
	// Persistence failure must not cost the user the analysis on their
	// screen; log and return the result anyway.
	if err := s.Repo.Create(ctx, record); err != nil {
		telemetry.Error("analysis.persist", map[string]any{
			"code":    ErrorCodePersistence,
			"user_id": req.UserID,
			"error":   err.Error(),
		})
	}

	return sess, nil
}

// SubmitAnswer folds one follow-up answer back into the analysis via an
// interactive_update call. It is never fatal: a failed revision skips
// to the next question with the prior result standing, and the error is
// returned alongside the advanced session for reporting.
func (s *Service) SubmitAnswer(ctx context.Context, userID string, sess Session, answer string) (Session, []Effect, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return sess, nil, ErrEmptyAnswer
	}
	if !sess.Active() {
		return sess, nil, errors.New("no active interactive session")
	}

	question, _ := sess.CurrentQuestion()
	revised, revisionErr := s.revise(ctx, sess, question, answer)

	outcome := AnswerOutcome{Answer: answer, Revised: revised, Failed: revisionErr != nil}
	next, effects := Apply(sess, outcome)
	s.runEffects(ctx, userID, next, effects)

	if revisionErr != nil {
		telemetry.Error("analysis.revision", map[string]any{
			"code":     ErrorCodeAnalysis,
			"user_id":  userID,
			"question": sess.Cursor,
			"error":    revisionErr.Error(),
		})
	}
	return next, effects, revisionErr
}

// Exit terminates the session early; the last successful result stands
// as final and is persisted.
func (s *Service) Exit(ctx context.Context, userID string, sess Session) Session {
	next, effects := Apply(sess, Exit{})
	s.runEffects(ctx, userID, next, effects)
	return next
}

// Get returns a stored analysis.
func (s *Service) Get(ctx context.Context, userID, recordID string) (Record, error) {
	if recordID == "" {
		return Record{}, errors.New("recordID is required")
	}
	return s.Repo.GetByID(ctx, userID, recordID)
}

// List returns a user's analyses, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) aiConfig(ctx context.Context) (settings.Settings, error) {
	cfg, err := s.Settings.Get(ctx)
	if err != nil {
		return settings.Settings{}, err
	}
	if strings.TrimSpace(cfg.AIAPIKey) == "" || strings.TrimSpace(cfg.AIModel) == "" {
		return settings.Settings{}, ErrNotConfigured
	}
	return cfg, nil
}

func (s *Service) revise(ctx context.Context, sess Session, question, answer string) (*Result, error) {
	cfg, err := s.aiConfig(ctx)
	if err != nil {
		return nil, err
	}
	prev, err := json.Marshal(sess.Result)
	if err != nil {
		return nil, err
	}
	history := make([]llm.QA, 0, len(sess.Answers))
	for i, a := range sess.Answers {
		history = append(history, llm.QA{Question: sess.Questions[i], Answer: a})
	}

	client := s.NewLLM(cfg.AIAPIKey)
	result, err := s.generate(ctx, client, cfg.AIModel, func(strict bool) []llm.Message {
		return llm.BuildRevisionMessages(sess.IdeaText, question, answer, history, prev, sess.Language, strict)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// generate performs one completion with the at-most-one-retry parse
// policy: a strict JSON parse of the full response, then a single
// stricter attempt (temperature zero, JSON-only prompt) before giving
// up. Both the initial and the revision paths share it.
func (s *Service) generate(ctx context.Context, client llm.Client, model string, build func(strict bool) []llm.Message) (Result, error) {
	raw, err := client.Complete(ctx, llm.Request{
		Model:       model,
		Messages:    build(false),
		Temperature: defaultTemperature,
	})
	if err != nil {
		return Result{}, &AnalysisError{Err: err}
	}
	result, parseErr := ParseResult([]byte(raw))
	if parseErr == nil {
		return result, nil
	}

	raw, err = client.Complete(ctx, llm.Request{
		Model:       model,
		Messages:    build(true),
		Temperature: 0,
		JSONOnly:    true,
	})
	if err != nil {
		return Result{}, &AnalysisError{Err: err}
	}
	result, parseErr = ParseResult([]byte(raw))
	if parseErr != nil {
		return Result{}, &AnalysisError{Err: ErrInvalidResponse}
	}
	return result, nil
}

func (s *Service) runEffects(ctx context.Context, userID string, sess Session, effects []Effect) {
	for _, effect := range effects {
		persist, ok := effect.(Persist)
		if !ok || sess.RecordID == "" {
			continue
		}
		if err := s.Repo.UpdateResult(ctx, userID, sess.RecordID, persist.Result); err != nil {
			telemetry.Error("analysis.persist", map[string]any{
				"code":    ErrorCodePersistence,
				"user_id": userID,
				"record":  sess.RecordID,
				"error":   err.Error(),
			})
		}
	}
}
