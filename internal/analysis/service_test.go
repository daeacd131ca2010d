package analysis

import (
	"context"
	"errors"
	"testing"

	"ideaspark-backend/internal/llm"
	"ideaspark-backend/internal/settings"
	"ideaspark-backend/internal/usage"
)

const validResponse = `{
  "overall_score": 70,
  "market_potential": 60,
  "feasibility": 75,
  "risk_level": 35,
  "strengths": ["clear demand"],
  "weaknesses": ["seasonal"],
  "recommendations": ["pilot in one city"]
}`

const validInteractiveResponse = `{
  "overall_score": 70,
  "strengths": ["clear demand"],
  "recommendations": ["pilot in one city"],
  "interactive_questions": ["Who is the customer?", "What is the price point?"]
}`

type scriptedLLM struct {
	responses []string
	errs      []error
	calls     []llm.Request
}

func (f *scriptedLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	i := len(f.calls)
	f.calls = append(f.calls, req)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

type fakeSettings struct {
	cfg settings.Settings
	err error
}

func (f fakeSettings) Get(ctx context.Context) (settings.Settings, error) {
	return f.cfg, f.err
}

type fakeGovernor struct {
	decision usage.Decision
	err      error
	calls    int
}

func (f *fakeGovernor) CheckAndIncrement(ctx context.Context, userID string, kind usage.Kind) (usage.Decision, error) {
	f.calls++
	return f.decision, f.err
}

func configured() fakeSettings {
	return fakeSettings{cfg: settings.Settings{
		AIAPIKey:           "sk-test",
		AIModel:            "gpt-4o-mini",
		DailyAnalysisLimit: 5,
		DailyPlanLimit:     2,
	}}
}

func newTestService(client *scriptedLLM, src SettingsSource, gov Governor) (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	svc := NewService(repo, src, gov, func(apiKey string) llm.Client { return client })
	return svc, repo
}

func TestSubmit_EmptyIdeaMakesNoCalls(t *testing.T) {
	client := &scriptedLLM{}
	gov := &fakeGovernor{decision: usage.Decision{Allowed: true, Count: 1, Limit: 5}}
	svc, _ := newTestService(client, configured(), gov)

	_, err := svc.Submit(context.Background(), Request{IdeaText: "   ", UserID: "u1", Mode: ModeBasic})
	if !errors.Is(err, ErrEmptyIdea) {
		t.Fatalf("expected ErrEmptyIdea, got %v", err)
	}
	if len(client.calls) != 0 || gov.calls != 0 {
		t.Fatalf("validation failure must not reach quota or backend")
	}
}

func TestSubmit_NotConfiguredBlocksBeforeQuota(t *testing.T) {
	client := &scriptedLLM{}
	gov := &fakeGovernor{decision: usage.Decision{Allowed: true, Count: 1, Limit: 5}}
	svc, _ := newTestService(client, fakeSettings{cfg: settings.Settings{AIModel: "gpt-4o-mini"}}, gov)

	_, err := svc.Submit(context.Background(), Request{IdeaText: "an idea", UserID: "u1", Mode: ModeBasic})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if gov.calls != 0 || len(client.calls) != 0 {
		t.Fatalf("missing configuration must not consume quota or call the backend")
	}
}

func TestSubmit_QuotaDenialCarriesCounts(t *testing.T) {
	client := &scriptedLLM{}
	gov := &fakeGovernor{
		decision: usage.Decision{Allowed: false, Count: 5, Limit: 5},
		err:      usage.ErrLimitReached,
	}
	svc, _ := newTestService(client, configured(), gov)

	_, err := svc.Submit(context.Background(), Request{IdeaText: "an idea", UserID: "u1", Mode: ModeBasic})
	var quotaErr *QuotaError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("expected QuotaError, got %v", err)
	}
	if quotaErr.Count != 5 || quotaErr.Limit != 5 {
		t.Fatalf("quota error must carry the standing counts: %+v", quotaErr)
	}
	if len(client.calls) != 0 {
		t.Fatalf("denied quota must not call the backend")
	}
}

func TestSubmit_RetriesOnceWithStrictPrompt(t *testing.T) {
	client := &scriptedLLM{responses: []string{"Sure! Here's my analysis in prose.", validResponse}}
	gov := &fakeGovernor{decision: usage.Decision{Allowed: true, Count: 1, Limit: 5}}
	svc, repo := newTestService(client, configured(), gov)

	sess, err := svc.Submit(context.Background(), Request{IdeaText: "an idea", UserID: "u1", Mode: ModeBasic})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.calls) != 2 {
		t.Fatalf("expected exactly one retry, got %d calls", len(client.calls))
	}
	if client.calls[0].JSONOnly {
		t.Fatalf("first attempt must not force JSON mode")
	}
	if !client.calls[1].JSONOnly || client.calls[1].Temperature != 0 {
		t.Fatalf("retry must be strict: %+v", client.calls[1])
	}
	if sess.Phase != PhaseCompleted {
		t.Fatalf("expected completed session, got %q", sess.Phase)
	}

	records, err := repo.ListByUser(context.Background(), "u1", 10, 0)
	if err != nil || len(records) != 1 {
		t.Fatalf("expected one persisted record, got %d (err=%v)", len(records), err)
	}
}

func TestSubmit_TwoParseFailuresIsAnalysisError(t *testing.T) {
	client := &scriptedLLM{responses: []string{"not json", "still not json"}}
	gov := &fakeGovernor{decision: usage.Decision{Allowed: true, Count: 1, Limit: 5}}
	svc, repo := newTestService(client, configured(), gov)

	_, err := svc.Submit(context.Background(), Request{IdeaText: "an idea", UserID: "u1", Mode: ModeBasic})
	var analysisErr *AnalysisError
	if !errors.As(err, &analysisErr) {
		t.Fatalf("expected AnalysisError, got %v", err)
	}
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse cause, got %v", err)
	}
	if len(client.calls) != 2 {
		t.Fatalf("expected exactly two attempts, got %d", len(client.calls))
	}
	records, _ := repo.ListByUser(context.Background(), "u1", 10, 0)
	if len(records) != 0 {
		t.Fatalf("failed analysis must not be persisted")
	}
}

func TestSubmit_InteractiveStartsSession(t *testing.T) {
	client := &scriptedLLM{responses: []string{validInteractiveResponse}}
	gov := &fakeGovernor{decision: usage.Decision{Allowed: true, Count: 1, Limit: 5}}
	svc, _ := newTestService(client, configured(), gov)

	sess, err := svc.Submit(context.Background(), Request{IdeaText: "an idea", UserID: "u1", Mode: ModeInteractive})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.Active() {
		t.Fatalf("expected active session, got phase %q", sess.Phase)
	}
	if len(sess.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(sess.Questions))
	}
	if sess.RecordID == "" {
		t.Fatalf("session must reference its history record")
	}
}

func TestSubmitAnswer_RevisionReplacesResult(t *testing.T) {
	revised := `{
  "overall_score": 85,
  "strengths": ["clear demand", "validated pricing"],
  "recommendations": ["pilot in one city"]
}`
	client := &scriptedLLM{responses: []string{validInteractiveResponse, revised, revised}}
	gov := &fakeGovernor{decision: usage.Decision{Allowed: true, Count: 1, Limit: 5}}
	svc, repo := newTestService(client, configured(), gov)

	sess, err := svc.Submit(context.Background(), Request{IdeaText: "an idea", UserID: "u1", Mode: ModeInteractive})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	sess, _, err = svc.SubmitAnswer(context.Background(), "u1", sess, "young professionals")
	if err != nil {
		t.Fatalf("first answer: %v", err)
	}
	if sess.Result.OverallScore != 85 {
		t.Fatalf("expected revised result, got score %d", sess.Result.OverallScore)
	}
	if !sess.Active() {
		t.Fatalf("expected one more question, got phase %q", sess.Phase)
	}

	sess, _, err = svc.SubmitAnswer(context.Background(), "u1", sess, "ten dollars a month")
	if err != nil {
		t.Fatalf("second answer: %v", err)
	}
	if sess.Phase != PhaseCompleted {
		t.Fatalf("expected completed, got %q", sess.Phase)
	}

	record, err := repo.GetByID(context.Background(), "u1", sess.RecordID)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if record.Result.OverallScore != 85 {
		t.Fatalf("expected stored record updated with final result, got %d", record.Result.OverallScore)
	}
}

func TestSubmitAnswer_FailedRevisionSkipsAndKeepsResult(t *testing.T) {
	transport := errors.New("connection reset")
	client := &scriptedLLM{
		responses: []string{validInteractiveResponse, "", ""},
		errs:      []error{nil, transport, transport},
	}
	gov := &fakeGovernor{decision: usage.Decision{Allowed: true, Count: 1, Limit: 5}}
	svc, _ := newTestService(client, configured(), gov)

	sess, err := svc.Submit(context.Background(), Request{IdeaText: "an idea", UserID: "u1", Mode: ModeInteractive})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	before := sess.Result

	next, _, revisionErr := svc.SubmitAnswer(context.Background(), "u1", sess, "an answer")
	if revisionErr == nil {
		t.Fatal("expected revision error to be reported")
	}
	if next.Index != 1 {
		t.Fatalf("failed revision must still advance, index=%d", next.Index)
	}
	if next.Result.OverallScore != before.OverallScore {
		t.Fatalf("failed revision must not change the result")
	}
	if !next.Active() {
		t.Fatalf("session should continue to the next question")
	}
}

func TestSubmitAnswer_EmptyAnswerRejected(t *testing.T) {
	client := &scriptedLLM{responses: []string{validInteractiveResponse}}
	gov := &fakeGovernor{decision: usage.Decision{Allowed: true, Count: 1, Limit: 5}}
	svc, _ := newTestService(client, configured(), gov)

	sess, err := svc.Submit(context.Background(), Request{IdeaText: "an idea", UserID: "u1", Mode: ModeInteractive})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	calls := len(client.calls)

	next, _, err := svc.SubmitAnswer(context.Background(), "u1", sess, "  ")
	if !errors.Is(err, ErrEmptyAnswer) {
		t.Fatalf("expected ErrEmptyAnswer, got %v", err)
	}
	if next.Index != sess.Index {
		t.Fatalf("empty answer must not advance the session")
	}
	if len(client.calls) != calls {
		t.Fatalf("empty answer must not call the backend")
	}
}

func TestSubmit_SecondConcurrentSubmissionRejected(t *testing.T) {
	client := &scriptedLLM{responses: []string{validResponse}}
	gov := &fakeGovernor{decision: usage.Decision{Allowed: true, Count: 1, Limit: 5}}
	svc, _ := newTestService(client, configured(), gov)

	if !svc.busy.Begin("u1") {
		t.Fatal("setup: could not mark user busy")
	}
	defer svc.busy.End("u1")

	_, err := svc.Submit(context.Background(), Request{IdeaText: "an idea", UserID: "u1", Mode: ModeBasic})
	if !errors.Is(err, ErrInProgress) {
		t.Fatalf("expected ErrInProgress, got %v", err)
	}
}
