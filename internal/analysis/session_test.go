package analysis

import (
	"reflect"
	"testing"
)

func interactiveResult(questions ...string) Result {
	return Result{
		OverallScore:         70,
		Strengths:            []string{"clear demand"},
		Recommendations:      []string{"validate pricing"},
		InteractiveQuestions: questions,
	}
}

func startedSession(t *testing.T, questions ...string) Session {
	t.Helper()
	sess, effects := Apply(Session{}, InitialResult{
		Mode:     ModeInteractive,
		IdeaText: "meal delivery",
		Language: "ar",
		Result:   interactiveResult(questions...),
	})
	if !sess.Active() {
		t.Fatalf("expected active session, got phase %q", sess.Phase)
	}
	if len(effects) != 1 {
		t.Fatalf("expected one effect, got %d", len(effects))
	}
	ask, ok := effects[0].(AskQuestion)
	if !ok {
		t.Fatalf("expected AskQuestion, got %T", effects[0])
	}
	if ask.Index != 0 || ask.Question != questions[0] {
		t.Fatalf("unexpected first question: %+v", ask)
	}
	if ask.Delay != ActivationDelay {
		t.Fatalf("expected activation delay %v, got %v", ActivationDelay, ask.Delay)
	}
	return sess
}

func TestApplyInitial_NonInteractiveCompletes(t *testing.T) {
	result := Result{
		OverallScore:    55,
		Strengths:       []string{"s"},
		Recommendations: []string{"r"},
	}
	sess, effects := Apply(Session{}, InitialResult{
		Mode:     ModeBasic,
		IdeaText: "idea",
		Language: "en",
		Result:   result,
	})
	if sess.Phase != PhaseCompleted {
		t.Fatalf("expected completed, got %q", sess.Phase)
	}
	if len(effects) != 1 {
		t.Fatalf("expected one effect, got %d", len(effects))
	}
	persist, ok := effects[0].(Persist)
	if !ok {
		t.Fatalf("expected Persist, got %T", effects[0])
	}
	if !reflect.DeepEqual(persist.Result, result) {
		t.Fatalf("persisted result differs from initial result")
	}
}

func TestApplyInitial_InteractiveWithoutQuestionsCompletes(t *testing.T) {
	sess, effects := Apply(Session{}, InitialResult{
		Mode:   ModeInteractive,
		Result: Result{OverallScore: 40, Strengths: []string{"s"}, Recommendations: []string{"r"}},
	})
	if sess.Phase != PhaseCompleted {
		t.Fatalf("expected completed when no questions returned, got %q", sess.Phase)
	}
	if len(effects) != 1 {
		t.Fatalf("expected persist effect, got %d effects", len(effects))
	}
}

func TestAnswerFlow_CompletesAfterAllQuestions(t *testing.T) {
	sess := startedSession(t, "q1", "q2")

	revised1 := interactiveResult("q1", "q2")
	revised1.OverallScore = 75
	sess, effects := Apply(sess, AnswerOutcome{Answer: "a1", Revised: &revised1})
	if sess.Phase != PhaseAwaitingAnswer {
		t.Fatalf("expected still awaiting, got %q", sess.Phase)
	}
	if sess.Index != 1 || sess.Cursor != 1 {
		t.Fatalf("expected frontier at 1, got index=%d cursor=%d", sess.Index, sess.Cursor)
	}
	if sess.Result.OverallScore != 75 {
		t.Fatalf("expected revised result, got score %d", sess.Result.OverallScore)
	}
	ask, ok := effects[0].(AskQuestion)
	if !ok || ask.Question != "q2" {
		t.Fatalf("expected next question q2, got %+v", effects[0])
	}

	revised2 := revised1
	revised2.OverallScore = 82
	sess, effects = Apply(sess, AnswerOutcome{Answer: "a2", Revised: &revised2})
	if sess.Phase != PhaseCompleted {
		t.Fatalf("expected completed, got %q", sess.Phase)
	}
	persist, ok := effects[0].(Persist)
	if !ok {
		t.Fatalf("expected Persist, got %T", effects[0])
	}
	if persist.Result.OverallScore != 82 {
		t.Fatalf("expected final result persisted, got score %d", persist.Result.OverallScore)
	}
	if !reflect.DeepEqual(sess.Answers, []string{"a1", "a2"}) {
		t.Fatalf("unexpected answers: %v", sess.Answers)
	}
}

func TestAnswerFlow_FailedRoundSkipsWithoutChangingResult(t *testing.T) {
	sess := startedSession(t, "q1", "q2")
	before := sess.Result

	sess, effects := Apply(sess, AnswerOutcome{Answer: "a1", Failed: true})
	if sess.Index != 1 {
		t.Fatalf("failed round must still advance the frontier, index=%d", sess.Index)
	}
	if !reflect.DeepEqual(sess.Result, before) {
		t.Fatalf("failed round must not touch the result")
	}
	if ask, ok := effects[0].(AskQuestion); !ok || ask.Question != "q2" {
		t.Fatalf("expected next question after failed round, got %+v", effects[0])
	}
}

func TestRewindAndResubmit_ReplacesAnswerInPlace(t *testing.T) {
	sess := startedSession(t, "q1", "q2", "q3")
	sess, _ = Apply(sess, AnswerOutcome{Answer: "a1"})
	sess, _ = Apply(sess, AnswerOutcome{Answer: "a2"})
	if sess.Index != 2 {
		t.Fatalf("expected frontier 2, got %d", sess.Index)
	}

	sess, effects := Apply(sess, Rewind{})
	if sess.Cursor != 1 || sess.Index != 2 {
		t.Fatalf("rewind is view-only, got index=%d cursor=%d", sess.Index, sess.Cursor)
	}
	restore, ok := effects[0].(RestoreAnswer)
	if !ok || restore.Answer != "a2" {
		t.Fatalf("expected a2 restored, got %+v", effects[0])
	}

	sess, effects = Apply(sess, AnswerOutcome{Answer: "a2-edited"})
	if sess.Index != 2 {
		t.Fatalf("resubmission must not advance the frontier, index=%d", sess.Index)
	}
	if sess.Cursor != 2 {
		t.Fatalf("cursor should snap back to the frontier, cursor=%d", sess.Cursor)
	}
	if !reflect.DeepEqual(sess.Answers, []string{"a1", "a2-edited"}) {
		t.Fatalf("expected in-place edit, got %v", sess.Answers)
	}
	if ask, ok := effects[0].(AskQuestion); !ok || ask.Question != "q3" {
		t.Fatalf("expected the frontier question, got %+v", effects[0])
	}
}

func TestRewindAtStartIsNoop(t *testing.T) {
	sess := startedSession(t, "q1")
	next, effects := Apply(sess, Rewind{})
	if !reflect.DeepEqual(next, sess) || len(effects) != 0 {
		t.Fatalf("rewind at cursor 0 must be a no-op")
	}
}

func TestForward_ReturnsToFrontier(t *testing.T) {
	sess := startedSession(t, "q1", "q2", "q3")
	sess, _ = Apply(sess, AnswerOutcome{Answer: "a1"})
	sess, _ = Apply(sess, AnswerOutcome{Answer: "a2"})
	sess, _ = Apply(sess, Rewind{})
	sess, _ = Apply(sess, Rewind{})
	if sess.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", sess.Cursor)
	}

	sess, effects := Apply(sess, Forward{})
	if restore, ok := effects[0].(RestoreAnswer); !ok || restore.Answer != "a2" {
		t.Fatalf("expected a2 restored, got %+v", effects[0])
	}

	sess, effects = Apply(sess, Forward{})
	if sess.Cursor != sess.Index {
		t.Fatalf("expected cursor at frontier, got %d", sess.Cursor)
	}
	if ask, ok := effects[0].(AskQuestion); !ok || ask.Question != "q3" {
		t.Fatalf("expected frontier question, got %+v", effects[0])
	}
}

func TestExit_PersistsLastResult(t *testing.T) {
	sess := startedSession(t, "q1", "q2")
	revised := interactiveResult("q1", "q2")
	revised.OverallScore = 90
	sess, _ = Apply(sess, AnswerOutcome{Answer: "a1", Revised: &revised})

	sess, effects := Apply(sess, Exit{})
	if sess.Phase != PhaseExited {
		t.Fatalf("expected exited, got %q", sess.Phase)
	}
	persist, ok := effects[0].(Persist)
	if !ok {
		t.Fatalf("expected Persist, got %T", effects[0])
	}
	if persist.Result.OverallScore != 90 {
		t.Fatalf("expected last successful result persisted")
	}
}

func TestAnswerAfterCompletionIsIgnored(t *testing.T) {
	sess := startedSession(t, "q1")
	sess, _ = Apply(sess, AnswerOutcome{Answer: "a1"})
	if sess.Phase != PhaseCompleted {
		t.Fatalf("expected completed, got %q", sess.Phase)
	}
	next, effects := Apply(sess, AnswerOutcome{Answer: "late"})
	if !reflect.DeepEqual(next, sess) || len(effects) != 0 {
		t.Fatalf("events after completion must be ignored")
	}
}
