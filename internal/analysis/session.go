package analysis

import "time"

// Phase is the interactive session lifecycle state.
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseInitialSubmitted Phase = "initial_submitted"
	PhaseAwaitingAnswer   Phase = "awaiting_answer"
	PhaseCompleted        Phase = "completed"
	PhaseExited           Phase = "exited"
)

// ActivationDelay is how long the client should wait after showing the
// initial analysis before asking the first follow-up question. A UX
// courtesy, not a correctness requirement.
const ActivationDelay = 2 * time.Second

// Session is the client-held interactive refinement state. It is
// ephemeral: never persisted mid-session, reconstructible only from the
// latest stored result. Index is the frontier (always len(Answers)
// while active); Cursor trails it during view-only backward navigation.
type Session struct {
	Phase     Phase    `json:"phase"`
	RecordID  string   `json:"recordId,omitempty"`
	IdeaText  string   `json:"ideaText"`
	Language  string   `json:"language"`
	Questions []string `json:"questions"`
	Answers   []string `json:"answers"`
	Index     int      `json:"index"`
	Cursor    int      `json:"cursor"`
	Result    Result   `json:"result"`
}

// Event drives a session transition.
type Event interface{ sessionEvent() }

// InitialResult starts a session from a freshly produced analysis.
type InitialResult struct {
	Mode     Mode
	IdeaText string
	Language string
	Result   Result
}

// AnswerOutcome reports one completed answer round. Revised carries the
// replacement result when the revision call succeeded; Failed marks a
// skip-on-error round where the prior result stands.
type AnswerOutcome struct {
	Answer  string
	Revised *Result
	Failed  bool
}

// Rewind steps the view cursor back one question without rewinding the
// result or the answer history.
type Rewind struct{}

// Forward steps the view cursor toward the frontier.
type Forward struct{}

// Exit terminates the session; the last successful result stands.
type Exit struct{}

func (InitialResult) sessionEvent() {}
func (AnswerOutcome) sessionEvent() {}
func (Rewind) sessionEvent()        {}
func (Forward) sessionEvent()       {}
func (Exit) sessionEvent()          {}

// Effect is an instruction to the caller produced by a transition.
type Effect interface{ sessionEffect() }

// AskQuestion tells the caller to present a question, optionally after
// a delay (deferred activation of the first question).
type AskQuestion struct {
	Index    int
	Question string
	Delay    time.Duration
}

// RestoreAnswer tells the caller to put a previously given answer back
// into the input for editing.
type RestoreAnswer struct {
	Index  int
	Answer string
}

// Persist tells the caller the session reached a terminal state and
// the result should be stored.
type Persist struct {
	Result Result
}

func (AskQuestion) sessionEffect()   {}
func (RestoreAnswer) sessionEffect() {}
func (Persist) sessionEffect()       {}

// Apply is the pure transition function. It never fails: events that
// are invalid in the current phase leave the session unchanged.
func Apply(s Session, ev Event) (Session, []Effect) {
	switch ev := ev.(type) {
	case InitialResult:
		return applyInitial(ev)
	case AnswerOutcome:
		return applyAnswer(s, ev)
	case Rewind:
		return applyRewind(s)
	case Forward:
		return applyForward(s)
	case Exit:
		return applyExit(s)
	default:
		return s, nil
	}
}

func applyInitial(ev InitialResult) (Session, []Effect) {
	s := Session{
		Phase:    PhaseInitialSubmitted,
		IdeaText: ev.IdeaText,
		Language: ev.Language,
		Result:   ev.Result,
	}
	if ev.Mode == ModeInteractive && len(ev.Result.InteractiveQuestions) > 0 {
		s.Phase = PhaseAwaitingAnswer
		s.Questions = append([]string(nil), ev.Result.InteractiveQuestions...)
		s.Answers = []string{}
		return s, []Effect{AskQuestion{Index: 0, Question: s.Questions[0], Delay: ActivationDelay}}
	}
	// Non-interactive modes short-circuit to completion.
	s.Phase = PhaseCompleted
	return s, []Effect{Persist{Result: s.Result}}
}

func applyAnswer(s Session, ev AnswerOutcome) (Session, []Effect) {
	if s.Phase != PhaseAwaitingAnswer {
		return s, nil
	}
	if !ev.Failed && ev.Revised != nil {
		s.Result = *ev.Revised
	}

	if s.Cursor < s.Index {
		// Resubmission from a rewound position edits the answer in
		// place; the frontier does not advance.
		answers := append([]string(nil), s.Answers...)
		answers[s.Cursor] = ev.Answer
		s.Answers = answers
		s.Cursor = s.Index
		return s, []Effect{AskQuestion{Index: s.Index, Question: s.Questions[s.Index]}}
	}

	s.Answers = append(append([]string(nil), s.Answers...), ev.Answer)
	s.Index++
	s.Cursor = s.Index

	if s.Index >= len(s.Questions) {
		s.Phase = PhaseCompleted
		return s, []Effect{Persist{Result: s.Result}}
	}
	return s, []Effect{AskQuestion{Index: s.Index, Question: s.Questions[s.Index]}}
}

func applyRewind(s Session) (Session, []Effect) {
	if s.Phase != PhaseAwaitingAnswer || s.Cursor == 0 {
		return s, nil
	}
	s.Cursor--
	return s, []Effect{RestoreAnswer{Index: s.Cursor, Answer: s.Answers[s.Cursor]}}
}

func applyForward(s Session) (Session, []Effect) {
	if s.Phase != PhaseAwaitingAnswer || s.Cursor >= s.Index {
		return s, nil
	}
	s.Cursor++
	if s.Cursor == s.Index {
		return s, []Effect{AskQuestion{Index: s.Index, Question: s.Questions[s.Index]}}
	}
	return s, []Effect{RestoreAnswer{Index: s.Cursor, Answer: s.Answers[s.Cursor]}}
}

func applyExit(s Session) (Session, []Effect) {
	if s.Phase == PhaseCompleted || s.Phase == PhaseExited {
		return s, nil
	}
	s.Phase = PhaseExited
	return s, []Effect{Persist{Result: s.Result}}
}

// CurrentQuestion returns the question at the view cursor while the
// session is active.
func (s Session) CurrentQuestion() (string, bool) {
	if s.Phase != PhaseAwaitingAnswer || s.Cursor >= len(s.Questions) {
		return "", false
	}
	return s.Questions[s.Cursor], true
}

// Active reports whether the session still expects answers.
func (s Session) Active() bool { return s.Phase == PhaseAwaitingAnswer }
