package llm

import "context"

// Message is a single chat message sent to the AI backend.
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Request is one blocking completion round-trip.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float32
	MaxTokens   int
	// JSONOnly asks the backend for a machine-enforced JSON object
	// response. Used by the strict retry path; the first attempt and
	// the marketing path stay permissive.
	JSONOnly bool
}

// Client abstracts the AI text-generation backend.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Factory builds a client for an API credential. The credential is
// admin-managed and read fresh per request, so clients are constructed
// per call rather than at startup.
type Factory func(apiKey string) Client
