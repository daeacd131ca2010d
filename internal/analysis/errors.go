package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyIdea rejects a submission whose idea text is empty after
	// trimming. No backend call is made.
	ErrEmptyIdea = errors.New("idea text is required")

	// ErrEmptyAnswer rejects an interactive round with no answer text.
	ErrEmptyAnswer = errors.New("answer text is required")

	// ErrNotConfigured means the AI credential or model is missing from
	// settings. Surfaced as an actionable message; requires admin action.
	ErrNotConfigured = errors.New("ai backend not configured")

	// ErrInvalidResponse means the backend response failed both JSON
	// parse attempts.
	ErrInvalidResponse = errors.New("invalid ai response")

	// ErrInProgress rejects a second submission while one is running
	// for the same user.
	ErrInProgress = errors.New("analysis already in progress")

	ErrNotFound = errors.New("not found")
)

const (
	ErrorCodeValidation    = "VALIDATION_ERROR"
	ErrorCodeConfiguration = "CONFIGURATION_ERROR"
	ErrorCodeAnalysis      = "ANALYSIS_ERROR"
	ErrorCodeQuota         = "QUOTA_EXCEEDED"
	ErrorCodePersistence   = "PERSISTENCE_ERROR"
)

// QuotaError carries the standing count and limit for the user-facing
// denial message.
type QuotaError struct {
	Kind  string
	Count int
	Limit int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("daily %s limit reached (%d/%d)", e.Kind, e.Count, e.Limit)
}

// AnalysisError wraps an AI call or parse failure so raw backend errors
// never reach the UI layer.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string { return "analysis failed: " + e.Err.Error() }
func (e *AnalysisError) Unwrap() error { return e.Err }
