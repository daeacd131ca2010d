package marketing

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no plan exists for the analysis.
var ErrNotFound = errors.New("marketing plan not found")

// Repo stores marketing plans, one per analysis. Upsert replaces any
// previous plan for the same analysis.
type Repo interface {
	Upsert(ctx context.Context, record Record) error
	GetByAnalysis(ctx context.Context, userID, analysisID string) (Record, error)
}
