package analysis

import "context"

// Repo persists analysis records for the history view. Interactive
// revisions supersede the stored result in place via UpdateResult, so
// one submission stays one history row.
type Repo interface {
	Create(ctx context.Context, record Record) error
	UpdateResult(ctx context.Context, userID, recordID string, result Result) error
	GetByID(ctx context.Context, userID, recordID string) (Record, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error)
}
