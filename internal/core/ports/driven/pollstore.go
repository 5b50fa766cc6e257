package driven

import (
	"context"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
)

// PollHistoryStore records the outcome of file checks for operational
// visibility. Recording is best effort: the poller logs store failures
// and carries on. Backed by SQLite.
type PollHistoryStore interface {
	// Record appends a poll record.
	Record(ctx context.Context, rec *domain.PollRecord) error

	// History returns the most recent records, newest first, capped at
	// limit. An empty fileKey returns records for all files.
	History(ctx context.Context, fileKey string, limit int) ([]domain.PollRecord, error)

	// Prune keeps only the newest keep records.
	Prune(ctx context.Context, keep int) error

	// Close releases the underlying database.
	Close() error
}
