package driving

import (
	"context"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
)

// WatchRegistry manages the set of files tracked for changes.
// Registry state is in-memory only; the initial file list is loaded
// from configuration at startup.
type WatchRegistry interface {
	// Add inserts or overwrites a watched file. Re-adding an existing
	// key silently resets its stored state.
	Add(fileKey, name string) *domain.WatchedFile

	// Remove stops watching a file. Returns true if it was watched.
	Remove(fileKey string) bool

	// List returns all watched files in insertion order.
	List() []domain.WatchedFile

	// Get returns a snapshot of one watched file.
	Get(fileKey string) (*domain.WatchedFile, error)

	// MarkGenerated flags that documentation exists for a file.
	MarkGenerated(fileKey string)
}

// ChangePoller periodically checks watched files for version changes
// and notifies subscribers.
type ChangePoller interface {
	// Start begins the polling loop. Calling Start while running is a
	// no-op that reports already-active via the return value.
	Start() bool

	// Stop halts the polling loop. Stopping a stopped poller is a no-op.
	Stop()

	// IsRunning reports whether the polling loop is active.
	IsRunning() bool

	// CheckFile checks a single file now, with scheduled-path
	// semantics. Returns nil when nothing changed.
	CheckFile(ctx context.Context, fileKey string) (*domain.FileChangeEvent, error)

	// CheckAll checks every watched file sequentially and returns the
	// events produced. Per-file failures are logged and skipped.
	CheckAll(ctx context.Context) []domain.FileChangeEvent

	// OnChange registers a callback invoked for each change event.
	// Callbacks run sequentially; a failing callback never aborts the
	// remaining callbacks or the poll loop.
	OnChange(fn func(domain.FileChangeEvent))

	// Events exposes change events as a stream for passive observers.
	// The channel is buffered; events overflowing the buffer are
	// dropped for observers (callbacks always run).
	Events() <-chan domain.FileChangeEvent
}
