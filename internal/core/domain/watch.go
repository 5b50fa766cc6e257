package domain

import "time"

// WatchedFile tracks a remote design file for version changes.
// State is owned exclusively by the watch registry; the poller is the
// single writer after registration.
type WatchedFile struct {
	// FileKey is the unique design API key for the file.
	FileKey string

	// Name is the human-readable display name.
	Name string

	// LastVersion is the last version identifier seen by the poller.
	// Empty until the first successful check.
	LastVersion string

	// LastModified is the last modification timestamp seen by the poller.
	// Zero until the first successful check.
	LastModified time.Time

	// LastChecked is when the poller last checked this file,
	// whether or not it had changed. Zero until the first check.
	LastChecked time.Time

	// DocGenerated indicates documentation has been generated at least
	// once for this file since it was added.
	DocGenerated bool
}

// HasBaseline reports whether the file has any stored version state.
// A file without a baseline is treated as changed on first check so that
// documentation generation bootstraps for newly watched files.
func (w *WatchedFile) HasBaseline() bool {
	return w.LastVersion != "" || !w.LastModified.IsZero()
}

// FileChangeEvent records a detected version transition on a watched file.
// Events are immutable: one is created per transition and handed to
// registered callbacks, never persisted as the source of truth.
type FileChangeEvent struct {
	// FileKey identifies the file that changed.
	FileKey string

	// FileName is the display name at the time of the change.
	FileName string

	// OldVersion is the previously stored version.
	// Empty on the bootstrap event for a newly watched file.
	OldVersion string

	// NewVersion is the version the file changed to.
	NewVersion string

	// ChangedAt is the remote modification time, or the detection time
	// when the API did not report one.
	ChangedAt time.Time
}

// PollRecord is an audit entry for a single file check.
// Records are kept in the poll-history store for operational visibility
// and pruned on a rolling basis.
type PollRecord struct {
	// ID is assigned by the store.
	ID int64

	// FileKey identifies the checked file.
	FileKey string

	// CheckedAt is when the check ran.
	CheckedAt time.Time

	// Changed reports whether the check produced a change event.
	Changed bool

	// OldVersion and NewVersion capture the transition when Changed.
	OldVersion string
	NewVersion string

	// Error holds the check failure message, if any.
	Error string
}
