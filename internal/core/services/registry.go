package services

import (
	"sync"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driving"
	"github.com/designdocs-labs/designdocs-cli/internal/logger"
)

// Ensure WatchRegistry implements the interface.
var _ driving.WatchRegistry = (*WatchRegistry)(nil)

// WatchRegistry is the in-memory mapping of watched file key to
// last-known version state. The poller is the single writer after
// registration; the mutex guards against concurrent manual checks and
// CLI mutations. State is lost on restart and reloaded from
// configuration at startup.
type WatchRegistry struct {
	mu    sync.RWMutex
	files map[string]*domain.WatchedFile
	order []string
}

// NewWatchRegistry creates an empty registry.
func NewWatchRegistry() *WatchRegistry {
	return &WatchRegistry{
		files: make(map[string]*domain.WatchedFile),
	}
}

// Add inserts or overwrites a watched file. Re-adding an existing key
// silently resets its stored version state.
func (r *WatchRegistry) Add(fileKey, name string) *domain.WatchedFile {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.files[fileKey]; !exists {
		r.order = append(r.order, fileKey)
	}
	watched := &domain.WatchedFile{FileKey: fileKey, Name: name}
	r.files[fileKey] = watched

	logger.Info("Added file to watch: %s (%s)", name, fileKey)
	snapshot := *watched
	return &snapshot
}

// Remove stops watching a file. Returns true if it was watched.
func (r *WatchRegistry) Remove(fileKey string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.files[fileKey]; !exists {
		return false
	}
	delete(r.files, fileKey)
	for i, key := range r.order {
		if key == fileKey {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	logger.Info("Removed file from watch: %s", fileKey)
	return true
}

// List returns snapshots of all watched files in insertion order.
func (r *WatchRegistry) List() []domain.WatchedFile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	files := make([]domain.WatchedFile, 0, len(r.order))
	for _, key := range r.order {
		files = append(files, *r.files[key])
	}
	return files
}

// Get returns a snapshot of one watched file.
func (r *WatchRegistry) Get(fileKey string) (*domain.WatchedFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	watched, exists := r.files[fileKey]
	if !exists {
		return nil, domain.ErrNotWatched
	}
	snapshot := *watched
	return &snapshot, nil
}

// MarkGenerated flags that documentation exists for a file.
// Unknown keys are ignored.
func (r *WatchRegistry) MarkGenerated(fileKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if watched, exists := r.files[fileKey]; exists {
		watched.DocGenerated = true
	}
}

// update applies fn to the stored entry under the write lock.
// Used by the poller to record check outcomes.
func (r *WatchRegistry) update(fileKey string, fn func(*domain.WatchedFile)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	watched, exists := r.files[fileKey]
	if !exists {
		return false
	}
	fn(watched)
	return true
}
