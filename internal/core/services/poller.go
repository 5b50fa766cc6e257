package services

import (
	"context"
	"sync"
	"time"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driving"
	"github.com/designdocs-labs/designdocs-cli/internal/logger"
)

// Ensure ChangePoller implements the interface.
var _ driving.ChangePoller = (*ChangePoller)(nil)

// DefaultPollingInterval is how often watched files are checked when
// the configuration does not say otherwise.
const DefaultPollingInterval = 5 * time.Minute

// historyKeep bounds the poll-history table.
const historyKeep = 500

// eventBuffer sizes the passive event stream. Observers that fall
// behind lose events; callbacks always run.
const eventBuffer = 64

// ChangePoller checks watched files against the design API on a fixed
// interval and notifies subscribers of version transitions. Files are
// checked sequentially, never in parallel, which bounds load on the
// API and avoids races on a single file's stored state.
type ChangePoller struct {
	registry *WatchRegistry
	api      driven.DesignAPI
	history  driven.PollHistoryStore
	interval time.Duration

	mu        sync.Mutex
	running   bool
	stopCh    chan struct{}
	wg        sync.WaitGroup
	callbacks []func(domain.FileChangeEvent)
	events    chan domain.FileChangeEvent
}

// NewChangePoller creates a poller. history may be nil to disable the
// audit log; interval <= 0 selects the default.
func NewChangePoller(
	registry *WatchRegistry,
	api driven.DesignAPI,
	history driven.PollHistoryStore,
	interval time.Duration,
) *ChangePoller {
	if interval <= 0 {
		interval = DefaultPollingInterval
	}
	return &ChangePoller{
		registry: registry,
		api:      api,
		history:  history,
		interval: interval,
		events:   make(chan domain.FileChangeEvent, eventBuffer),
	}
}

// OnChange registers a callback invoked sequentially for each change
// event. A failing callback never aborts the remaining callbacks or
// the poll loop.
func (p *ChangePoller) OnChange(fn func(domain.FileChangeEvent)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callbacks = append(p.callbacks, fn)
}

// Events exposes change events as a buffered stream for passive
// observers such as the TUI.
func (p *ChangePoller) Events() <-chan domain.FileChangeEvent {
	return p.events
}

// Start begins the polling loop. Returns false if already running.
func (p *ChangePoller) Start() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		logger.Warn("Change poller is already running")
		return false
	}
	p.running = true
	p.stopCh = make(chan struct{})

	p.wg.Add(1)
	go p.run(p.stopCh)

	logger.Info("Started change polling (every %s)", p.interval)
	return true
}

// Stop halts the polling loop and waits for an in-flight poll to
// finish. Stopping a stopped poller is a no-op.
func (p *ChangePoller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopCh)
	p.mu.Unlock()

	p.wg.Wait()
	logger.Info("Stopped change polling")
}

// IsRunning reports whether the polling loop is active.
func (p *ChangePoller) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *ChangePoller) run(stopCh chan struct{}) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			logger.Debug("Running scheduled change detection")
			p.CheckAll(context.Background())
		}
	}
}

// CheckAll checks every watched file sequentially. An API failure for
// one file is logged and skipped; the rest of the batch still runs.
func (p *ChangePoller) CheckAll(ctx context.Context) []domain.FileChangeEvent {
	var events []domain.FileChangeEvent
	for _, watched := range p.registry.List() {
		event, err := p.CheckFile(ctx, watched.FileKey)
		if err != nil {
			logger.Error("Error checking file %s: %v", watched.FileKey, err)
			continue
		}
		if event != nil {
			events = append(events, *event)
		}
	}
	return events
}

// CheckFile checks a single watched file for changes. It fetches
// shallow metadata, applies the decision rule, updates stored state
// and fires callbacks on a transition. Returns nil, nil when nothing
// changed.
func (p *ChangePoller) CheckFile(ctx context.Context, fileKey string) (*domain.FileChangeEvent, error) {
	watched, err := p.registry.Get(fileKey)
	if err != nil {
		return nil, err
	}

	meta, err := p.api.FileMeta(ctx, fileKey)
	if err != nil {
		p.record(ctx, &domain.PollRecord{
			FileKey:   fileKey,
			CheckedAt: time.Now(),
			Error:     err.Error(),
		})
		return nil, err
	}

	now := time.Now()
	changed := p.decide(watched, meta)

	if !changed {
		p.registry.update(fileKey, func(w *domain.WatchedFile) {
			w.LastChecked = now
		})
		p.record(ctx, &domain.PollRecord{FileKey: fileKey, CheckedAt: now})
		return nil, nil
	}

	changedAt := meta.LastModified
	if changedAt.IsZero() {
		changedAt = now
	}
	event := domain.FileChangeEvent{
		FileKey:    fileKey,
		FileName:   watched.Name,
		OldVersion: watched.LastVersion,
		NewVersion: meta.Version,
		ChangedAt:  changedAt,
	}

	p.registry.update(fileKey, func(w *domain.WatchedFile) {
		w.LastVersion = meta.Version
		w.LastModified = meta.LastModified
		w.LastChecked = now
	})

	logger.Info("Change detected in %s (%s): %q -> %q",
		watched.Name, fileKey, event.OldVersion, event.NewVersion)

	p.record(ctx, &domain.PollRecord{
		FileKey:    fileKey,
		CheckedAt:  now,
		Changed:    true,
		OldVersion: event.OldVersion,
		NewVersion: event.NewVersion,
	})

	p.notify(event)
	return &event, nil
}

// decide applies the change decision rule in precedence order:
// a stored version that differs wins, then a strictly newer remote
// modification time, then the bootstrap rule that a file with no
// stored state at all counts as changed.
func (p *ChangePoller) decide(watched *domain.WatchedFile, meta *domain.FileMeta) bool {
	switch {
	case watched.LastVersion != "" && meta.Version != watched.LastVersion:
		return true
	case !watched.LastModified.IsZero() && meta.LastModified.After(watched.LastModified):
		return true
	case !watched.HasBaseline():
		return true
	default:
		return false
	}
}

func (p *ChangePoller) notify(event domain.FileChangeEvent) {
	p.mu.Lock()
	callbacks := make([]func(domain.FileChangeEvent), len(p.callbacks))
	copy(callbacks, p.callbacks)
	p.mu.Unlock()

	for _, fn := range callbacks {
		p.invoke(fn, event)
	}

	select {
	case p.events <- event:
	default:
		logger.Debug("Event stream full, dropping event for %s", event.FileKey)
	}
}

// invoke runs one callback, isolating panics so a bad subscriber
// cannot abort the batch.
func (p *ChangePoller) invoke(fn func(domain.FileChangeEvent), event domain.FileChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Change callback panicked for %s: %v", event.FileKey, r)
		}
	}()
	fn(event)
}

// record appends a poll record, best effort.
func (p *ChangePoller) record(ctx context.Context, rec *domain.PollRecord) {
	if p.history == nil {
		return
	}
	if err := p.history.Record(ctx, rec); err != nil {
		logger.Warn("Failed to record poll history for %s: %v", rec.FileKey, err)
		return
	}
	if err := p.history.Prune(ctx, historyKeep); err != nil {
		logger.Warn("Failed to prune poll history: %v", err)
	}
}
