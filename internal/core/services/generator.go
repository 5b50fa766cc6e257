package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driving"
	"github.com/designdocs-labs/designdocs-cli/internal/logger"
)

// Ensure DocGenerator implements the interface.
var _ driving.DocGenerator = (*DocGenerator)(nil)

// DefaultFormats is the artifact set written when the caller does not
// choose formats.
var DefaultFormats = []domain.DocFormat{domain.FormatMarkdown, domain.FormatHTML}

// GeneratorConfig selects the model and sampling options used for
// documentation generation.
type GeneratorConfig struct {
	// Model is the LLM model used for documentation.
	Model string

	// Options are the sampling options for generation calls.
	Options driven.GenerateOptions
}

// DocGenerator orchestrates design fetch, info extraction, LLM
// generation, section parsing and artifact persistence.
//
// Calls for the same file key are serialised through a per-key lock so
// two concurrent generations never interleave writes to the same
// artifact paths; distinct keys generate concurrently.
type DocGenerator struct {
	api   driven.DesignAPI
	llm   driven.LLMService
	store driven.ArtifactStore
	cfg   GeneratorConfig

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewDocGenerator creates a generator.
func NewDocGenerator(
	api driven.DesignAPI,
	llm driven.LLMService,
	store driven.ArtifactStore,
	cfg GeneratorConfig,
) *DocGenerator {
	return &DocGenerator{
		api:   api,
		llm:   llm,
		store: store,
		cfg:   cfg,
		locks: make(map[string]*sync.Mutex),
	}
}

// keyLock returns the mutex for a file key, creating it on first use.
func (g *DocGenerator) keyLock(fileKey string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()

	lock, exists := g.locks[fileKey]
	if !exists {
		lock = &sync.Mutex{}
		g.locks[fileKey] = lock
	}
	return lock
}

// Generate produces documentation for a design file and persists the
// artifact set. Any stage failure propagates as a single generation
// failure; a partially written artifact set is possible and documented
// as a known gap.
func (g *DocGenerator) Generate(
	ctx context.Context,
	fileKey string,
	docType domain.DocType,
	formats []domain.DocFormat,
) (*domain.Documentation, error) {
	if fileKey == "" {
		return nil, fmt.Errorf("%w: empty file key", domain.ErrInvalidInput)
	}
	if !docType.IsValid() {
		docType = domain.DocTypeBoth
	}
	if len(formats) == 0 {
		formats = DefaultFormats
	}

	lock := g.keyLock(fileKey)
	lock.Lock()
	defer lock.Unlock()

	logger.Info("Generating %s documentation for file %s", docType, fileKey)

	file, err := g.api.File(ctx, fileKey)
	if err != nil {
		return nil, fmt.Errorf("fetch design file: %w", err)
	}

	info := domain.ExtractDesignInfo(file)
	prompt := buildDocPrompt(&info, docType)

	markdown, err := g.llm.Generate(ctx, prompt, g.options())
	if err != nil {
		return nil, fmt.Errorf("generate documentation: %w", err)
	}

	now := time.Now()
	doc := &domain.Documentation{
		ID:            uuid.NewString(),
		SourceKey:     fileKey,
		SourceName:    file.Name,
		Title:         fmt.Sprintf("%s Documentation", file.Name),
		Description:   fmt.Sprintf("Auto-generated %s documentation", docType),
		DocType:       docType,
		CreatedAt:     now,
		UpdatedAt:     now,
		Version:       domain.DocVersion,
		SourceVersion: file.Version,
	}

	sections := domain.ParseSections(markdown)
	for i := range sections {
		sections[i].ID = uuid.NewString()
		sections[i].DocType = docType
	}
	doc.Sections = sections

	if err := g.store.Save(ctx, doc, markdown, formats); err != nil {
		return nil, fmt.Errorf("persist documentation: %w", err)
	}

	logger.Info("Documentation generated: %s (%d sections)", doc.ID, len(doc.Sections))
	return doc, nil
}

// Update regenerates documentation for a file. Equivalent to a fresh
// Generate: a brand-new document replaces the artifacts at the same
// slug, with no diffing against prior sections.
func (g *DocGenerator) Update(ctx context.Context, fileKey string, docType domain.DocType) (*domain.Documentation, error) {
	return g.Generate(ctx, fileKey, docType, nil)
}

// List returns metadata for all generated documentation, newest first.
func (g *DocGenerator) List(ctx context.Context) ([]driven.DocMeta, error) {
	return g.store.List(ctx)
}

// Get returns one document's metadata with markdown attached.
func (g *DocGenerator) Get(ctx context.Context, id string) (*driven.DocMeta, error) {
	return g.store.Get(ctx, id)
}

// Content returns raw markdown or HTML for a source file key.
func (g *DocGenerator) Content(ctx context.Context, sourceKey string, format domain.DocFormat) (string, error) {
	if !format.IsValid() {
		return "", fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, format)
	}
	return g.store.Content(ctx, sourceKey, format)
}

func (g *DocGenerator) options() driven.GenerateOptions {
	opts := g.cfg.Options
	opts.Model = g.cfg.Model
	return opts
}
