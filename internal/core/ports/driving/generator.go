package driving

import (
	"context"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
)

// DocGenerator produces and retrieves generated documentation.
type DocGenerator interface {
	// Generate fetches the design file, produces documentation through
	// the LLM, persists the artifact set and returns the new document.
	// Concurrent calls for the same file key are serialised; the last
	// writer wins on disk. The caller is responsible for flagging the
	// watched file as generated.
	Generate(ctx context.Context, fileKey string, docType domain.DocType, formats []domain.DocFormat) (*domain.Documentation, error)

	// Update regenerates documentation for a file. Equivalent to a
	// fresh Generate: no diffing, artifacts are overwritten.
	Update(ctx context.Context, fileKey string, docType domain.DocType) (*domain.Documentation, error)

	// List returns metadata for all generated documentation,
	// newest first.
	List(ctx context.Context) ([]driven.DocMeta, error)

	// Get returns one document's metadata with markdown attached.
	Get(ctx context.Context, id string) (*driven.DocMeta, error)

	// Content returns raw markdown or HTML for a source file key.
	Content(ctx context.Context, sourceKey string, format domain.DocFormat) (string, error)
}

// ChatService answers questions over the persisted documentation.
type ChatService interface {
	// Ask answers a question using stored documentation as context.
	// When sourceKey is non-empty, context is limited to that file's
	// documentation. History carries prior turns; only the most recent
	// turns are included in the prompt.
	Ask(ctx context.Context, message, sourceKey string, history []domain.ChatMessage) (*domain.ChatResponse, error)
}

// CodeAnalyzer generates documentation for source code.
type CodeAnalyzer interface {
	// AnalyzeDir walks a local directory and documents each matching
	// source file, returning file path → generated markdown.
	AnalyzeDir(ctx context.Context, root string) (map[string]string, error)

	// AnalyzeRepo documents files fetched from a GitHub repository
	// ("owner/repo"), optionally restricted to a subdirectory.
	AnalyzeRepo(ctx context.Context, repo, dir string) (map[string]string, error)
}
