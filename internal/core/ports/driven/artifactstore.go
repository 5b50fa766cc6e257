package driven

import (
	"context"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
)

// DocMeta is the persisted metadata snapshot for one generated
// document. The metadata files on disk are the durable index: listing
// and searching documentation means scanning them, not a database.
type DocMeta struct {
	ID            string           `json:"id"`
	SourceKey     string           `json:"source_key"`
	SourceName    string           `json:"source_name"`
	Title         string           `json:"title"`
	DocType       string           `json:"doc_type"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
	Version       string           `json:"version"`
	SourceVersion string           `json:"source_version"`
	Sections      []DocMetaSection `json:"sections"`

	// Content is the markdown body, attached only by Get.
	Content string `json:"content,omitempty"`
}

// DocMetaSection is the per-section entry in a metadata snapshot.
type DocMetaSection struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
}

// ArtifactStore persists generated documentation as a three-file
// artifact set per document, keyed by the slug of the source name:
// {slug}.md, {slug}.html and {slug}_meta.json. Regeneration overwrites
// the same paths in place.
type ArtifactStore interface {
	// Save writes the artifact set for a document. Formats selects
	// which rendered outputs to write; the metadata snapshot is always
	// written. No atomicity across the three files is guaranteed.
	Save(ctx context.Context, doc *domain.Documentation, markdown string, formats []domain.DocFormat) error

	// List scans all metadata snapshots, skipping corrupt files, and
	// returns them sorted descending by created_at (ISO-8601 lexical
	// ordering).
	List(ctx context.Context) ([]DocMeta, error)

	// Get returns the metadata for a document ID with the markdown
	// content attached when present on disk.
	Get(ctx context.Context, id string) (*DocMeta, error)

	// Content returns the raw markdown or HTML for a source file key.
	Content(ctx context.Context, sourceKey string, format domain.DocFormat) (string, error)

	// MarkdownByKey returns source name → markdown for the given key,
	// or for every stored document when key is empty. Used to build
	// chat context.
	MarkdownByKey(ctx context.Context, sourceKey string) (map[string]string, error)

	// Dir returns the directory markdown artifacts live in.
	Dir() string
}
