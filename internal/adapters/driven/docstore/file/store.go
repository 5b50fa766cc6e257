// Package file persists generated documentation as artifact files.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
	"github.com/designdocs-labs/designdocs-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ArtifactStore = (*Store)(nil)

// metaSuffix marks metadata snapshot files in the artifact directory.
const metaSuffix = "_meta.json"

// Store writes a three-file artifact set per document under a single
// directory: {slug}.md, {slug}.html and {slug}_meta.json. The metadata
// files are the durable index; listing means scanning them.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty artifact directory", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the artifact directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the artifact set for a document. The markdown and HTML
// renditions are written first, the metadata snapshot last, so a scan
// never indexes a document whose content files are missing. There is
// no atomicity across the three files.
func (s *Store) Save(_ context.Context, doc *domain.Documentation, markdown string, formats []domain.DocFormat) error {
	if doc == nil {
		return fmt.Errorf("%w: nil documentation", domain.ErrInvalidInput)
	}
	slug := doc.Slug()
	if slug == "" {
		slug = doc.SourceKey
	}
	if slug == "" {
		return fmt.Errorf("%w: document has no source name or key", domain.ErrInvalidInput)
	}

	for _, format := range formats {
		switch format {
		case domain.FormatMarkdown:
			path := filepath.Join(s.dir, slug+".md")
			if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
				return fmt.Errorf("write markdown: %w", err)
			}
		case domain.FormatHTML:
			html, err := renderHTML(doc, markdown)
			if err != nil {
				return fmt.Errorf("render html: %w", err)
			}
			path := filepath.Join(s.dir, slug+".html")
			if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
				return fmt.Errorf("write html: %w", err)
			}
		default:
			return fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, format)
		}
	}

	meta := metaFromDoc(doc)
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	path := filepath.Join(s.dir, slug+metaSuffix)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	logger.Debug("Saved documentation artifacts: %s", slug)
	return nil
}

// List scans all metadata snapshots, skipping corrupt files, sorted
// descending by created_at.
func (s *Store) List(_ context.Context) ([]driven.DocMeta, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read artifact directory: %w", err)
	}

	var metas []driven.DocMeta
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), metaSuffix) {
			continue
		}
		meta, err := s.readMeta(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			logger.Warn("Skipping corrupt metadata file %s: %v", entry.Name(), err)
			continue
		}
		metas = append(metas, *meta)
	}

	// created_at is ISO-8601, so lexical order is chronological.
	sort.Slice(metas, func(i, j int) bool {
		return metas[i].CreatedAt > metas[j].CreatedAt
	})
	return metas, nil
}

// Get returns one document's metadata by ID with markdown attached
// when the content file exists.
func (s *Store) Get(ctx context.Context, id string) (*driven.DocMeta, error) {
	metas, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range metas {
		if metas[i].ID != id {
			continue
		}
		meta := metas[i]
		slug := domain.Slugify(meta.SourceName)
		if content, err := os.ReadFile(filepath.Join(s.dir, slug+".md")); err == nil {
			meta.Content = string(content)
		}
		return &meta, nil
	}
	return nil, fmt.Errorf("%w: documentation %s", domain.ErrNotFound, id)
}

// Content returns the raw markdown or HTML for a source file key.
func (s *Store) Content(ctx context.Context, sourceKey string, format domain.DocFormat) (string, error) {
	meta, err := s.findByKey(ctx, sourceKey)
	if err != nil {
		return "", err
	}

	slug := domain.Slugify(meta.SourceName)
	ext := ".md"
	if format == domain.FormatHTML {
		ext = ".html"
	}

	content, err := os.ReadFile(filepath.Join(s.dir, slug+ext))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: no %s artifact for %s", domain.ErrNotFound, format, sourceKey)
		}
		return "", fmt.Errorf("read artifact: %w", err)
	}
	return string(content), nil
}

// MarkdownByKey returns source name to markdown for a key, or for all
// stored documents when the key is empty.
func (s *Store) MarkdownByKey(ctx context.Context, sourceKey string) (map[string]string, error) {
	metas, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	docs := make(map[string]string)
	for _, meta := range metas {
		if sourceKey != "" && meta.SourceKey != sourceKey {
			continue
		}
		slug := domain.Slugify(meta.SourceName)
		content, err := os.ReadFile(filepath.Join(s.dir, slug+".md"))
		if err != nil {
			continue
		}
		docs[meta.SourceName] = string(content)
	}
	return docs, nil
}

func (s *Store) findByKey(ctx context.Context, sourceKey string) (*driven.DocMeta, error) {
	if sourceKey == "" {
		return nil, fmt.Errorf("%w: empty source key", domain.ErrInvalidInput)
	}
	metas, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range metas {
		if metas[i].SourceKey == sourceKey {
			return &metas[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no documentation for %s", domain.ErrNotFound, sourceKey)
}

func (s *Store) readMeta(path string) (*driven.DocMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var meta driven.DocMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	if meta.ID == "" {
		return nil, fmt.Errorf("metadata missing id")
	}
	return &meta, nil
}

func metaFromDoc(doc *domain.Documentation) driven.DocMeta {
	sections := make([]driven.DocMetaSection, 0, len(doc.Sections))
	for _, section := range doc.Sections {
		sections = append(sections, driven.DocMetaSection{
			ID:    section.ID,
			Title: section.Title,
			Order: section.Order,
		})
	}
	return driven.DocMeta{
		ID:            doc.ID,
		SourceKey:     doc.SourceKey,
		SourceName:    doc.SourceName,
		Title:         doc.Title,
		DocType:       doc.DocType.String(),
		CreatedAt:     doc.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     doc.UpdatedAt.UTC().Format(time.RFC3339),
		Version:       doc.Version,
		SourceVersion: doc.SourceVersion,
		Sections:      sections,
	}
}
