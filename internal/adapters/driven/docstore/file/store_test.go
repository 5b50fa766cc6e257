package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func testDoc(id, sourceName string, createdAt time.Time) *domain.Documentation {
	return &domain.Documentation{
		ID:            id,
		SourceKey:     "key-" + id,
		SourceName:    sourceName,
		Title:         sourceName + " Documentation",
		DocType:       domain.DocTypeBoth,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
		Version:       domain.DocVersion,
		SourceVersion: "42",
		Sections: []domain.DocSection{
			{ID: "s1", Title: "Overview", Order: 0},
			{ID: "s2", Title: "Components", Order: 1},
		},
	}
}

func TestStore_SaveWritesArtifactSet(t *testing.T) {
	store := newTestStore(t)
	doc := testDoc("d1", "Landing Page", time.Now())

	err := store.Save(context.Background(), doc, "## Overview\nbody", []domain.DocFormat{
		domain.FormatMarkdown, domain.FormatHTML,
	})
	require.NoError(t, err)

	md, err := os.ReadFile(filepath.Join(store.Dir(), "landing_page.md"))
	require.NoError(t, err)
	assert.Equal(t, "## Overview\nbody", string(md))

	html, err := os.ReadFile(filepath.Join(store.Dir(), "landing_page.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<!DOCTYPE html>")
	assert.Contains(t, string(html), "<h2")
	assert.Contains(t, string(html), "Landing Page Documentation")
	assert.Contains(t, string(html), "source version 42")

	_, err = os.Stat(filepath.Join(store.Dir(), "landing_page_meta.json"))
	require.NoError(t, err)
}

func TestStore_SaveMarkdownOnly(t *testing.T) {
	store := newTestStore(t)
	doc := testDoc("d1", "Landing Page", time.Now())

	err := store.Save(context.Background(), doc, "# md", []domain.DocFormat{domain.FormatMarkdown})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(store.Dir(), "landing_page.html"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(store.Dir(), "landing_page_meta.json"))
	assert.NoError(t, err) // metadata is always written
}

func TestStore_SaveOverwritesSameSlug(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := testDoc("d1", "Landing Page", time.Now())
	require.NoError(t, store.Save(ctx, first, "first version", []domain.DocFormat{domain.FormatMarkdown}))

	second := testDoc("d2", "Landing Page", time.Now().Add(time.Minute))
	require.NoError(t, store.Save(ctx, second, "second version", []domain.DocFormat{domain.FormatMarkdown}))

	metas, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 1) // same slug, one artifact set
	assert.Equal(t, "d2", metas[0].ID)

	md, err := os.ReadFile(filepath.Join(store.Dir(), "landing_page.md"))
	require.NoError(t, err)
	assert.Equal(t, "second version", string(md))
}

func TestStore_ListSortedNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, testDoc("old", "Old Design", base), "md", nil))
	require.NoError(t, store.Save(ctx, testDoc("new", "New Design", base.Add(48*time.Hour)), "md", nil))
	require.NoError(t, store.Save(ctx, testDoc("mid", "Mid Design", base.Add(24*time.Hour)), "md", nil))

	metas, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 3)
	assert.Equal(t, "new", metas[0].ID)
	assert.Equal(t, "mid", metas[1].ID)
	assert.Equal(t, "old", metas[2].ID)
}

func TestStore_ListSkipsCorruptMetadata(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testDoc("d1", "Good", time.Now()), "md", nil))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "broken_meta.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "noid_meta.json"), []byte("{}"), 0o644))

	metas, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "d1", metas[0].ID)
}

func TestStore_GetAttachesContent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testDoc("d1", "Landing Page", time.Now()), "## Overview\nbody",
		[]domain.DocFormat{domain.FormatMarkdown}))

	meta, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Landing Page", meta.SourceName)
	assert.Equal(t, "## Overview\nbody", meta.Content)
	require.Len(t, meta.Sections, 2)
	assert.Equal(t, "Overview", meta.Sections[0].Title)
}

func TestStore_GetUnknownID(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ContentByKeyAndFormat(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	doc := testDoc("d1", "Landing Page", time.Now())
	require.NoError(t, store.Save(ctx, doc, "## Overview\nbody", []domain.DocFormat{
		domain.FormatMarkdown, domain.FormatHTML,
	}))

	md, err := store.Content(ctx, doc.SourceKey, domain.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "## Overview\nbody", md)

	html, err := store.Content(ctx, doc.SourceKey, domain.FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, html, "<!DOCTYPE html>")

	_, err = store.Content(ctx, "unknown-key", domain.FormatMarkdown)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_MarkdownByKey(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	first := testDoc("d1", "Landing Page", time.Now())
	second := testDoc("d2", "Settings", time.Now())
	require.NoError(t, store.Save(ctx, first, "landing md", []domain.DocFormat{domain.FormatMarkdown}))
	require.NoError(t, store.Save(ctx, second, "settings md", []domain.DocFormat{domain.FormatMarkdown}))

	all, err := store.MarkdownByKey(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Landing Page": "landing md",
		"Settings":     "settings md",
	}, all)

	one, err := store.MarkdownByKey(ctx, second.SourceKey)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Settings": "settings md"}, one)
}

func TestStore_SaveSlugFallsBackToKey(t *testing.T) {
	store := newTestStore(t)
	doc := testDoc("d1", "", time.Now())

	require.NoError(t, store.Save(context.Background(), doc, "md", nil))

	_, err := os.Stat(filepath.Join(store.Dir(), doc.SourceKey+"_meta.json"))
	assert.NoError(t, err)
}

func TestRenderHTML_Tables(t *testing.T) {
	doc := testDoc("d1", "Landing Page", time.Now())

	html, err := renderHTML(doc, "| a | b |\n|---|---|\n| 1 | 2 |")

	require.NoError(t, err)
	assert.Contains(t, html, "<table>")
}
