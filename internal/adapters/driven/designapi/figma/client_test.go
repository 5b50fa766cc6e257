package figma

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{Token: "test-token", BaseURL: server.URL})
}

func TestClient_FileMeta(t *testing.T) {
	var gotPath, gotDepth, gotToken string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDepth = r.URL.Query().Get("depth")
		gotToken = r.Header.Get("X-Figma-Token")
		w.Write([]byte(`{
			"name": "Landing Page",
			"version": "42",
			"lastModified": "2025-02-01T10:30:00Z"
		}`))
	})

	meta, err := client.FileMeta(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Equal(t, "/files/abc123", gotPath)
	assert.Equal(t, "1", gotDepth)
	assert.Equal(t, "test-token", gotToken)
	assert.Equal(t, "abc123", meta.Key)
	assert.Equal(t, "Landing Page", meta.Name)
	assert.Equal(t, "42", meta.Version)
	assert.Equal(t, time.Date(2025, 2, 1, 10, 30, 0, 0, time.UTC), meta.LastModified)
}

func TestClient_FileParsesTree(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"name": "Landing Page",
			"version": "42",
			"lastModified": "2025-02-01T10:30:00Z",
			"document": {
				"id": "0:0", "name": "Document", "type": "DOCUMENT",
				"children": [{
					"id": "0:1", "name": "Page 1", "type": "CANVAS",
					"children": [{
						"id": "1:1", "name": "Home", "type": "FRAME",
						"layoutMode": "VERTICAL",
						"absoluteBoundingBox": {"width": 1440, "height": 900},
						"children": [
							{"id": "1:2", "name": "Title", "type": "TEXT", "characters": "Welcome"},
							{"id": "1:3", "name": "Hidden", "type": "RECTANGLE", "visible": false}
						]
					}]
				}]
			},
			"components": {
				"2:1": {"key": "ck", "name": "Button", "description": "Primary action"}
			},
			"styles": {
				"3:1": {"key": "sk", "name": "Brand", "styleType": "FILL"}
			}
		}`))
	})

	file, err := client.File(context.Background(), "abc123")

	require.NoError(t, err)
	require.Len(t, file.Document.Children, 1)
	page := file.Document.Children[0]
	require.Len(t, page.Children, 1)
	frame := page.Children[0]
	assert.Equal(t, "Home", frame.Name)
	assert.Equal(t, "VERTICAL", frame.LayoutMode)
	assert.Equal(t, 1440.0, frame.Width)
	assert.True(t, frame.Visible) // omitted visible defaults to true
	require.Len(t, frame.Children, 2)
	assert.Equal(t, "Welcome", frame.Children[0].Characters)
	assert.False(t, frame.Children[1].Visible)

	require.Contains(t, file.Components, "2:1")
	assert.Equal(t, "Button", file.Components["2:1"].Name)
	assert.Equal(t, "2:1", file.Components["2:1"].NodeID)
	require.Contains(t, file.Styles, "3:1")
	assert.Equal(t, "FILL", file.Styles["3:1"].Type)
}

func TestClient_StatusCodeMapping(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{http.StatusBadRequest, domain.ErrBadFileKey},
		{http.StatusUnauthorized, domain.ErrUnauthorized},
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusNotFound, domain.ErrFileNotFound},
	}

	for _, tt := range tests {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", tt.status)
		})

		_, err := client.FileMeta(context.Background(), "abc123")

		assert.ErrorIs(t, err, tt.wantErr, "status %d", tt.status)
	}
}

func TestClient_MissingToken(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://localhost:1"})

	_, err := client.FileMeta(context.Background(), "abc123")

	assert.ErrorIs(t, err, domain.ErrTokenMissing)
}

func TestClient_EmptyFileKey(t *testing.T) {
	client := NewClient(Config{Token: "t"})

	_, err := client.FileMeta(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = client.File(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClient_UnreachableServer(t *testing.T) {
	client := NewClient(Config{Token: "t", BaseURL: "http://127.0.0.1:1"})

	_, err := client.Me(context.Background())

	assert.ErrorIs(t, err, domain.ErrAPIUnavailable)
}

func TestClient_FileVersionsLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"versions": [
			{"id": "3", "label": "v3", "created_at": "2025-03-01T00:00:00Z", "user": {"handle": "alice"}},
			{"id": "2", "label": "v2", "created_at": "2025-02-01T00:00:00Z", "user": {"handle": "bob"}},
			{"id": "1", "label": "v1", "created_at": "2025-01-01T00:00:00Z", "user": {"handle": "alice"}}
		]}`))
	})

	versions, err := client.FileVersions(context.Background(), "abc123", 2)

	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "3", versions[0].ID)
	assert.Equal(t, "alice", versions[0].User.Handle)
}

func TestClient_TeamProjectsNumericIDs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"projects": [{"id": 123456, "name": "Web"}]}`))
	})

	projects, err := client.TeamProjects(context.Background(), "team1")

	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "123456", projects[0].ID)
	assert.Equal(t, "Web", projects[0].Name)
}

func TestClient_RenderImages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1:1,1:2", r.URL.Query().Get("ids"))
		assert.Equal(t, "png", r.URL.Query().Get("format"))
		w.Write([]byte(`{"images": {"1:1": "http://cdn/img1.png", "1:2": "http://cdn/img2.png"}}`))
	})

	images, err := client.RenderImages(context.Background(), "abc123", []string{"1:1", "1:2"}, "", 0)

	require.NoError(t, err)
	assert.Len(t, images, 2)
}

func TestClient_RenderImagesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"err": "invalid node ids", "images": {}}`))
	})

	_, err := client.RenderImages(context.Background(), "abc123", []string{"bad"}, "png", 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid node ids")
}
