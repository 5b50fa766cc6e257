package cli

import (
	"context"
	"time"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
)

// setupTestServices injects mock services and returns a cleanup that
// restores the previous ones.
func setupTestServices() func() {
	prev := Services{
		Registry:  watchRegistry,
		Poller:    changePoller,
		Generator: docGenerator,
		Chat:      chatService,
		Analyzer:  codeAnalyzer,
		DesignAPI: designAPI,
		LLM:       llmService,
		History:   pollHistory,
		Config:    configSaver,
	}

	SetServices(Services{
		Registry:  newMockRegistry(),
		Poller:    &mockPoller{},
		Generator: newMockGenerator(),
		Chat:      &mockChat{},
		Analyzer:  &mockAnalyzer{},
		DesignAPI: &mockDesignAPI{},
		LLM:       &mockLLM{},
		History:   &mockHistory{},
		Config:    &mockConfigSaver{},
	})

	return func() {
		SetServices(prev)
	}
}

// mockRegistry implements driving.WatchRegistry.
type mockRegistry struct {
	files []domain.WatchedFile
}

func newMockRegistry() *mockRegistry {
	return &mockRegistry{
		files: []domain.WatchedFile{
			{FileKey: "abc123", Name: "Landing Page", LastVersion: "5", DocGenerated: true},
		},
	}
}

func (m *mockRegistry) Add(fileKey, name string) *domain.WatchedFile {
	watched := domain.WatchedFile{FileKey: fileKey, Name: name}
	m.files = append(m.files, watched)
	return &watched
}

func (m *mockRegistry) Remove(fileKey string) bool {
	for i := range m.files {
		if m.files[i].FileKey == fileKey {
			m.files = append(m.files[:i], m.files[i+1:]...)
			return true
		}
	}
	return false
}

func (m *mockRegistry) List() []domain.WatchedFile { return m.files }

func (m *mockRegistry) Get(fileKey string) (*domain.WatchedFile, error) {
	for i := range m.files {
		if m.files[i].FileKey == fileKey {
			return &m.files[i], nil
		}
	}
	return nil, domain.ErrNotWatched
}

func (m *mockRegistry) MarkGenerated(_ string) {}

// mockPoller implements driving.ChangePoller.
type mockPoller struct {
	running bool
}

func (m *mockPoller) Start() bool {
	if m.running {
		return false
	}
	m.running = true
	return true
}

func (m *mockPoller) Stop()           { m.running = false }
func (m *mockPoller) IsRunning() bool { return m.running }

func (m *mockPoller) CheckFile(_ context.Context, _ string) (*domain.FileChangeEvent, error) {
	return nil, nil
}

func (m *mockPoller) CheckAll(_ context.Context) []domain.FileChangeEvent {
	return []domain.FileChangeEvent{
		{FileKey: "abc123", FileName: "Landing Page", OldVersion: "5", NewVersion: "6"},
	}
}

func (m *mockPoller) OnChange(_ func(domain.FileChangeEvent)) {}

func (m *mockPoller) Events() <-chan domain.FileChangeEvent { return nil }

// mockGenerator implements driving.DocGenerator.
type mockGenerator struct {
	metas []driven.DocMeta
}

func newMockGenerator() *mockGenerator {
	return &mockGenerator{
		metas: []driven.DocMeta{
			{
				ID:         "doc-1",
				SourceKey:  "abc123",
				SourceName: "Landing Page",
				Title:      "Landing Page Documentation",
				DocType:    "both",
				CreatedAt:  "2026-08-29T10:00:00Z",
				Sections:   []driven.DocMetaSection{{ID: "s1", Title: "Overview", Order: 0}},
			},
		},
	}
}

func (m *mockGenerator) Generate(_ context.Context, fileKey string, docType domain.DocType, _ []domain.DocFormat) (*domain.Documentation, error) {
	return &domain.Documentation{
		ID:         "doc-1",
		SourceKey:  fileKey,
		SourceName: "Landing Page",
		Title:      "Landing Page Documentation",
		DocType:    docType,
		Sections:   []domain.DocSection{{ID: "s1", Title: "Overview"}},
	}, nil
}

func (m *mockGenerator) Update(ctx context.Context, fileKey string, docType domain.DocType) (*domain.Documentation, error) {
	return m.Generate(ctx, fileKey, docType, nil)
}

func (m *mockGenerator) List(_ context.Context) ([]driven.DocMeta, error) {
	return m.metas, nil
}

func (m *mockGenerator) Get(_ context.Context, id string) (*driven.DocMeta, error) {
	for i := range m.metas {
		if m.metas[i].ID == id {
			return &m.metas[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockGenerator) Content(_ context.Context, _ string, _ domain.DocFormat) (string, error) {
	return "# Landing Page\n\nOverview.", nil
}

// mockChat implements driving.ChatService.
type mockChat struct{}

func (m *mockChat) Ask(_ context.Context, _, _ string, _ []domain.ChatMessage) (*domain.ChatResponse, error) {
	return &domain.ChatResponse{
		Message: "The landing page has two frames.",
		Sources: []string{"Landing Page"},
	}, nil
}

// mockAnalyzer implements driving.CodeAnalyzer.
type mockAnalyzer struct{}

func (m *mockAnalyzer) AnalyzeDir(_ context.Context, _ string) (map[string]string, error) {
	return map[string]string{"main.go": "# main.go\n\nEntry point."}, nil
}

func (m *mockAnalyzer) AnalyzeRepo(_ context.Context, _, _ string) (map[string]string, error) {
	return map[string]string{"app.py": "# app.py\n\nFlask app."}, nil
}

// mockDesignAPI implements driven.DesignAPI.
type mockDesignAPI struct{}

func (m *mockDesignAPI) Me(_ context.Context) (*domain.DesignUser, error) {
	return &domain.DesignUser{ID: "user-1", Handle: "designer"}, nil
}

func (m *mockDesignAPI) FileMeta(_ context.Context, fileKey string) (*domain.FileMeta, error) {
	return &domain.FileMeta{Key: fileKey, Name: "Landing Page", Version: "5", LastModified: time.Now()}, nil
}

func (m *mockDesignAPI) File(_ context.Context, fileKey string) (*domain.DesignFile, error) {
	return &domain.DesignFile{Key: fileKey, Name: "Landing Page"}, nil
}

func (m *mockDesignAPI) FileVersions(_ context.Context, _ string, _ int) ([]domain.DesignVersion, error) {
	return []domain.DesignVersion{{ID: "6", Label: "Revision"}}, nil
}

func (m *mockDesignAPI) TeamProjects(_ context.Context, _ string) ([]domain.Project, error) {
	return []domain.Project{{ID: "1", Name: "Website"}}, nil
}

func (m *mockDesignAPI) ProjectFiles(_ context.Context, _ string) ([]domain.ProjectFile, error) {
	return []domain.ProjectFile{{Key: "abc123", Name: "Landing Page"}}, nil
}

func (m *mockDesignAPI) RenderImages(_ context.Context, _ string, _ []string, _ string, _ float64) (map[string]string, error) {
	return map[string]string{}, nil
}

func (m *mockDesignAPI) DownloadImages(_ context.Context, _ string, _ []string, _ string, _ float64) (map[string][]byte, error) {
	return map[string][]byte{}, nil
}

// mockLLM implements driven.LLMService.
type mockLLM struct{}

func (m *mockLLM) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	return "generated", nil
}

func (m *mockLLM) GenerateWithImages(_ context.Context, _ string, _ [][]byte, _ driven.GenerateOptions) (string, error) {
	return "generated", nil
}

func (m *mockLLM) Chat(_ context.Context, _ []domain.ChatMessage, _ driven.GenerateOptions) (string, error) {
	return "reply", nil
}

func (m *mockLLM) ListModels(_ context.Context) ([]driven.ModelInfo, error) {
	return []driven.ModelInfo{{Name: "gemma3:27b", Size: 17_000_000_000}}, nil
}

func (m *mockLLM) PullModel(_ context.Context, _ string) error { return nil }

func (m *mockLLM) ModelExists(_ context.Context, name string) (bool, error) {
	return name == "gemma3:27b", nil
}

func (m *mockLLM) Ping(_ context.Context) error { return nil }

// mockHistory implements driven.PollHistoryStore.
type mockHistory struct{}

func (m *mockHistory) Record(_ context.Context, _ *domain.PollRecord) error { return nil }

func (m *mockHistory) History(_ context.Context, _ string, _ int) ([]domain.PollRecord, error) {
	return []domain.PollRecord{
		{
			ID:         1,
			FileKey:    "abc123",
			Changed:    true,
			OldVersion: "5",
			NewVersion: "6",
			CheckedAt:  time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
		},
	}, nil
}

func (m *mockHistory) Prune(_ context.Context, _ int) error { return nil }
func (m *mockHistory) Close() error                         { return nil }

// mockConfigSaver implements ConfigSaver.
type mockConfigSaver struct {
	token   string
	added   []string
	removed []string
}

func (m *mockConfigSaver) SetToken(token string) error {
	m.token = token
	return nil
}

func (m *mockConfigSaver) AddWatchedFile(fileKey, _ string) error {
	m.added = append(m.added, fileKey)
	return nil
}

func (m *mockConfigSaver) RemoveWatchedFile(fileKey string) error {
	m.removed = append(m.removed, fileKey)
	return nil
}
