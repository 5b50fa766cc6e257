package services

import (
	"context"
	"sync"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
)

// --- Shared mock implementations for service tests ---

// mockDesignAPI implements driven.DesignAPI with canned responses.
type mockDesignAPI struct {
	mu sync.Mutex

	meta    map[string]*domain.FileMeta
	metaErr error

	file    *domain.DesignFile
	fileErr error

	metaCalls int
	fileCalls int
}

func newMockDesignAPI() *mockDesignAPI {
	return &mockDesignAPI{meta: make(map[string]*domain.FileMeta)}
}

func (m *mockDesignAPI) setMeta(meta domain.FileMeta) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta[meta.Key] = &meta
}

func (m *mockDesignAPI) Me(_ context.Context) (*domain.DesignUser, error) {
	return &domain.DesignUser{ID: "u1", Handle: "tester"}, nil
}

func (m *mockDesignAPI) FileMeta(_ context.Context, fileKey string) (*domain.FileMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metaCalls++
	if m.metaErr != nil {
		return nil, m.metaErr
	}
	meta, ok := m.meta[fileKey]
	if !ok {
		return nil, domain.ErrFileNotFound
	}
	metaCopy := *meta
	return &metaCopy, nil
}

func (m *mockDesignAPI) File(_ context.Context, fileKey string) (*domain.DesignFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fileCalls++
	if m.fileErr != nil {
		return nil, m.fileErr
	}
	if m.file == nil {
		return nil, domain.ErrFileNotFound
	}
	fileCopy := *m.file
	fileCopy.Key = fileKey
	return &fileCopy, nil
}

func (m *mockDesignAPI) FileVersions(_ context.Context, _ string, _ int) ([]domain.DesignVersion, error) {
	return nil, nil
}

func (m *mockDesignAPI) TeamProjects(_ context.Context, _ string) ([]domain.Project, error) {
	return nil, nil
}

func (m *mockDesignAPI) ProjectFiles(_ context.Context, _ string) ([]domain.ProjectFile, error) {
	return nil, nil
}

func (m *mockDesignAPI) RenderImages(_ context.Context, _ string, _ []string, _ string, _ float64) (map[string]string, error) {
	return nil, nil
}

func (m *mockDesignAPI) DownloadImages(_ context.Context, _ string, _ []string, _ string, _ float64) (map[string][]byte, error) {
	return nil, nil
}

// mockLLM implements driven.LLMService.
type mockLLM struct {
	mu          sync.Mutex
	response    string
	err         error
	prompts     []string
	lastOptions driven.GenerateOptions
	models      []driven.ModelInfo
	pulled      []string
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.lastOptions = opts
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) GenerateWithImages(ctx context.Context, prompt string, _ [][]byte, opts driven.GenerateOptions) (string, error) {
	return m.Generate(ctx, prompt, opts)
}

func (m *mockLLM) Chat(_ context.Context, _ []domain.ChatMessage, _ driven.GenerateOptions) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) ListModels(_ context.Context) ([]driven.ModelInfo, error) {
	return m.models, m.err
}

func (m *mockLLM) PullModel(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pulled = append(m.pulled, name)
	return m.err
}

func (m *mockLLM) ModelExists(_ context.Context, name string) (bool, error) {
	for _, info := range m.models {
		if info.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLLM) Ping(_ context.Context) error { return m.err }

// mockArtifactStore implements driven.ArtifactStore in memory.
type mockArtifactStore struct {
	mu       sync.Mutex
	saved    []savedDoc
	saveErr  error
	metas    []driven.DocMeta
	markdown map[string]string
}

type savedDoc struct {
	doc      domain.Documentation
	markdown string
	formats  []domain.DocFormat
}

func newMockArtifactStore() *mockArtifactStore {
	return &mockArtifactStore{markdown: make(map[string]string)}
}

func (m *mockArtifactStore) Save(_ context.Context, doc *domain.Documentation, markdown string, formats []domain.DocFormat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, savedDoc{doc: *doc, markdown: markdown, formats: formats})
	return nil
}

func (m *mockArtifactStore) List(_ context.Context) ([]driven.DocMeta, error) {
	return m.metas, nil
}

func (m *mockArtifactStore) Get(_ context.Context, id string) (*driven.DocMeta, error) {
	for i := range m.metas {
		if m.metas[i].ID == id {
			meta := m.metas[i]
			return &meta, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockArtifactStore) Content(_ context.Context, sourceKey string, _ domain.DocFormat) (string, error) {
	if content, ok := m.markdown[sourceKey]; ok {
		return content, nil
	}
	return "", domain.ErrNotFound
}

func (m *mockArtifactStore) MarkdownByKey(_ context.Context, sourceKey string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make(map[string]string)
	for name, content := range m.markdown {
		if sourceKey == "" || name == sourceKey {
			result[name] = content
		}
	}
	return result, nil
}

func (m *mockArtifactStore) Dir() string { return "" }

// mockPollStore implements driven.PollHistoryStore in memory.
type mockPollStore struct {
	mu      sync.Mutex
	records []domain.PollRecord
	err     error
}

func (m *mockPollStore) Record(_ context.Context, rec *domain.PollRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockPollStore) History(_ context.Context, fileKey string, limit int) ([]domain.PollRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.PollRecord
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		if fileKey == "" || m.records[i].FileKey == fileKey {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

func (m *mockPollStore) Prune(_ context.Context, _ int) error { return nil }

func (m *mockPollStore) Close() error { return nil }

func (m *mockPollStore) all() []domain.PollRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.PollRecord, len(m.records))
	copy(out, m.records)
	return out
}
