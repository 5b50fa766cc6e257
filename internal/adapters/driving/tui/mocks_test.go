package tui

import (
	"context"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
)

// MockRegistry is a mock watch registry for testing.
type MockRegistry struct {
	Watched []domain.WatchedFile
}

func (m *MockRegistry) Add(fileKey, name string) *domain.WatchedFile {
	return &domain.WatchedFile{FileKey: fileKey, Name: name}
}

func (m *MockRegistry) Remove(_ string) bool { return false }

func (m *MockRegistry) List() []domain.WatchedFile { return m.Watched }

func (m *MockRegistry) Get(fileKey string) (*domain.WatchedFile, error) {
	for i := range m.Watched {
		if m.Watched[i].FileKey == fileKey {
			return &m.Watched[i], nil
		}
	}
	return nil, domain.ErrNotWatched
}

func (m *MockRegistry) MarkGenerated(_ string) {}

// MockPoller is a mock change poller for testing.
type MockPoller struct {
	EventList []domain.FileChangeEvent
	Stream    chan domain.FileChangeEvent
}

func (m *MockPoller) Start() bool     { return true }
func (m *MockPoller) Stop()           {}
func (m *MockPoller) IsRunning() bool { return false }

func (m *MockPoller) CheckFile(_ context.Context, _ string) (*domain.FileChangeEvent, error) {
	if len(m.EventList) == 0 {
		return nil, nil
	}
	return &m.EventList[0], nil
}

func (m *MockPoller) CheckAll(_ context.Context) []domain.FileChangeEvent {
	return m.EventList
}

func (m *MockPoller) OnChange(_ func(domain.FileChangeEvent)) {}

func (m *MockPoller) Events() <-chan domain.FileChangeEvent { return m.Stream }

// MockGenerator is a mock doc generator for testing.
type MockGenerator struct {
	Doc      *domain.Documentation
	Metas    []driven.DocMeta
	Markdown string
	Err      error
}

func (m *MockGenerator) Generate(_ context.Context, fileKey string, docType domain.DocType, _ []domain.DocFormat) (*domain.Documentation, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Doc == nil {
		return &domain.Documentation{SourceKey: fileKey, DocType: docType}, nil
	}
	return m.Doc, nil
}

func (m *MockGenerator) Update(ctx context.Context, fileKey string, docType domain.DocType) (*domain.Documentation, error) {
	return m.Generate(ctx, fileKey, docType, nil)
}

func (m *MockGenerator) List(_ context.Context) ([]driven.DocMeta, error) {
	return m.Metas, m.Err
}

func (m *MockGenerator) Get(_ context.Context, id string) (*driven.DocMeta, error) {
	for i := range m.Metas {
		if m.Metas[i].ID == id {
			return &m.Metas[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockGenerator) Content(_ context.Context, _ string, _ domain.DocFormat) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Markdown, nil
}
