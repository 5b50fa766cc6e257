package mcp

import (
	"context"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
)

// mockGenerator implements driving.DocGenerator.
type mockGenerator struct {
	doc     *domain.Documentation
	metas   []driven.DocMeta
	content string
	err     error
}

func (m *mockGenerator) Generate(_ context.Context, fileKey string, docType domain.DocType, _ []domain.DocFormat) (*domain.Documentation, error) {
	if m.err != nil {
		return nil, m.err
	}
	doc := *m.doc
	doc.SourceKey = fileKey
	doc.DocType = docType
	return &doc, nil
}

func (m *mockGenerator) Update(ctx context.Context, fileKey string, docType domain.DocType) (*domain.Documentation, error) {
	return m.Generate(ctx, fileKey, docType, nil)
}

func (m *mockGenerator) List(_ context.Context) ([]driven.DocMeta, error) {
	return m.metas, m.err
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
	if m.err != nil {
		return "", m.err
	}
	if m.content == "" {
		return "", domain.ErrNotFound
	}
	return m.content, nil
}

// mockChat implements driving.ChatService.
type mockChat struct {
	response *domain.ChatResponse
	err      error
}

func (m *mockChat) Ask(_ context.Context, _, _ string, _ []domain.ChatMessage) (*domain.ChatResponse, error) {
	return m.response, m.err
}

// mockPoller implements driving.ChangePoller.
type mockPoller struct {
	event  *domain.FileChangeEvent
	events []domain.FileChangeEvent
	err    error
}

func (m *mockPoller) Start() bool     { return true }
func (m *mockPoller) Stop()           {}
func (m *mockPoller) IsRunning() bool { return false }

func (m *mockPoller) CheckFile(_ context.Context, _ string) (*domain.FileChangeEvent, error) {
	return m.event, m.err
}

func (m *mockPoller) CheckAll(_ context.Context) []domain.FileChangeEvent {
	return m.events
}

func (m *mockPoller) OnChange(_ func(domain.FileChangeEvent)) {}

func (m *mockPoller) Events() <-chan domain.FileChangeEvent { return nil }

// mockRegistry implements driving.WatchRegistry.
type mockRegistry struct {
	watched []domain.WatchedFile
}

func (m *mockRegistry) Add(fileKey, name string) *domain.WatchedFile {
	return &domain.WatchedFile{FileKey: fileKey, Name: name}
}

func (m *mockRegistry) Remove(_ string) bool { return false }

func (m *mockRegistry) List() []domain.WatchedFile { return m.watched }

func (m *mockRegistry) Get(fileKey string) (*domain.WatchedFile, error) {
	for i := range m.watched {
		if m.watched[i].FileKey == fileKey {
			return &m.watched[i], nil
		}
	}
	return nil, domain.ErrNotWatched
}

func (m *mockRegistry) MarkGenerated(_ string) {}
