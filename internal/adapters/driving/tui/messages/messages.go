// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewWatched is the watched files view.
	ViewWatched
	// ViewDocs lists generated documentation.
	ViewDocs
	// ViewDocContent shows one document's markdown.
	ViewDocContent
	// ViewChat is the documentation Q&A view.
	ViewChat
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewWatched:
		return "watched"
	case ViewDocs:
		return "docs"
	case ViewDocContent:
		return "doc_content"
	case ViewChat:
		return "chat"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// WatchedLoaded carries the watched file list from the registry.
type WatchedLoaded struct {
	Files []domain.WatchedFile
}

// ChangesChecked carries the result of an on-demand change check.
type ChangesChecked struct {
	Events []domain.FileChangeEvent
}

// ChangeObserved carries a single change event from the poller stream.
type ChangeObserved struct {
	Event domain.FileChangeEvent
}

// GenerationCompleted signals that documentation generation finished.
type GenerationCompleted struct {
	FileKey string
	Title   string
	Err     error
}

// DocsLoaded carries the generated documentation list.
type DocsLoaded struct {
	Docs []driven.DocMeta
	Err  error
}

// DocSelected signals a document was selected for viewing.
type DocSelected struct {
	Doc driven.DocMeta
}

// DocContentLoaded carries the markdown content for a document.
type DocContentLoaded struct {
	SourceKey string
	Content   string
	Err       error
}

// AnswerReceived carries a chat answer back to the chat view.
type AnswerReceived struct {
	Question string
	Answer   string
	Sources  []string
	Err      error
}
