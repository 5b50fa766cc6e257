package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driving/tui/messages"
	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driving/tui/styles"
	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driving/tui/views/chat"
	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driving/tui/views/doccontent"
	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driving/tui/views/docs"
	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driving/tui/views/menu"
	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driving/tui/views/watched"
	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// watchedView is the watched files view component.
	watchedView *watched.View

	// docsView is the documentation list view component.
	docsView *docs.View

	// docContentView is the document content view component.
	docContentView *doccontent.View

	// chatView is the documentation Q&A view component.
	chatView *chat.View

	// events is the poller's change event stream, nil when the poller
	// is not running.
	events <-chan domain.FileChangeEvent

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		menuView:       menu.NewView(s),
		watchedView:    watched.NewView(s, ports.Registry, ports.Poller, ports.Generator),
		docsView:       docs.NewView(s, ports.Generator),
		docContentView: doccontent.NewView(s, ports.Generator),
		chatView:       chat.NewView(s, ports.Chat),
		events:         ports.Poller.Events(),
		currentView:    messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("designdocs - Design File Documentation"),
		a.waitForChange(),
	)
}

// waitForChange returns a command that blocks on the poller's event
// stream and converts each event into a message. Re-armed after every
// delivery.
func (a *App) waitForChange() tea.Cmd {
	if a.events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-a.events
		if !ok {
			return nil
		}
		return messages.ChangeObserved{Event: event}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.watchedView.SetDimensions(msg.Width, msg.Height)
		a.docsView.SetDimensions(msg.Width, msg.Height)
		a.docContentView.SetDimensions(msg.Width, msg.Height)
		a.chatView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewWatched:
			a.watchedView, cmd = a.watchedView.Update(msg)
			return a, cmd

		case messages.ViewDocs:
			a.docsView, cmd = a.docsView.Update(msg)
			return a, cmd

		case messages.ViewDocContent:
			a.docContentView, cmd = a.docContentView.Update(msg)
			return a, cmd

		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewWatched:
			return a, a.watchedView.Init()
		case messages.ViewDocs:
			return a, a.docsView.Init()
		case messages.ViewChat:
			return a, a.chatView.Init()
		case messages.ViewMenu, messages.ViewDocContent, messages.ViewHelp:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.DocSelected:
		a.currentView = messages.ViewDocContent
		doc := msg.Doc
		return a, a.docContentView.SetDoc(&doc)

	case messages.ChangeObserved:
		// Forward to the watched view and re-arm the listener
		a.watchedView, cmd = a.watchedView.Update(msg)
		return a, tea.Batch(cmd, a.waitForChange())

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewWatched:
			a.watchedView, cmd = a.watchedView.Update(msg)
		case messages.ViewDocs:
			a.docsView, cmd = a.docsView.Update(msg)
		case messages.ViewDocContent:
			a.docContentView, cmd = a.docContentView.Update(msg)
		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
			// Other views don't handle error messages
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewWatched:
		a.watchedView, cmd = a.watchedView.Update(msg)
	case messages.ViewDocs:
		a.docsView, cmd = a.docsView.Update(msg)
	case messages.ViewDocContent:
		a.docContentView, cmd = a.docContentView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewWatched:
		return a.watchedView.View()
	case messages.ViewDocs:
		return a.docsView.View()
	case messages.ViewDocContent:
		return a.docContentView.View()
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Watched Files:
  j/k, ↑/↓    Navigate files
  c           Check all files for changes
  g, enter    Generate documentation
  r           Reload
  esc         Back to Menu

Documentation:
  j/k, ↑/↓    Navigate documents
  enter       View content
  esc         Back to Menu

Chat:
  enter       Ask a question
  esc         Back to Menu

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.watchedView.SetDimensions(width, height)
	a.docsView.SetDimensions(width, height)
	a.docContentView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
}
