// Package watched provides the watched files view component for the TUI.
package watched

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driving/tui/messages"
	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driving/tui/styles"
	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driving"
)

// View is the watched files view.
type View struct {
	styles    *styles.Styles
	registry  driving.WatchRegistry
	poller    driving.ChangePoller
	generator driving.DocGenerator

	files        []domain.WatchedFile
	changed      map[string]string // file key -> new version from last check
	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	checking     bool
	generating   bool
	status       string
}

// NewView creates a new watched files view.
func NewView(
	s *styles.Styles,
	registry driving.WatchRegistry,
	poller driving.ChangePoller,
	generator driving.DocGenerator,
) *View {
	return &View{
		styles:    s,
		registry:  registry,
		poller:    poller,
		generator: generator,
		changed:   map[string]string{},
	}
}

// Init initialises the view and loads the watched file list.
func (v *View) Init() tea.Cmd {
	return v.loadWatched()
}

// loadWatched returns a command that loads the watched files.
func (v *View) loadWatched() tea.Cmd {
	return func() tea.Msg {
		if v.registry == nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("watch registry not available")}
		}
		return messages.WatchedLoaded{Files: v.registry.List()}
	}
}

// checkAll returns a command that checks every watched file now.
func (v *View) checkAll() tea.Cmd {
	return func() tea.Msg {
		if v.poller == nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("change poller not available")}
		}
		return messages.ChangesChecked{Events: v.poller.CheckAll(context.Background())}
	}
}

// generateDocs returns a command that generates documentation for a file.
func (v *View) generateDocs(fileKey string) tea.Cmd {
	return func() tea.Msg {
		if v.generator == nil {
			return messages.GenerationCompleted{FileKey: fileKey, Err: fmt.Errorf("doc generator not available")}
		}

		doc, err := v.generator.Generate(context.Background(), fileKey, domain.DocTypeBoth, nil)
		if err != nil {
			return messages.GenerationCompleted{FileKey: fileKey, Err: err}
		}
		if v.registry != nil {
			v.registry.MarkGenerated(fileKey)
		}
		return messages.GenerationCompleted{FileKey: fileKey, Title: doc.Title}
	}
}

// Update handles messages for the watched files view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.WatchedLoaded:
		v.files = msg.Files
		if v.selected >= len(v.files) {
			v.selected = 0
		}
		v.err = nil
		return v, nil

	case messages.ChangesChecked:
		v.checking = false
		for _, event := range msg.Events {
			v.changed[event.FileKey] = event.NewVersion
		}
		if len(msg.Events) == 0 {
			v.status = "No changes detected"
		} else {
			v.status = fmt.Sprintf("%d file(s) changed", len(msg.Events))
		}
		// Reload to pick up updated versions
		return v, v.loadWatched()

	case messages.ChangeObserved:
		v.changed[msg.Event.FileKey] = msg.Event.NewVersion
		return v, v.loadWatched()

	case messages.GenerationCompleted:
		v.generating = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.status = fmt.Sprintf("Generated %q", msg.Title)
			delete(v.changed, msg.FileKey)
		}
		return v, v.loadWatched()

	case messages.ErrorOccurred:
		v.checking = false
		v.generating = false
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.files)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "c":
		if !v.checking {
			v.checking = true
			v.status = ""
			v.err = nil
			return v, v.checkAll()
		}
	case "g", "enter":
		if !v.generating && v.selected < len(v.files) {
			v.generating = true
			v.status = ""
			v.err = nil
			return v, v.generateDocs(v.files[v.selected].FileKey)
		}
	case "r":
		return v, v.loadWatched()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

// adjustScroll adjusts the scroll offset to keep the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of items that can be displayed.
func (v *View) visibleItemCount() int {
	reserved := 8
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the watched files view.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Watched Files (%d)", len(v.files))
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.checking {
		b.WriteString(v.styles.Muted.Render("Checking for changes..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.generating {
		b.WriteString(v.styles.Muted.Render("Generating documentation..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if len(v.files) == 0 {
		b.WriteString(v.styles.Muted.Render("No files are being watched. Use `designdocs watch add` to add one."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.files) && i < v.scrollOffset+visibleItems; i++ {
		b.WriteString(v.renderFile(i, &v.files[i]))
		b.WriteString("\n")
	}

	if len(v.files) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.files)),
			len(v.files))))
	}

	if v.status != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.status))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderFile renders a single watched file line.
func (v *View) renderFile(index int, file *domain.WatchedFile) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	name := file.Name
	if name == "" {
		name = file.FileKey
	}

	version := file.LastVersion
	if version == "" {
		version = "-"
	}

	marker := " "
	if _, ok := v.changed[file.FileKey]; ok {
		marker = v.styles.ChangedMark.Render("*")
	} else if file.DocGenerated {
		marker = v.styles.GeneratedMark.Render("✓")
	}

	line := fmt.Sprintf("%-30s  v%-8s  %s", name, version, file.FileKey)

	if index == v.selected {
		return indicator + marker + " " + v.styles.Selected.Render(line)
	}
	return indicator + marker + " " + v.styles.Normal.Render(line)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [c] check changes  [g] generate docs  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Files returns the current watched file list.
func (v *View) Files() []domain.WatchedFile {
	return v.files
}

// SelectedIndex returns the currently selected index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
