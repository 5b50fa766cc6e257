// Package docs provides the generated documentation list view for the TUI.
package docs

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driving/tui/messages"
	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driving/tui/styles"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driving"
)

// View is the documentation list view.
type View struct {
	styles    *styles.Styles
	generator driving.DocGenerator

	docs         []driven.DocMeta
	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
}

// NewView creates a new documentation list view.
func NewView(s *styles.Styles, generator driving.DocGenerator) *View {
	return &View{
		styles:    s,
		generator: generator,
	}
}

// Init initialises the view and loads the documentation list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadDocs()
}

// loadDocs returns a command that loads the documentation list.
func (v *View) loadDocs() tea.Cmd {
	return func() tea.Msg {
		if v.generator == nil {
			return messages.DocsLoaded{Err: fmt.Errorf("doc generator not available")}
		}

		metas, err := v.generator.List(context.Background())
		return messages.DocsLoaded{Docs: metas, Err: err}
	}
}

// Update handles messages for the documentation list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.docs = msg.Docs
			v.err = nil
			if v.selected >= len(v.docs) {
				v.selected = 0
			}
		}
		return v, nil

	case messages.ErrorOccurred:
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
		if v.selected < len(v.docs)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if v.selected < len(v.docs) {
			doc := v.docs[v.selected]
			return v, func() tea.Msg {
				return messages.DocSelected{Doc: doc}
			}
		}
	case "r":
		v.loading = true
		return v, v.loadDocs()
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

// View renders the documentation list view.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Documentation (%d)", len(v.docs))
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading documentation..."))
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

	if len(v.docs) == 0 {
		b.WriteString(v.styles.Muted.Render("No documentation generated yet."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.docs) && i < v.scrollOffset+visibleItems; i++ {
		b.WriteString(v.renderDoc(i, &v.docs[i]))
		b.WriteString("\n")
	}

	if len(v.docs) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.docs)),
			len(v.docs))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderDoc renders a single documentation line.
func (v *View) renderDoc(index int, doc *driven.DocMeta) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	title := doc.Title
	if title == "" {
		title = doc.ID
	}

	maxTitleLen := v.width/2 - 4
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %-6s  %s", indicator, maxTitleLen, title, doc.DocType, doc.CreatedAt))
	}

	return v.styles.Normal.Render(indicator) +
		v.styles.Normal.Render(fmt.Sprintf("%-*s  %-6s  ", maxTitleLen, title, doc.DocType)) +
		v.styles.Muted.Render(doc.CreatedAt)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] view  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Docs returns the current documentation list.
func (v *View) Docs() []driven.DocMeta {
	return v.docs
}

// SelectedIndex returns the currently selected index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedDoc returns the currently selected document.
func (v *View) SelectedDoc() *driven.DocMeta {
	if v.selected < len(v.docs) {
		return &v.docs[v.selected]
	}
	return nil
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
