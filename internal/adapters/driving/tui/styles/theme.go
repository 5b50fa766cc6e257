// Package styles provides the colour theme and lipgloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette. Primary and Secondary follow the Figma
// brand colours; the rest is a dark neutral scale.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#F24E1E"), // Figma orange
		Secondary:  lipgloss.Color("#1ABCFE"), // Figma blue
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
	}
}

// Styles contains the pre-configured lipgloss styles the views render
// with.
type Styles struct {
	theme *Theme

	// Title and Subtitle head each view.
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Normal and Muted are the two body text weights.
	Normal lipgloss.Style
	Muted  lipgloss.Style

	// Selected highlights the cursor row in list views.
	Selected lipgloss.Style

	// Error and Success style status lines.
	Error   lipgloss.Style
	Success lipgloss.Style

	// ChangedMark flags a watched file with an unconsumed change;
	// GeneratedMark flags one whose documentation is current.
	ChangedMark   lipgloss.Style
	GeneratedMark lipgloss.Style

	// InputField frames the chat question input.
	InputField lipgloss.Style

	// Help styles the key-binding footer.
	Help lipgloss.Style
}

// NewStyles creates styles from a theme. A nil theme selects the
// default.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		ChangedMark: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Warning),

		GeneratedMark: lipgloss.NewStyle().
			Foreground(theme.Success),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
