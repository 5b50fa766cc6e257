package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for DesignDocs.

The TUI provides a visual interface for watching design files, checking
for changes, generating documentation and browsing the generated docs.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select
  Esc      - Back / Cancel
  ctrl+c   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Panic recovery to get stack traces out of the alt screen
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// The TUI is long-running, so background polling can run alongside it.
	if changePoller != nil && !changePoller.IsRunning() {
		changePoller.Start()
		defer changePoller.Stop()
	}

	ports := &tui.Ports{
		Registry:  watchRegistry,
		Poller:    changePoller,
		Generator: docGenerator,
		Chat:      chatService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
