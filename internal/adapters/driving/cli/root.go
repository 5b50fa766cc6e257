// Package cli implements the command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driving"
	"github.com/designdocs-labs/designdocs-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands. Injected from main via SetServices;
// commands fail with a clear error when a needed service is absent.
var (
	watchRegistry driving.WatchRegistry
	changePoller  driving.ChangePoller
	docGenerator  driving.DocGenerator
	chatService   driving.ChatService
	codeAnalyzer  driving.CodeAnalyzer
	designAPI     driven.DesignAPI
	llmService    driven.LLMService
	pollHistory   driven.PollHistoryStore
	configSaver   ConfigSaver
)

// ConfigSaver persists configuration mutations made by commands
// (tokens, watched file lists).
type ConfigSaver interface {
	// SetToken stores the design API token.
	SetToken(token string) error

	// AddWatchedFile persists a watch entry so it survives restarts.
	AddWatchedFile(fileKey, name string) error

	// RemoveWatchedFile removes a persisted watch entry.
	RemoveWatchedFile(fileKey string) error
}

// Services bundles everything the CLI needs.
type Services struct {
	Registry  driving.WatchRegistry
	Poller    driving.ChangePoller
	Generator driving.DocGenerator
	Chat      driving.ChatService
	Analyzer  driving.CodeAnalyzer
	DesignAPI driven.DesignAPI
	LLM       driven.LLMService
	History   driven.PollHistoryStore
	Config    ConfigSaver
}

// SetServices injects the service implementations.
func SetServices(s Services) {
	watchRegistry = s.Registry
	changePoller = s.Poller
	docGenerator = s.Generator
	chatService = s.Chat
	codeAnalyzer = s.Analyzer
	designAPI = s.DesignAPI
	llmService = s.LLM
	pollHistory = s.History
	configSaver = s.Config
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "designdocs",
	Short: "Generate living documentation from design files",
	Long: `designdocs watches design files for changes, generates documentation
with a local LLM, and answers questions about the generated docs.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
