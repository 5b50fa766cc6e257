package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var pollerCmd = &cobra.Command{
	Use:   "poller",
	Short: "Control the change polling loop",
}

var pollerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the polling loop in the foreground",
	Long: `Starts the change polling loop and blocks until interrupted.
Detected changes regenerate documentation when auto-generation is
enabled in the configuration.`,
	Args: cobra.NoArgs,
	RunE: runPollerStart,
}

var pollerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show poller status",
	Args:  cobra.NoArgs,
	RunE:  runPollerStatus,
}

var pollerHistoryCmd = &cobra.Command{
	Use:   "history [file-key]",
	Short: "Show recent poll results",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPollerHistory,
}

// historyLimit is the --limit flag for poller history.
var historyLimit int

func init() {
	pollerHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Maximum records to show")

	pollerCmd.AddCommand(pollerStartCmd)
	pollerCmd.AddCommand(pollerStatusCmd)
	pollerCmd.AddCommand(pollerHistoryCmd)
	rootCmd.AddCommand(pollerCmd)
}

func runPollerStart(cmd *cobra.Command, _ []string) error {
	if changePoller == nil {
		return errors.New("change poller not configured")
	}

	if !changePoller.Start() {
		cmd.Println("Poller is already running")
		return nil
	}
	defer changePoller.Stop()

	cmd.Println("Polling for changes (Ctrl+C to stop)")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	cmd.Println("\nStopping poller")
	return nil
}

func runPollerStatus(cmd *cobra.Command, _ []string) error {
	if changePoller == nil {
		return errors.New("change poller not configured")
	}

	if changePoller.IsRunning() {
		cmd.Println("Poller: running")
	} else {
		cmd.Println("Poller: stopped")
	}
	if watchRegistry != nil {
		cmd.Printf("Watched files: %d\n", len(watchRegistry.List()))
	}
	return nil
}

func runPollerHistory(cmd *cobra.Command, args []string) error {
	if pollHistory == nil {
		return errors.New("poll history store not configured")
	}

	fileKey := ""
	if len(args) == 1 {
		fileKey = args[0]
	}

	records, err := pollHistory.History(context.Background(), fileKey, historyLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		cmd.Println("No poll history")
		return nil
	}

	for _, rec := range records {
		status := "unchanged"
		switch {
		case rec.Error != "":
			status = "error: " + rec.Error
		case rec.Changed:
			status = "changed " + rec.OldVersion + " -> " + rec.NewVersion
		}
		cmd.Printf("%s  %s  %s\n", rec.CheckedAt.Format("2006-01-02 15:04:05"), rec.FileKey, status)
	}
	return nil
}
