package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Manage watched design files",
	Long:  `Add, remove, and list the design files tracked for changes.`,
}

var watchAddCmd = &cobra.Command{
	Use:   "add [file-key]",
	Short: "Start watching a design file",
	Long: `Registers a design file for change polling. The file's display name
is fetched from the design API unless --name is given. Re-adding an
already watched file resets its stored version state.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatchAdd,
}

var watchRemoveCmd = &cobra.Command{
	Use:   "remove [file-key]",
	Short: "Stop watching a design file",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchRemove,
}

var watchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List watched design files",
	Args:  cobra.NoArgs,
	RunE:  runWatchList,
}

var watchCheckCmd = &cobra.Command{
	Use:   "check [file-key]",
	Short: "Check watched files for changes now",
	Long: `Runs an immediate change check. With a file key, checks that file;
without, checks every watched file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatchCheck,
}

// watchName is the --name flag for watch add.
var watchName string

func init() {
	watchAddCmd.Flags().StringVarP(&watchName, "name", "n", "", "Display name for the file")

	watchCmd.AddCommand(watchAddCmd)
	watchCmd.AddCommand(watchRemoveCmd)
	watchCmd.AddCommand(watchListCmd)
	watchCmd.AddCommand(watchCheckCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatchAdd(cmd *cobra.Command, args []string) error {
	if watchRegistry == nil {
		return errors.New("watch registry not configured")
	}

	fileKey := args[0]
	name := watchName

	if name == "" && designAPI != nil {
		meta, err := designAPI.FileMeta(context.Background(), fileKey)
		if err != nil {
			return fmt.Errorf("failed to fetch file info: %w", err)
		}
		name = meta.Name
	}
	if name == "" {
		name = fileKey
	}

	watched := watchRegistry.Add(fileKey, name)
	if configSaver != nil {
		if err := configSaver.AddWatchedFile(fileKey, name); err != nil {
			return fmt.Errorf("failed to persist watch entry: %w", err)
		}
	}

	cmd.Printf("Watching %s (%s)\n", watched.Name, watched.FileKey)
	return nil
}

func runWatchRemove(cmd *cobra.Command, args []string) error {
	if watchRegistry == nil {
		return errors.New("watch registry not configured")
	}

	fileKey := args[0]
	if !watchRegistry.Remove(fileKey) {
		cmd.Printf("File is not being watched: %s\n", fileKey)
		return nil
	}
	if configSaver != nil {
		if err := configSaver.RemoveWatchedFile(fileKey); err != nil {
			return fmt.Errorf("failed to remove persisted watch entry: %w", err)
		}
	}

	cmd.Printf("Stopped watching %s\n", fileKey)
	return nil
}

func runWatchList(cmd *cobra.Command, _ []string) error {
	if watchRegistry == nil {
		return errors.New("watch registry not configured")
	}

	files := watchRegistry.List()
	if len(files) == 0 {
		cmd.Println("No files are being watched")
		return nil
	}

	cmd.Printf("Watched files:\n\n")
	for _, f := range files {
		cmd.Printf("  %s\n", f.FileKey)
		cmd.Printf("    Name:    %s\n", f.Name)
		if f.LastVersion != "" {
			cmd.Printf("    Version: %s\n", f.LastVersion)
		}
		if !f.LastChecked.IsZero() {
			cmd.Printf("    Checked: %s\n", f.LastChecked.Format("2006-01-02 15:04:05"))
		}
		if f.DocGenerated {
			cmd.Printf("    Docs:    generated\n")
		}
		cmd.Println()
	}
	cmd.Printf("Total: %d files\n", len(files))
	return nil
}

func runWatchCheck(cmd *cobra.Command, args []string) error {
	if changePoller == nil {
		return errors.New("change poller not configured")
	}

	ctx := context.Background()

	if len(args) == 1 {
		event, err := changePoller.CheckFile(ctx, args[0])
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		if event == nil {
			cmd.Println("No changes detected")
			return nil
		}
		cmd.Printf("Change detected: %s %q -> %q\n", event.FileName, event.OldVersion, event.NewVersion)
		return nil
	}

	events := changePoller.CheckAll(ctx)
	if len(events) == 0 {
		cmd.Println("No changes detected")
		return nil
	}
	for _, event := range events {
		cmd.Printf("Change detected: %s %q -> %q\n", event.FileName, event.OldVersion, event.NewVersion)
	}
	return nil
}
