package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Browse design files on the design API",
}

var filesProjectsCmd = &cobra.Command{
	Use:   "projects [team-id]",
	Short: "List projects in a team",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilesProjects,
}

var filesListCmd = &cobra.Command{
	Use:   "list [project-id]",
	Short: "List files in a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilesList,
}

var filesVersionsCmd = &cobra.Command{
	Use:   "versions [file-key]",
	Short: "Show a file's version history",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilesVersions,
}

// versionsLimit is the --limit flag for files versions.
var versionsLimit int

func init() {
	filesVersionsCmd.Flags().IntVarP(&versionsLimit, "limit", "l", 10, "Maximum versions to show")

	filesCmd.AddCommand(filesProjectsCmd)
	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesVersionsCmd)
	rootCmd.AddCommand(filesCmd)
}

func runFilesProjects(cmd *cobra.Command, args []string) error {
	if designAPI == nil {
		return errors.New("design API not configured")
	}

	projects, err := designAPI.TeamProjects(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	if len(projects) == 0 {
		cmd.Println("No projects found")
		return nil
	}

	for _, project := range projects {
		cmd.Printf("%s  %s\n", project.ID, project.Name)
	}
	return nil
}

func runFilesList(cmd *cobra.Command, args []string) error {
	if designAPI == nil {
		return errors.New("design API not configured")
	}

	files, err := designAPI.ProjectFiles(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}
	if len(files) == 0 {
		cmd.Println("No files found")
		return nil
	}

	for _, file := range files {
		cmd.Printf("%s  %s", file.Key, file.Name)
		if file.LastModified != "" {
			cmd.Printf("  (modified %s)", file.LastModified)
		}
		cmd.Println()
	}
	return nil
}

func runFilesVersions(cmd *cobra.Command, args []string) error {
	if designAPI == nil {
		return errors.New("design API not configured")
	}

	versions, err := designAPI.FileVersions(context.Background(), args[0], versionsLimit)
	if err != nil {
		return fmt.Errorf("failed to list versions: %w", err)
	}
	if len(versions) == 0 {
		cmd.Println("No version history")
		return nil
	}

	for _, version := range versions {
		label := version.Label
		if label == "" {
			label = "(unlabelled)"
		}
		cmd.Printf("%s  %s  %s", version.ID, version.CreatedAt.Format("2006-01-02 15:04"), label)
		if version.User.Handle != "" {
			cmd.Printf("  by %s", version.User.Handle)
		}
		cmd.Println()
	}
	return nil
}
