package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Generate documentation for source code",
	Long: `Documents each source file in a local directory, or in a GitHub
repository with --github owner/repo. Results are written as one
markdown file per source file under the output directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

// Flags for analyze.
var (
	analyzeGitHub string
	analyzeSubdir string
	analyzeOut    string
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeGitHub, "github", "", "Analyze a GitHub repository (owner/repo)")
	analyzeCmd.Flags().StringVar(&analyzeSubdir, "dir", "", "Restrict repository analysis to a subdirectory")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "code_docs", "Output directory for generated docs")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if codeAnalyzer == nil {
		return errors.New("code analyzer not configured")
	}

	ctx := context.Background()

	var (
		results map[string]string
		err     error
	)
	switch {
	case analyzeGitHub != "":
		cmd.Printf("Analyzing repository %s...\n", analyzeGitHub)
		results, err = codeAnalyzer.AnalyzeRepo(ctx, analyzeGitHub, analyzeSubdir)
	case len(args) == 1:
		cmd.Printf("Analyzing %s...\n", args[0])
		results, err = codeAnalyzer.AnalyzeDir(ctx, args[0])
	default:
		return errors.New("provide a local path or --github owner/repo")
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if len(results) == 0 {
		cmd.Println("No source files matched")
		return nil
	}

	if err := os.MkdirAll(analyzeOut, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	paths := make([]string, 0, len(results))
	for path := range results {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		slug := domain.Slugify(strings.ReplaceAll(path, string(filepath.Separator), "_"))
		outPath := filepath.Join(analyzeOut, slug+".md")
		if err := os.WriteFile(outPath, []byte(results[path]), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		cmd.Printf("  %s -> %s\n", path, outPath)
	}

	cmd.Printf("Documented %d files\n", len(results))
	return nil
}
