package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Browse generated documentation",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated documentation",
	Args:  cobra.NoArgs,
	RunE:  runDocsList,
}

var docsGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show one document with its content",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsGet,
}

var docsContentCmd = &cobra.Command{
	Use:   "content [file-key]",
	Short: "Print the raw documentation for a design file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsContent,
}

// docsFormat is the --format flag for docs content.
var docsFormat string

func init() {
	docsContentCmd.Flags().StringVarP(&docsFormat, "format", "f", "markdown", "Output format: markdown or html")

	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsGetCmd)
	docsCmd.AddCommand(docsContentCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	if docGenerator == nil {
		return errors.New("documentation generator not configured")
	}

	metas, err := docGenerator.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documentation: %w", err)
	}
	if len(metas) == 0 {
		cmd.Println("No documentation generated yet")
		return nil
	}

	cmd.Printf("Generated documentation:\n\n")
	for _, meta := range metas {
		cmd.Printf("  %s\n", meta.ID)
		cmd.Printf("    Title:   %s\n", meta.Title)
		cmd.Printf("    Source:  %s (%s)\n", meta.SourceName, meta.SourceKey)
		cmd.Printf("    Type:    %s\n", meta.DocType)
		cmd.Printf("    Created: %s\n", meta.CreatedAt)
		cmd.Println()
	}
	cmd.Printf("Total: %d documents\n", len(metas))
	return nil
}

func runDocsGet(cmd *cobra.Command, args []string) error {
	if docGenerator == nil {
		return errors.New("documentation generator not configured")
	}

	meta, err := docGenerator.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get documentation: %w", err)
	}

	cmd.Printf("Document: %s\n\n", meta.ID)
	cmd.Printf("  Title:          %s\n", meta.Title)
	cmd.Printf("  Source:         %s (%s)\n", meta.SourceName, meta.SourceKey)
	cmd.Printf("  Type:           %s\n", meta.DocType)
	cmd.Printf("  Created:        %s\n", meta.CreatedAt)
	cmd.Printf("  Source version: %s\n", meta.SourceVersion)

	if len(meta.Sections) > 0 {
		cmd.Println("\n  Sections:")
		for _, section := range meta.Sections {
			cmd.Printf("    %d. %s\n", section.Order+1, section.Title)
		}
	}
	if meta.Content != "" {
		cmd.Printf("\n%s\n", meta.Content)
	}
	return nil
}

func runDocsContent(cmd *cobra.Command, args []string) error {
	if docGenerator == nil {
		return errors.New("documentation generator not configured")
	}

	format := domain.DocFormat(docsFormat)
	if !format.IsValid() {
		return fmt.Errorf("invalid format %q (want markdown or html)", docsFormat)
	}

	content, err := docGenerator.Content(context.Background(), args[0], format)
	if err != nil {
		return fmt.Errorf("failed to get content: %w", err)
	}

	cmd.Println(content)
	return nil
}
