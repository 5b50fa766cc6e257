package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
)

var generateCmd = &cobra.Command{
	Use:   "generate [file-key]",
	Short: "Generate documentation for a design file",
	Long: `Fetches the design file, generates documentation with the configured
LLM, and writes the markdown, HTML and metadata artifacts.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

// Flags for generate.
var (
	generateType   string
	generateMDOnly bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateType, "type", "t", "both", "Documentation type: user, dev, or both")
	generateCmd.Flags().BoolVar(&generateMDOnly, "markdown-only", false, "Skip the HTML artifact")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if docGenerator == nil {
		return errors.New("documentation generator not configured")
	}

	fileKey := args[0]
	docType := domain.DocType(generateType)
	if !docType.IsValid() {
		return fmt.Errorf("invalid documentation type %q (want user, dev, or both)", generateType)
	}

	formats := []domain.DocFormat{domain.FormatMarkdown, domain.FormatHTML}
	if generateMDOnly {
		formats = formats[:1]
	}

	cmd.Printf("Generating %s documentation for %s...\n", docType, fileKey)

	doc, err := docGenerator.Generate(context.Background(), fileKey, docType, formats)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if watchRegistry != nil {
		watchRegistry.MarkGenerated(fileKey)
	}

	cmd.Printf("Generated %q (%d sections)\n", doc.Title, len(doc.Sections))
	cmd.Printf("  ID:   %s\n", doc.ID)
	cmd.Printf("  Slug: %s\n", doc.Slug())
	return nil
}
