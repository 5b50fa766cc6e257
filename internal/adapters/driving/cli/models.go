package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Manage LLM models",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List models available on the LLM server",
	Args:  cobra.NoArgs,
	RunE:  runModelsList,
}

var modelsPullCmd = &cobra.Command{
	Use:   "pull [model]",
	Short: "Download a model to the LLM server",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsPull,
}

var modelsEnsureCmd = &cobra.Command{
	Use:   "ensure [model]",
	Short: "Pull a model only if it is missing",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsEnsure,
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsPullCmd)
	modelsCmd.AddCommand(modelsEnsureCmd)
	rootCmd.AddCommand(modelsCmd)
}

func runModelsList(cmd *cobra.Command, _ []string) error {
	if llmService == nil {
		return errors.New("LLM service not configured")
	}

	models, err := llmService.ListModels(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}
	if len(models) == 0 {
		cmd.Println("No models installed")
		return nil
	}

	for _, model := range models {
		size := ""
		if model.Size > 0 {
			size = fmt.Sprintf("  %.1f GB", float64(model.Size)/1e9)
		}
		cmd.Printf("%s%s\n", model.Name, size)
	}
	return nil
}

func runModelsPull(cmd *cobra.Command, args []string) error {
	if llmService == nil {
		return errors.New("LLM service not configured")
	}

	name := args[0]
	cmd.Printf("Pulling %s (this may take a while)...\n", name)
	if err := llmService.PullModel(context.Background(), name); err != nil {
		return fmt.Errorf("failed to pull model: %w", err)
	}
	cmd.Printf("Pulled %s\n", name)
	return nil
}

func runModelsEnsure(cmd *cobra.Command, args []string) error {
	if llmService == nil {
		return errors.New("LLM service not configured")
	}

	name := args[0]
	ctx := context.Background()

	exists, err := llmService.ModelExists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check model: %w", err)
	}
	if exists {
		cmd.Printf("%s is already available\n", name)
		return nil
	}

	cmd.Printf("Pulling %s (this may take a while)...\n", name)
	if err := llmService.PullModel(ctx, name); err != nil {
		return fmt.Errorf("failed to pull model: %w", err)
	}
	cmd.Printf("Pulled %s\n", name)
	return nil
}
