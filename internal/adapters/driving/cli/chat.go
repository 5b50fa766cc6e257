package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask questions about the generated documentation",
	Long: `Answers a question using the generated documentation as context.
Without a question, starts an interactive session that keeps the
conversation history.`,
	Args: cobra.ArbitraryArgs,
	RunE: runChat,
}

// chatFileKey is the --file flag for chat.
var chatFileKey string

func init() {
	chatCmd.Flags().StringVarP(&chatFileKey, "file", "f", "", "Limit context to one design file key")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	ctx := context.Background()

	if len(args) > 0 {
		question := strings.Join(args, " ")
		resp, err := chatService.Ask(ctx, question, chatFileKey, nil)
		if err != nil {
			return fmt.Errorf("chat failed: %w", err)
		}
		cmd.Println(resp.Message)
		printSources(cmd, resp.Sources)
		return nil
	}

	return runChatInteractive(cmd, ctx)
}

// runChatInteractive reads questions line by line, carrying history
// across turns. "exit" or EOF ends the session.
func runChatInteractive(cmd *cobra.Command, ctx context.Context) error {
	cmd.Println("Chat about your documentation (type \"exit\" to quit)")

	var history []domain.ChatMessage
	scanner := bufio.NewScanner(cmd.InOrStdin())

	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		resp, err := chatService.Ask(ctx, question, chatFileKey, history)
		if err != nil {
			cmd.PrintErrf("Error: %v\n", err)
			continue
		}

		cmd.Println(resp.Message)
		cmd.Println()

		history = append(history,
			domain.ChatMessage{Role: domain.RoleUser, Content: question},
			domain.ChatMessage{Role: domain.RoleAssistant, Content: resp.Message},
		)
	}
	return scanner.Err()
}

func printSources(cmd *cobra.Command, sources []string) {
	if len(sources) == 0 {
		return
	}
	cmd.Printf("\nSources: %s\n", strings.Join(sources, ", "))
}
