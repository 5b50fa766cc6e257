package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage design API credentials",
}

var authSetTokenCmd = &cobra.Command{
	Use:   "set-token",
	Short: "Store the design API token",
	Long: `Prompts for the personal access token without echoing it and stores
it in the configuration file. The FIGMA_API_TOKEN environment variable
overrides the stored token.`,
	Args: cobra.NoArgs,
	RunE: runAuthSetToken,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Validate the configured token",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authSetTokenCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSetToken(cmd *cobra.Command, _ []string) error {
	if configSaver == nil {
		return errors.New("configuration store not configured")
	}

	var token string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		cmd.Print("Design API token: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		cmd.Println()
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = string(raw)
	} else {
		// Piped input, e.g. designdocs auth set-token < token.txt
		var line string
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &line); err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = line
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}

	if err := configSaver.SetToken(token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	cmd.Println("Token stored")
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if designAPI == nil {
		return errors.New("design API not configured")
	}

	user, err := designAPI.Me(context.Background())
	if err != nil {
		return fmt.Errorf("token validation failed: %w", err)
	}

	cmd.Printf("Authenticated as %s", user.Handle)
	if user.Email != "" {
		cmd.Printf(" (%s)", user.Email)
	}
	cmd.Println()
	return nil
}
