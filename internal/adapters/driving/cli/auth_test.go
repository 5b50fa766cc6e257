package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthCmd_HasSubcommands(t *testing.T) {
	commands := authCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "set-token")
	assert.Contains(t, commandNames, "status")
}

func TestAuthSetTokenCmd_ReadsPipedToken(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	saver := &mockConfigSaver{}
	configSaver = saver

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("figd_secret\n"))
	rootCmd.SetArgs([]string{"auth", "set-token"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "figd_secret", saver.token)
	assert.Contains(t, buf.String(), "Token stored")
}

func TestAuthSetTokenCmd_EmptyToken(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader("\n"))
	rootCmd.SetArgs([]string{"auth", "set-token"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestAuthSetTokenCmd_NotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	configSaver = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"auth", "set-token"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestAuthStatusCmd_ShowsUser(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"auth", "status"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Authenticated as designer")
}
