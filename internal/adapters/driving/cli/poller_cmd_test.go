package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPollerCmd_Use(t *testing.T) {
	assert.Equal(t, "poller", pollerCmd.Use)
}

func TestPollerCmd_HasSubcommands(t *testing.T) {
	commands := pollerCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "start")
	assert.Contains(t, commandNames, "status")
	assert.Contains(t, commandNames, "history")
}

func TestPollerStatusCmd_Stopped(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"poller", "status"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Poller: stopped")
	assert.Contains(t, buf.String(), "Watched files: 1")
}

func TestPollerHistoryCmd_ShowsRecords(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"poller", "history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "abc123")
	assert.Contains(t, buf.String(), "changed 5 -> 6")
}

func TestPollerHistoryCmd_HasLimitFlag(t *testing.T) {
	flag := pollerHistoryCmd.Flags().Lookup("limit")
	assert.NotNil(t, flag)
	assert.Equal(t, "20", flag.DefValue)
}

func TestPollerHistoryCmd_StoreNotConfigured(t *testing.T) {
	oldHistory := pollHistory
	pollHistory = nil
	defer func() {
		pollHistory = oldHistory
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"poller", "history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
