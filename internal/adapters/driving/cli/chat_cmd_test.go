package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatCmd_Use(t *testing.T) {
	assert.Equal(t, "chat [question]", chatCmd.Use)
}

func TestChatCmd_OneShotQuestion(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"chat", "how", "many", "frames?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "The landing page has two frames.")
	assert.Contains(t, buf.String(), "Sources: Landing Page")
}

func TestChatCmd_InteractiveSession(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("what is on the page?\nexit\n"))
	rootCmd.SetArgs([]string{"chat"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "type \"exit\" to quit")
	assert.Contains(t, buf.String(), "The landing page has two frames.")
}

func TestChatCmd_ServiceNotConfigured(t *testing.T) {
	oldChat := chatService
	chatService = nil
	defer func() {
		chatService = oldChat
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"chat", "anything"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
