package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCmd_Use(t *testing.T) {
	assert.Equal(t, "generate [file-key]", generateCmd.Use)
}

func TestGenerateCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"generate"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestGenerateCmd_HasTypeFlag(t *testing.T) {
	flag := generateCmd.Flags().Lookup("type")
	require.NotNil(t, flag, "type flag should exist")
	assert.Equal(t, "t", flag.Shorthand)
	assert.Equal(t, "both", flag.DefValue)
}

func TestGenerateCmd_ExecutesWithFileKey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"generate", "abc123"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `Generated "Landing Page Documentation" (1 sections)`)
	assert.Contains(t, buf.String(), "doc-1")
}

func TestGenerateCmd_InvalidType(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"generate", "abc123", "--type", "banana"})
	defer func() {
		rootCmd.SetArgs(nil)
		generateType = "both"
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid documentation type")
}

func TestGenerateCmd_GeneratorNotConfigured(t *testing.T) {
	oldGenerator := docGenerator
	docGenerator = nil
	defer func() {
		docGenerator = oldGenerator
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"generate", "abc123"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
