package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCmd_Use(t *testing.T) {
	assert.Equal(t, "analyze [path]", analyzeCmd.Use)
}

func TestAnalyzeCmd_LocalDirectory(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	outDir := filepath.Join(t.TempDir(), "code_docs")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"analyze", ".", "--out", outDir})
	defer func() {
		rootCmd.SetArgs(nil)
		analyzeOut = "code_docs"
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Analyzing .")
	assert.Contains(t, buf.String(), "Documented 1 files")

	written, err := os.ReadFile(filepath.Join(outDir, "main.go.md"))
	require.NoError(t, err)
	assert.Contains(t, string(written), "Entry point")
}

func TestAnalyzeCmd_GitHubRepository(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	outDir := filepath.Join(t.TempDir(), "code_docs")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"analyze", "--github", "owner/repo", "--out", outDir})
	defer func() {
		rootCmd.SetArgs(nil)
		analyzeGitHub = ""
		analyzeOut = "code_docs"
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Analyzing repository owner/repo")
	assert.Contains(t, buf.String(), "Documented 1 files")
}

func TestAnalyzeCmd_NoTarget(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"analyze"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "provide a local path")
}

func TestAnalyzeCmd_NotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	codeAnalyzer = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"analyze", "."})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
