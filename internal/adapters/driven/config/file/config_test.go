package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestStore_LoadMissingFileGivesDefaults(t *testing.T) {
	store := newTestStore(t)

	cfg, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultPollingMinutes, cfg.Polling.IntervalMinutes)
	assert.Equal(t, DefaultTemperature, cfg.Generation.Temperature)
	assert.Equal(t, DefaultMaxTokens, cfg.Generation.MaxTokens)
	assert.Equal(t, DefaultTopP, cfg.Generation.TopP)
	assert.Equal(t, DefaultDocModel, cfg.Ollama.Models.Documentation)
	assert.Empty(t, cfg.Figma.Token)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	cfg, err := store.Load()
	require.NoError(t, err)
	cfg.Figma.Token = "figd_secret"
	cfg.Polling.IntervalMinutes = 10
	cfg.Polling.AutoGenerate = true
	cfg.WatchedFiles = []WatchedFileConfig{
		{FileKey: "abc123", Name: "Landing Page"},
	}
	require.NoError(t, store.Save(cfg))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "figd_secret", loaded.Figma.Token)
	assert.Equal(t, 10, loaded.Polling.IntervalMinutes)
	assert.True(t, loaded.Polling.AutoGenerate)
	require.Len(t, loaded.WatchedFiles, 1)
	assert.Equal(t, "abc123", loaded.WatchedFiles[0].FileKey)
}

func TestStore_ConfigFilePermissions(t *testing.T) {
	store := newTestStore(t)
	cfg, err := store.Load()
	require.NoError(t, err)
	require.NoError(t, store.Save(cfg))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStore_EnvOverrides(t *testing.T) {
	store := newTestStore(t)
	cfg, err := store.Load()
	require.NoError(t, err)
	cfg.Figma.Token = "from-file"
	cfg.Ollama.BaseURL = "http://file:11434"
	require.NoError(t, store.Save(cfg))

	t.Setenv(EnvFigmaToken, "from-env")
	t.Setenv(EnvOllamaBaseURL, "http://env:11434")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", loaded.Figma.Token)
	assert.Equal(t, "http://env:11434", loaded.Ollama.BaseURL)
}

func TestStore_LoadParsesExistingTOML(t *testing.T) {
	dir := t.TempDir()
	content := `
[figma]
token = "figd_abc"

[polling]
interval_minutes = 15

[ollama.models]
documentation = "llama3:70b"

[[watched_files]]
file_key = "k1"
name = "File One"

[[watched_files]]
file_key = "k2"
name = "File Two"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewStore(dir)
	require.NoError(t, err)
	cfg, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, "figd_abc", cfg.Figma.Token)
	assert.Equal(t, 15, cfg.Polling.IntervalMinutes)
	assert.Equal(t, "llama3:70b", cfg.Ollama.Models.Documentation)
	assert.Equal(t, DefaultChatModel, cfg.Ollama.Models.Chatbot) // unset falls back
	require.Len(t, cfg.WatchedFiles, 2)
	assert.Equal(t, "File Two", cfg.WatchedFiles[1].Name)
}

func TestStore_LoadRejectsMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid"), 0600))

	store, err := NewStore(dir)
	require.NoError(t, err)

	_, err = store.Load()
	assert.Error(t, err)
}

func TestConfig_Interval(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 5*time.Minute, cfg.Interval())

	cfg.Polling.IntervalMinutes = 30
	assert.Equal(t, 30*time.Minute, cfg.Interval())
}
