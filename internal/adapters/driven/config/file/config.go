// Package file provides the TOML configuration store.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override file values.
const (
	EnvFigmaToken    = "FIGMA_API_TOKEN"
	EnvOllamaBaseURL = "OLLAMA_BASE_URL"
)

// Default configuration values.
const (
	DefaultPollingMinutes = 5
	DefaultTemperature    = 0.7
	DefaultMaxTokens      = 4096
	DefaultTopP           = 0.9

	DefaultDocModel      = "gemma3:27b"
	DefaultChatModel     = "gemma3:27b"
	DefaultAnalysisModel = "qwen2.5-coder:14b"
)

// Config is the persisted CLI configuration.
type Config struct {
	// Figma holds design API settings.
	Figma FigmaConfig `toml:"figma"`

	// Ollama holds LLM server settings.
	Ollama OllamaConfig `toml:"ollama"`

	// Polling holds change detection settings.
	Polling PollingConfig `toml:"polling"`

	// Generation holds sampling options for all LLM calls.
	Generation GenerationConfig `toml:"generation"`

	// Output holds artifact output settings.
	Output OutputConfig `toml:"output"`

	// WatchedFiles are re-registered into the watch registry at startup.
	WatchedFiles []WatchedFileConfig `toml:"watched_files"`

	// GitHub holds repository analysis settings.
	GitHub GitHubConfig `toml:"github"`
}

// FigmaConfig holds design API settings.
type FigmaConfig struct {
	// Token is the personal access token. The FIGMA_API_TOKEN
	// environment variable takes precedence.
	Token string `toml:"token"`

	// BaseURL overrides the API base URL.
	BaseURL string `toml:"base_url,omitempty"`
}

// OllamaConfig holds LLM server settings.
type OllamaConfig struct {
	// BaseURL is the Ollama server URL. The OLLAMA_BASE_URL
	// environment variable takes precedence.
	BaseURL string `toml:"base_url,omitempty"`

	// Models selects the model per task.
	Models ModelsConfig `toml:"models"`
}

// ModelsConfig selects the LLM model per task.
type ModelsConfig struct {
	Documentation string `toml:"documentation"`
	Chatbot       string `toml:"chatbot"`
	CodeAnalysis  string `toml:"code_analysis"`
}

// PollingConfig holds change detection settings.
type PollingConfig struct {
	// IntervalMinutes is the polling interval in minutes.
	IntervalMinutes int `toml:"interval_minutes"`

	// AutoGenerate regenerates documentation when a change is detected.
	AutoGenerate bool `toml:"auto_generate"`
}

// GenerationConfig holds sampling options for LLM calls.
type GenerationConfig struct {
	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
	TopP        float64 `toml:"top_p"`
}

// OutputConfig holds artifact output settings.
type OutputConfig struct {
	// Dir is the artifact directory. Empty selects ~/.designdocs/docs.
	Dir string `toml:"dir,omitempty"`
}

// WatchedFileConfig is one watched file entry.
type WatchedFileConfig struct {
	FileKey string `toml:"file_key"`
	Name    string `toml:"name"`
}

// GitHubConfig holds repository analysis settings.
type GitHubConfig struct {
	// Token is an optional access token for higher rate limits and
	// private repositories.
	Token string `toml:"token,omitempty"`
}

// Interval returns the polling interval as a duration.
func (c *Config) Interval() time.Duration {
	if c.Polling.IntervalMinutes <= 0 {
		return DefaultPollingMinutes * time.Minute
	}
	return time.Duration(c.Polling.IntervalMinutes) * time.Minute
}

// Store loads and persists the configuration file.
type Store struct {
	mu       sync.Mutex
	filePath string
}

// NewStore creates a config store. If configDir is empty, defaults to
// ~/.designdocs.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".designdocs")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	return &Store{filePath: filepath.Join(configDir, "config.toml")}, nil
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.filePath
}

// Load reads the configuration, applying defaults and environment
// overrides. A missing file yields the default configuration.
func (s *Store) Load() (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := defaultConfig()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save persists the configuration. Tokens are written as given; the
// file is created user-readable only.
func (s *Store) Save(cfg *Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Polling.IntervalMinutes <= 0 {
		cfg.Polling.IntervalMinutes = DefaultPollingMinutes
	}
	if cfg.Generation.Temperature == 0 {
		cfg.Generation.Temperature = DefaultTemperature
	}
	if cfg.Generation.MaxTokens == 0 {
		cfg.Generation.MaxTokens = DefaultMaxTokens
	}
	if cfg.Generation.TopP == 0 {
		cfg.Generation.TopP = DefaultTopP
	}
	if cfg.Ollama.Models.Documentation == "" {
		cfg.Ollama.Models.Documentation = DefaultDocModel
	}
	if cfg.Ollama.Models.Chatbot == "" {
		cfg.Ollama.Models.Chatbot = DefaultChatModel
	}
	if cfg.Ollama.Models.CodeAnalysis == "" {
		cfg.Ollama.Models.CodeAnalysis = DefaultAnalysisModel
	}
}

func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv(EnvFigmaToken); token != "" {
		cfg.Figma.Token = token
	}
	if url := os.Getenv(EnvOllamaBaseURL); url != "" {
		cfg.Ollama.BaseURL = url
	}
}
