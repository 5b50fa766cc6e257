// Command designdocs generates living documentation from design files.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driven/config/file"
	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driven/designapi/figma"
	docstore "github.com/designdocs-labs/designdocs-cli/internal/adapters/driven/docstore/file"
	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driven/llm/ollama"
	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driven/repo/github"
	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driven/storage/sqlite"
	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driving/cli"
	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
	"github.com/designdocs-labs/designdocs-cli/internal/core/services"
	"github.com/designdocs-labs/designdocs-cli/internal/logger"
)

func main() {
	svcs, cleanup, err := buildServices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer cleanup()

	cli.SetServices(svcs)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildServices wires adapters into core services from the persisted
// configuration. The returned cleanup releases held resources and must
// run after the CLI finishes.
func buildServices() (cli.Services, func(), error) {
	noop := func() {}

	configStore, err := file.NewStore("")
	if err != nil {
		return cli.Services{}, noop, fmt.Errorf("opening config store: %w", err)
	}

	cfg, err := configStore.Load()
	if err != nil {
		return cli.Services{}, noop, fmt.Errorf("loading config: %w", err)
	}

	api := figma.NewClient(figma.Config{
		Token:   cfg.Figma.Token,
		BaseURL: cfg.Figma.BaseURL,
	})

	llm := ollama.NewLLMService(ollama.Config{
		BaseURL: cfg.Ollama.BaseURL,
		Model:   cfg.Ollama.Models.Documentation,
	})

	outputDir := cfg.Output.Dir
	if outputDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cli.Services{}, noop, fmt.Errorf("getting home directory: %w", err)
		}
		outputDir = filepath.Join(home, ".designdocs", "docs")
	}

	artifacts, err := docstore.NewStore(outputDir)
	if err != nil {
		return cli.Services{}, noop, fmt.Errorf("opening artifact store: %w", err)
	}

	// The poll history is an audit log; a broken store should not keep
	// the CLI from running.
	var history driven.PollHistoryStore
	sqliteStore, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("poll history disabled: %s", err)
	} else {
		history = sqliteStore
	}

	registry := services.NewWatchRegistry()
	for _, wf := range cfg.WatchedFiles {
		registry.Add(wf.FileKey, wf.Name)
	}

	poller := services.NewChangePoller(registry, api, history, cfg.Interval())

	opts := driven.GenerateOptions{
		Temperature: cfg.Generation.Temperature,
		MaxTokens:   cfg.Generation.MaxTokens,
		TopP:        cfg.Generation.TopP,
	}

	generator := services.NewDocGenerator(api, llm, artifacts, services.GeneratorConfig{
		Model:   cfg.Ollama.Models.Documentation,
		Options: opts,
	})

	if cfg.Polling.AutoGenerate {
		poller.OnChange(func(event domain.FileChangeEvent) {
			logger.Info("regenerating documentation for %s", event.FileKey)
			if _, err := generator.Update(context.Background(), event.FileKey, domain.DocTypeBoth); err != nil {
				logger.Error("regenerating %s: %s", event.FileKey, err)
				return
			}
			registry.MarkGenerated(event.FileKey)
		})
	}

	chat := services.NewChatService(llm, artifacts, services.ChatConfig{
		Model:   cfg.Ollama.Models.Chatbot,
		Options: opts,
	})
	if err := chat.WatchArtifacts(); err != nil {
		logger.Warn("artifact watching disabled: %s", err)
	}

	analyzer := services.NewCodeAnalyzer(llm, github.NewFetcher(cfg.GitHub.Token), services.AnalyzerConfig{
		Model:   cfg.Ollama.Models.CodeAnalysis,
		Options: opts,
	})

	cleanup := func() {
		_ = chat.Close()
		if sqliteStore != nil {
			_ = sqliteStore.Close()
		}
	}

	return cli.Services{
		Registry:  registry,
		Poller:    poller,
		Generator: generator,
		Chat:      chat,
		Analyzer:  analyzer,
		DesignAPI: api,
		LLM:       llm,
		History:   history,
		Config:    &configSaver{store: configStore},
	}, cleanup, nil
}

// configSaver persists CLI-driven configuration changes through the
// TOML store with a load-mutate-save cycle.
type configSaver struct {
	store *file.Store
}

var _ cli.ConfigSaver = (*configSaver)(nil)

func (c *configSaver) SetToken(token string) error {
	cfg, err := c.store.Load()
	if err != nil {
		return err
	}
	cfg.Figma.Token = token
	return c.store.Save(cfg)
}

func (c *configSaver) AddWatchedFile(fileKey, name string) error {
	cfg, err := c.store.Load()
	if err != nil {
		return err
	}
	for i := range cfg.WatchedFiles {
		if cfg.WatchedFiles[i].FileKey == fileKey {
			cfg.WatchedFiles[i].Name = name
			return c.store.Save(cfg)
		}
	}
	cfg.WatchedFiles = append(cfg.WatchedFiles, file.WatchedFileConfig{
		FileKey: fileKey,
		Name:    name,
	})
	return c.store.Save(cfg)
}

func (c *configSaver) RemoveWatchedFile(fileKey string) error {
	cfg, err := c.store.Load()
	if err != nil {
		return err
	}
	kept := cfg.WatchedFiles[:0]
	for _, wf := range cfg.WatchedFiles {
		if wf.FileKey != fileKey {
			kept = append(kept, wf)
		}
	}
	cfg.WatchedFiles = kept
	return c.store.Save(cfg)
}
