package services

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driving"
	"github.com/designdocs-labs/designdocs-cli/internal/logger"
)

// Ensure CodeAnalyzer implements the interface.
var _ driving.CodeAnalyzer = (*CodeAnalyzer)(nil)

// maxAnalyzedContent caps how much of a file is sent to the LLM.
const maxAnalyzedContent = 8000

// maxAnalyzedFileSize skips files larger than this outright.
const maxAnalyzedFileSize = 500 * 1024

// AnalyzerConfig configures code analysis.
type AnalyzerConfig struct {
	// Model is the LLM model used for code analysis.
	Model string

	// Options are the sampling options.
	Options driven.GenerateOptions

	// IncludePatterns selects files by base-name glob (e.g. "*.go").
	IncludePatterns []string

	// ExcludeDirs names directory segments that are skipped entirely.
	ExcludeDirs []string
}

// DefaultAnalyzerConfig returns the stock file selection.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		IncludePatterns: []string{
			"*.go", "*.py", "*.js", "*.ts", "*.tsx", "*.jsx",
			"*.vue", "*.css", "*.scss", "*.html",
		},
		ExcludeDirs: []string{
			"node_modules", "__pycache__", ".git", "dist", "build", "vendor",
		},
	}
}

// CodeAnalyzer generates documentation for source code files, either
// from a local directory walk or from a GitHub repository.
type CodeAnalyzer struct {
	llm   driven.LLMService
	repos driven.RepoFetcher
	cfg   AnalyzerConfig
}

// NewCodeAnalyzer creates an analyzer. repos may be nil; AnalyzeRepo
// then reports that remote analysis is not configured.
func NewCodeAnalyzer(llm driven.LLMService, repos driven.RepoFetcher, cfg AnalyzerConfig) *CodeAnalyzer {
	if len(cfg.IncludePatterns) == 0 {
		defaults := DefaultAnalyzerConfig()
		cfg.IncludePatterns = defaults.IncludePatterns
		cfg.ExcludeDirs = defaults.ExcludeDirs
	}
	return &CodeAnalyzer{llm: llm, repos: repos, cfg: cfg}
}

// AnalyzeDir walks a local directory and documents each matching
// source file. A single file's failure is logged and skipped.
func (a *CodeAnalyzer) AnalyzeDir(ctx context.Context, root string) (map[string]string, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty directory", domain.ErrInvalidInput)
	}

	results := make(map[string]string)

	err := filepath.WalkDir(root, func(filePath string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			if a.excluded(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !a.included(entry.Name()) {
			return nil
		}

		fileInfo, err := entry.Info()
		if err != nil || fileInfo.Size() > maxAnalyzedFileSize {
			return nil
		}

		content, err := os.ReadFile(filePath)
		if err != nil {
			logger.Warn("Skipping unreadable file %s: %v", filePath, err)
			return nil
		}

		rel, err := filepath.Rel(root, filePath)
		if err != nil {
			rel = filePath
		}

		doc, err := a.analyzeFile(ctx, rel, string(content))
		if err != nil {
			logger.Error("Analysis failed for %s: %v", rel, err)
			return nil
		}
		results[rel] = doc
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return results, nil
}

// AnalyzeRepo documents matching files fetched from a GitHub
// repository ("owner/repo").
func (a *CodeAnalyzer) AnalyzeRepo(ctx context.Context, repo, dir string) (map[string]string, error) {
	if a.repos == nil {
		return nil, fmt.Errorf("%w: no repository fetcher configured", domain.ErrInvalidInput)
	}
	if !strings.Contains(repo, "/") {
		return nil, fmt.Errorf("%w: repository must be owner/name", domain.ErrInvalidInput)
	}

	files, err := a.repos.Files(ctx, repo, dir)
	if err != nil {
		return nil, fmt.Errorf("fetch repository files: %w", err)
	}

	results := make(map[string]string)
	for _, file := range files {
		if !a.included(path.Base(file.Path)) {
			continue
		}
		doc, err := a.analyzeFile(ctx, file.Path, file.Content)
		if err != nil {
			logger.Error("Analysis failed for %s: %v", file.Path, err)
			continue
		}
		results[file.Path] = doc
	}

	return results, nil
}

func (a *CodeAnalyzer) analyzeFile(ctx context.Context, filePath, content string) (string, error) {
	if len(content) > maxAnalyzedContent {
		content = content[:maxAnalyzedContent]
	}

	prompt := fmt.Sprintf(`Analyze the following code and generate documentation.

File: %s

`+"```\n%s\n```"+`

Generate documentation that includes:
1. Overview of what this code does
2. Main functions/types and their purposes
3. Key dependencies and imports
4. Usage examples if applicable
5. Any important notes or considerations

Format the output as Markdown.`, filePath, content)

	opts := a.cfg.Options
	opts.Model = a.cfg.Model
	return a.llm.Generate(ctx, prompt, opts)
}

func (a *CodeAnalyzer) included(base string) bool {
	for _, pattern := range a.cfg.IncludePatterns {
		if matched, err := path.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

func (a *CodeAnalyzer) excluded(dirName string) bool {
	for _, name := range a.cfg.ExcludeDirs {
		if dirName == name {
			return true
		}
	}
	return false
}
