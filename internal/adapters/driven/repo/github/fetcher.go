// Package github fetches repository source files for code analysis.
package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v80/github"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
	"github.com/designdocs-labs/designdocs-cli/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.RepoFetcher = (*Fetcher)(nil)

// maxFetchedFileSize skips blobs the analyzer would truncate anyway.
const maxFetchedFileSize = 500 * 1024

// Fetcher retrieves repository contents through the GitHub API.
type Fetcher struct {
	client *github.Client
}

// NewFetcher creates a fetcher. token may be empty for anonymous
// access to public repositories, at a lower rate limit.
func NewFetcher(token string) *Fetcher {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &Fetcher{client: client}
}

// Files lists and fetches the text files under dir in repo
// ("owner/name"). Directories are walked recursively; oversized and
// undecodable entries are skipped.
func (f *Fetcher) Files(ctx context.Context, repo, dir string) ([]driven.RepoFile, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("%w: repository must be owner/name, got %q", domain.ErrInvalidInput, repo)
	}

	var files []driven.RepoFile
	if err := f.walk(ctx, owner, name, dir, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (f *Fetcher) walk(ctx context.Context, owner, name, dir string, out *[]driven.RepoFile) error {
	_, entries, _, err := f.client.Repositories.GetContents(ctx, owner, name, dir, nil)
	if err != nil {
		return fmt.Errorf("list %s/%s %s: %w", owner, name, dir, err)
	}

	for _, entry := range entries {
		switch entry.GetType() {
		case "dir":
			if err := f.walk(ctx, owner, name, entry.GetPath(), out); err != nil {
				return err
			}
		case "file":
			if entry.GetSize() > maxFetchedFileSize {
				continue
			}
			content, err := f.fetchFile(ctx, owner, name, entry.GetPath())
			if err != nil {
				logger.Warn("Skipping %s: %v", entry.GetPath(), err)
				continue
			}
			*out = append(*out, driven.RepoFile{Path: entry.GetPath(), Content: content})
		}
	}
	return nil
}

func (f *Fetcher) fetchFile(ctx context.Context, owner, name, path string) (string, error) {
	fileContent, _, _, err := f.client.Repositories.GetContents(ctx, owner, name, path, nil)
	if err != nil {
		return "", err
	}
	if fileContent == nil {
		return "", fmt.Errorf("no content returned")
	}
	return fileContent.GetContent()
}
