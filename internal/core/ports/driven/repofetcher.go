package driven

import "context"

// RepoFile is one source file fetched from a remote repository.
type RepoFile struct {
	// Path is the file path within the repository.
	Path string

	// Content is the decoded file content.
	Content string
}

// RepoFetcher retrieves source files from a remote code host for
// analysis. Implemented by the GitHub adapter.
type RepoFetcher interface {
	// Files lists and fetches text files under dir in repo
	// ("owner/name"). An empty dir means the repository root.
	Files(ctx context.Context, repo, dir string) ([]RepoFile, error)
}
