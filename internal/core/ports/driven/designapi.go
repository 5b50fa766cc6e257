package driven

import (
	"context"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
)

// DesignAPI fetches design files and metadata from the remote design
// tool's REST API.
//
// Errors surface as HTTP-status-coded failures: implementations wrap
// domain.ErrBadFileKey, domain.ErrUnauthorized, domain.ErrForbidden and
// domain.ErrFileNotFound for 400/401/403/404 so callers can present
// distinct messages. Every call carries a bounded timeout; there is no
// built-in retry.
type DesignAPI interface {
	// Me returns the authenticated user, validating the API token.
	Me(ctx context.Context) (*domain.DesignUser, error)

	// FileMeta fetches version and modification metadata for a file
	// using a shallow request that does not pull the node tree.
	FileMeta(ctx context.Context, fileKey string) (*domain.FileMeta, error)

	// File fetches a file with its full node tree, components and styles.
	File(ctx context.Context, fileKey string) (*domain.DesignFile, error)

	// FileVersions returns the file's version history, newest first,
	// capped at limit entries.
	FileVersions(ctx context.Context, fileKey string, limit int) ([]domain.DesignVersion, error)

	// TeamProjects lists the projects in a team.
	TeamProjects(ctx context.Context, teamID string) ([]domain.Project, error)

	// ProjectFiles lists the files in a project.
	ProjectFiles(ctx context.Context, projectID string) ([]domain.ProjectFile, error)

	// RenderImages renders nodes to images and returns node ID → image URL.
	RenderImages(ctx context.Context, fileKey string, nodeIDs []string, format string, scale float64) (map[string]string, error)

	// DownloadImages renders nodes and downloads the images as bytes.
	// A node whose render or download fails is omitted from the result.
	DownloadImages(ctx context.Context, fileKey string, nodeIDs []string, format string, scale float64) (map[string][]byte, error)
}
