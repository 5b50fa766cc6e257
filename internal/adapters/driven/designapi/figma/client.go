// Package figma provides a design API adapter for the Figma REST API.
package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
	"github.com/designdocs-labs/designdocs-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.DesignAPI = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.figma.com/v1"
	DefaultTimeout = 30 * time.Second

	// defaultRateLimit paces requests below Figma's documented
	// per-token ceiling. Burst covers a CheckAll sweep.
	defaultRateLimit = rate.Limit(2)
	defaultRateBurst = 10
)

// Config holds configuration for the Figma client.
type Config struct {
	// Token is the personal access token, sent as X-Figma-Token.
	// Ignored when OAuthToken is set.
	Token string

	// OAuthToken, when set, authenticates via an OAuth2 bearer header
	// instead of a personal access token.
	OAuthToken *oauth2.Token

	// BaseURL overrides the API base URL (default: https://api.figma.com/v1).
	BaseURL string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Client talks to the Figma REST API. Requests are paced by a client
// side rate limiter and fail fast when no token is configured.
type Client struct {
	client  *http.Client
	baseURL string
	token   string
	bearer  bool
	limiter *rate.Limiter
}

// NewClient creates a Figma client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	token := cfg.Token
	bearer := false
	if cfg.OAuthToken != nil {
		token = cfg.OAuthToken.AccessToken
		bearer = true
	}

	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   token,
		bearer:  bearer,
		limiter: rate.NewLimiter(defaultRateLimit, defaultRateBurst),
	}
}

// Me returns the authenticated user, validating the token.
func (c *Client) Me(ctx context.Context) (*domain.DesignUser, error) {
	var payload userPayload
	if err := c.get(ctx, "/me", nil, &payload); err != nil {
		return nil, err
	}
	return &domain.DesignUser{
		ID:     payload.ID,
		Handle: payload.Handle,
		Email:  payload.Email,
	}, nil
}

// FileMeta fetches version metadata using a shallow depth=1 request so
// the node tree stays small.
func (c *Client) FileMeta(ctx context.Context, fileKey string) (*domain.FileMeta, error) {
	if fileKey == "" {
		return nil, fmt.Errorf("%w: empty file key", domain.ErrInvalidInput)
	}

	var payload filePayload
	query := url.Values{"depth": {"1"}}
	if err := c.get(ctx, "/files/"+url.PathEscape(fileKey), query, &payload); err != nil {
		return nil, err
	}

	return &domain.FileMeta{
		Key:          fileKey,
		Name:         payload.Name,
		Version:      payload.Version,
		LastModified: parseTime(payload.LastModified),
	}, nil
}

// File fetches a file with its full node tree, components and styles.
func (c *Client) File(ctx context.Context, fileKey string) (*domain.DesignFile, error) {
	if fileKey == "" {
		return nil, fmt.Errorf("%w: empty file key", domain.ErrInvalidInput)
	}

	var payload filePayload
	if err := c.get(ctx, "/files/"+url.PathEscape(fileKey), nil, &payload); err != nil {
		return nil, err
	}

	file := &domain.DesignFile{
		Key:          fileKey,
		Name:         payload.Name,
		Version:      payload.Version,
		LastModified: parseTime(payload.LastModified),
		ThumbnailURL: payload.ThumbnailURL,
		Document:     payload.Document.toDomain(),
		Components:   make(map[string]domain.DesignComponent, len(payload.Components)),
		Styles:       make(map[string]domain.DesignStyle, len(payload.Styles)),
	}
	for id, comp := range payload.Components {
		file.Components[id] = domain.DesignComponent{
			Key:         comp.Key,
			NodeID:      id,
			Name:        comp.Name,
			Description: comp.Description,
		}
	}
	for id, style := range payload.Styles {
		file.Styles[id] = domain.DesignStyle{
			ID:          id,
			Name:        style.Name,
			Type:        style.StyleType,
			Description: style.Description,
		}
	}
	return file, nil
}

// FileVersions returns the file's version history, newest first.
func (c *Client) FileVersions(ctx context.Context, fileKey string, limit int) ([]domain.DesignVersion, error) {
	if fileKey == "" {
		return nil, fmt.Errorf("%w: empty file key", domain.ErrInvalidInput)
	}

	var payload struct {
		Versions []versionPayload `json:"versions"`
	}
	if err := c.get(ctx, "/files/"+url.PathEscape(fileKey)+"/versions", nil, &payload); err != nil {
		return nil, err
	}

	versions := payload.Versions
	if limit > 0 && len(versions) > limit {
		versions = versions[:limit]
	}

	out := make([]domain.DesignVersion, 0, len(versions))
	for _, v := range versions {
		out = append(out, domain.DesignVersion{
			ID:          v.ID,
			Label:       v.Label,
			Description: v.Description,
			CreatedAt:   parseTime(v.CreatedAt),
			User:        domain.DesignUser{ID: v.User.ID, Handle: v.User.Handle, ImgURL: v.User.ImgURL},
		})
	}
	return out, nil
}

// TeamProjects lists the projects in a team.
func (c *Client) TeamProjects(ctx context.Context, teamID string) ([]domain.Project, error) {
	if teamID == "" {
		return nil, fmt.Errorf("%w: empty team ID", domain.ErrInvalidInput)
	}

	var payload struct {
		Projects []struct {
			ID   json.Number `json:"id"`
			Name string      `json:"name"`
		} `json:"projects"`
	}
	if err := c.get(ctx, "/teams/"+url.PathEscape(teamID)+"/projects", nil, &payload); err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(payload.Projects))
	for _, p := range payload.Projects {
		projects = append(projects, domain.Project{ID: p.ID.String(), Name: p.Name})
	}
	return projects, nil
}

// ProjectFiles lists the files in a project.
func (c *Client) ProjectFiles(ctx context.Context, projectID string) ([]domain.ProjectFile, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: empty project ID", domain.ErrInvalidInput)
	}

	var payload struct {
		Files []struct {
			Key          string `json:"key"`
			Name         string `json:"name"`
			ThumbnailURL string `json:"thumbnail_url"`
			LastModified string `json:"last_modified"`
		} `json:"files"`
	}
	if err := c.get(ctx, "/projects/"+url.PathEscape(projectID)+"/files", nil, &payload); err != nil {
		return nil, err
	}

	files := make([]domain.ProjectFile, 0, len(payload.Files))
	for _, f := range payload.Files {
		files = append(files, domain.ProjectFile{
			Key:          f.Key,
			Name:         f.Name,
			ThumbnailURL: f.ThumbnailURL,
			LastModified: f.LastModified,
		})
	}
	return files, nil
}

// RenderImages renders nodes to images and returns node ID to URL.
func (c *Client) RenderImages(ctx context.Context, fileKey string, nodeIDs []string, format string, scale float64) (map[string]string, error) {
	if fileKey == "" || len(nodeIDs) == 0 {
		return nil, fmt.Errorf("%w: file key and node IDs are required", domain.ErrInvalidInput)
	}
	if format == "" {
		format = "png"
	}
	if scale <= 0 {
		scale = 1
	}

	query := url.Values{
		"ids":    {strings.Join(nodeIDs, ",")},
		"format": {format},
		"scale":  {strconv.FormatFloat(scale, 'f', -1, 64)},
	}

	var payload struct {
		Err    string            `json:"err"`
		Images map[string]string `json:"images"`
	}
	if err := c.get(ctx, "/images/"+url.PathEscape(fileKey), query, &payload); err != nil {
		return nil, err
	}
	if payload.Err != "" {
		return nil, fmt.Errorf("render images: %s", payload.Err)
	}
	return payload.Images, nil
}

// DownloadImages renders nodes and downloads the image bytes. A node
// whose render or download fails is omitted from the result.
func (c *Client) DownloadImages(ctx context.Context, fileKey string, nodeIDs []string, format string, scale float64) (map[string][]byte, error) {
	urls, err := c.RenderImages(ctx, fileKey, nodeIDs, format, scale)
	if err != nil {
		return nil, err
	}

	images := make(map[string][]byte, len(urls))
	for nodeID, imageURL := range urls {
		if imageURL == "" {
			continue
		}
		data, err := c.download(ctx, imageURL)
		if err != nil {
			logger.Warn("Failed to download image for node %s: %v", nodeID, err)
			continue
		}
		images[nodeID] = data
	}
	return images, nil
}

// get performs an authenticated GET with rate limiting and maps HTTP
// error statuses onto domain sentinels.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.token == "" {
		return domain.ErrTokenMissing
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if c.bearer {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else {
		req.Header.Set("X-Figma-Token", c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAPIUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError maps an error response onto the domain sentinels.
func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w (status 400): %s", domain.ErrBadFileKey, strings.TrimSpace(string(body)))
	case http.StatusUnauthorized:
		return fmt.Errorf("%w (status 401)", domain.ErrUnauthorized)
	case http.StatusForbidden:
		return fmt.Errorf("%w (status 403)", domain.ErrForbidden)
	case http.StatusNotFound:
		return fmt.Errorf("%w (status 404)", domain.ErrFileNotFound)
	default:
		return fmt.Errorf("figma error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

// download fetches image bytes from a render URL. Render URLs are
// pre-signed, so no auth header is attached.
func (c *Client) download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed (status %d)", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05Z"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
