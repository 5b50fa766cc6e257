package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
)

// uriScheme is the custom URI scheme for designdocs resources.
const uriScheme = "designdocs://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "docs",
		Name:        "docs",
		Description: "Metadata for all generated documentation",
		MIMEType:    "application/json",
	}, s.handleDocsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "watched",
		Name:        "watched",
		Description: "Design files watched for changes",
		MIMEType:    "application/json",
	}, s.handleWatchedResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "docs/{fileKey}",
		Name:        "doc-content",
		Description: "Markdown documentation for a design file",
		MIMEType:    "text/markdown",
	}, s.handleDocContentResource)
}

// handleDocsResource returns metadata for all generated documentation.
func (s *Server) handleDocsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	metas, err := s.ports.Generator.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documentation: %w", err)
	}

	type docInfo struct {
		ID         string `json:"id"`
		Title      string `json:"title"`
		SourceKey  string `json:"source_key"`
		SourceName string `json:"source_name"`
		DocType    string `json:"doc_type"`
		CreatedAt  string `json:"created_at"`
	}

	infos := make([]docInfo, len(metas))
	for i, meta := range metas {
		infos[i] = docInfo{
			ID:         meta.ID,
			Title:      meta.Title,
			SourceKey:  meta.SourceKey,
			SourceName: meta.SourceName,
			DocType:    meta.DocType,
			CreatedAt:  meta.CreatedAt,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documentation list: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleWatchedResource returns the watched file list.
func (s *Server) handleWatchedResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	_ = ctx

	type watchedInfo struct {
		FileKey      string `json:"file_key"`
		Name         string `json:"name"`
		LastVersion  string `json:"last_version,omitempty"`
		DocGenerated bool   `json:"doc_generated"`
	}

	var infos []watchedInfo
	if s.ports.Registry != nil {
		for _, watched := range s.ports.Registry.List() {
			infos = append(infos, watchedInfo{
				FileKey:      watched.FileKey,
				Name:         watched.Name,
				LastVersion:  watched.LastVersion,
				DocGenerated: watched.DocGenerated,
			})
		}
	}
	if infos == nil {
		infos = []watchedInfo{}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling watched files: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocContentResource returns the markdown documentation for a
// design file key.
func (s *Server) handleDocContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	fileKey := extractFileKey(req.Params.URI)
	if fileKey == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	content, err := s.ports.Generator.Content(ctx, fileKey, domain.FormatMarkdown)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     content,
		}},
	}, nil
}

// extractFileKey parses designdocs://docs/{fileKey}.
func extractFileKey(uri string) string {
	rest, ok := strings.CutPrefix(uri, uriScheme+"docs/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return rest
}
