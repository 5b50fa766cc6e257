package mcp

import (
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. This provides a single injection point.
type Ports struct {
	// Generator produces and retrieves generated documentation.
	Generator driving.DocGenerator

	// Chat answers questions over the documentation.
	Chat driving.ChatService

	// Poller runs on-demand change checks.
	Poller driving.ChangePoller

	// Registry lists watched files.
	Registry driving.WatchRegistry
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Generator == nil {
		return ErrMissingGenerator
	}
	// Chat, Poller and Registry are optional; their tools and
	// resources degrade gracefully.
	return nil
}
