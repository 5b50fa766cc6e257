// Package tui provides an interactive terminal user interface for
// designdocs. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Registry manages the watched file set.
	Registry driving.WatchRegistry

	// Poller runs change checks on watched files.
	Poller driving.ChangePoller

	// Generator produces and retrieves documentation.
	Generator driving.DocGenerator

	// Chat answers questions over the documentation. Optional.
	Chat driving.ChatService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	registry driving.WatchRegistry,
	poller driving.ChangePoller,
	generator driving.DocGenerator,
) *Ports {
	return &Ports{
		Registry:  registry,
		Poller:    poller,
		Generator: generator,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Registry == nil {
		return ErrMissingRegistry
	}
	if p.Poller == nil {
		return ErrMissingPoller
	}
	if p.Generator == nil {
		return ErrMissingGenerator
	}
	return nil
}
