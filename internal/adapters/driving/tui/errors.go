package tui

import "errors"

// ErrMissingRegistry is returned when the watch registry is not provided.
var ErrMissingRegistry = errors.New("tui: watch registry is required")

// ErrMissingPoller is returned when the change poller is not provided.
var ErrMissingPoller = errors.New("tui: change poller is required")

// ErrMissingGenerator is returned when the doc generator is not provided.
var ErrMissingGenerator = errors.New("tui: doc generator is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
