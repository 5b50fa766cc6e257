package mcp

import "errors"

// ErrMissingGenerator indicates the documentation generator port was
// not provided.
var ErrMissingGenerator = errors.New("mcp: documentation generator is required")
