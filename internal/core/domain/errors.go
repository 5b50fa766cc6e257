package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotWatched indicates a file key is not in the watch registry.
	ErrNotWatched = errors.New("file is not being watched")

	// ErrTokenMissing indicates no design API token is configured.
	// Requests are rejected before any network call is made.
	ErrTokenMissing = errors.New("design API token is not set")

	// ErrLLMUnavailable indicates the LLM service is not configured or unreachable.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrAPIUnavailable indicates the design API could not be reached.
	ErrAPIUnavailable = errors.New("design API unavailable")

	// Design API access errors. The figma adapter maps HTTP status codes
	// onto these so callers get distinct user-facing messages.

	// ErrBadFileKey indicates the API rejected the request (HTTP 400),
	// typically a malformed key or an unsupported file type.
	ErrBadFileKey = errors.New("file could not be accessed")

	// ErrUnauthorized indicates the API token was rejected (HTTP 401).
	ErrUnauthorized = errors.New("API token rejected")

	// ErrForbidden indicates the token lacks access to the file (HTTP 403).
	ErrForbidden = errors.New("access to file denied")

	// ErrFileNotFound indicates the file does not exist (HTTP 404).
	ErrFileNotFound = errors.New("design file not found")
)
