package driven

import (
	"context"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
)

// LLMService provides text generation backed by a local or remote
// inference server.
type LLMService interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// GenerateWithImages produces a completion from a prompt plus
	// images, using a vision-capable model.
	GenerateWithImages(ctx context.Context, prompt string, images [][]byte, opts GenerateOptions) (string, error)

	// Chat conducts a multi-turn conversation.
	Chat(ctx context.Context, messages []domain.ChatMessage, opts GenerateOptions) (string, error)

	// ListModels returns the models available on the server.
	ListModels(ctx context.Context) ([]ModelInfo, error)

	// PullModel downloads a model to the server. Pulls of large models
	// can take minutes; the implementation uses a generous timeout.
	PullModel(ctx context.Context, name string) error

	// ModelExists reports whether a model (by exact name or base name
	// without tag) is available on the server.
	ModelExists(ctx context.Context, name string) (bool, error)

	// Ping validates the server is reachable without running inference.
	Ping(ctx context.Context) error
}

// GenerateOptions configures a single generation call.
type GenerateOptions struct {
	// Model overrides the adapter's default model when non-empty.
	Model string

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// TopP is the nucleus sampling cutoff.
	TopP float64
}

// ModelInfo describes a model available on the inference server.
type ModelInfo struct {
	// Name is the model name including tag (e.g. "gemma3:27b").
	Name string

	// Size is the model size in bytes, if reported.
	Size int64

	// ModifiedAt is the server's last-modified string, if reported.
	ModifiedAt string
}
