// Package ollama provides an LLM service adapter using Ollama.
package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
	"github.com/designdocs-labs/designdocs-cli/internal/logger"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values. Generation gets a long timeout because
// local models can be slow; vision and pulls get longer still.
const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "gemma3:27b"

	DefaultMetaTimeout     = 30 * time.Second
	DefaultGenerateTimeout = 120 * time.Second
	DefaultVisionTimeout   = 300 * time.Second
	DefaultPullTimeout     = 600 * time.Second
)

// Config holds configuration for the Ollama LLM service.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the default model when a call does not pick one.
	Model string

	// GenerateTimeout overrides the text generation timeout.
	GenerateTimeout time.Duration

	// VisionTimeout overrides the image generation timeout.
	VisionTimeout time.Duration

	// PullTimeout overrides the model pull timeout.
	PullTimeout time.Duration
}

// LLMService provides LLM operations using a local Ollama server.
type LLMService struct {
	baseURL string
	model   string

	metaClient     *http.Client
	generateClient *http.Client
	visionClient   *http.Client
	pullClient     *http.Client
}

// generateRequest is the Ollama /api/generate request format.
type generateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	Images  []string `json:"images,omitempty"`
	Options *options `json:"options,omitempty"`
}

// options holds generation parameters.
type options struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
}

// generateResponse is the Ollama /api/generate response format.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// chatRequest is the Ollama /api/chat request format.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *options      `json:"options,omitempty"`
}

// chatMessage is the Ollama chat message format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the Ollama /api/chat response format.
type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// tagsResponse is the Ollama /api/tags response format.
type tagsResponse struct {
	Models []struct {
		Name       string `json:"name"`
		Size       int64  `json:"size"`
		ModifiedAt string `json:"modified_at"`
	} `json:"models"`
}

// NewLLMService creates a new Ollama LLM service.
func NewLLMService(cfg Config) *LLMService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.GenerateTimeout == 0 {
		cfg.GenerateTimeout = DefaultGenerateTimeout
	}
	if cfg.VisionTimeout == 0 {
		cfg.VisionTimeout = DefaultVisionTimeout
	}
	if cfg.PullTimeout == 0 {
		cfg.PullTimeout = DefaultPullTimeout
	}

	return &LLMService{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		model:          cfg.Model,
		metaClient:     &http.Client{Timeout: DefaultMetaTimeout},
		generateClient: &http.Client{Timeout: cfg.GenerateTimeout},
		visionClient:   &http.Client{Timeout: cfg.VisionTimeout},
		pullClient:     &http.Client{Timeout: cfg.PullTimeout},
	}
}

// Generate produces a text completion from a prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	reqBody := generateRequest{
		Model:   s.pickModel(opts),
		Prompt:  prompt,
		Stream:  false,
		Options: buildOptions(opts),
	}

	var genResp generateResponse
	if err := s.post(ctx, s.generateClient, "/api/generate", reqBody, &genResp); err != nil {
		return "", err
	}
	return genResp.Response, nil
}

// GenerateWithImages produces a completion from a prompt plus images
// using a vision-capable model. Images are sent base64-encoded.
func (s *LLMService) GenerateWithImages(ctx context.Context, prompt string, images [][]byte, opts driven.GenerateOptions) (string, error) {
	encoded := make([]string, 0, len(images))
	for _, img := range images {
		encoded = append(encoded, base64.StdEncoding.EncodeToString(img))
	}

	reqBody := generateRequest{
		Model:   s.pickModel(opts),
		Prompt:  prompt,
		Stream:  false,
		Images:  encoded,
		Options: buildOptions(opts),
	}

	var genResp generateResponse
	if err := s.post(ctx, s.visionClient, "/api/generate", reqBody, &genResp); err != nil {
		return "", err
	}
	return genResp.Response, nil
}

// Chat conducts a multi-turn conversation.
func (s *LLMService) Chat(ctx context.Context, messages []domain.ChatMessage, opts driven.GenerateOptions) (string, error) {
	chatMessages := make([]chatMessage, len(messages))
	for i, msg := range messages {
		chatMessages[i] = chatMessage{Role: msg.Role, Content: msg.Content}
	}

	reqBody := chatRequest{
		Model:    s.pickModel(opts),
		Messages: chatMessages,
		Stream:   false,
		Options:  buildOptions(opts),
	}

	var resp chatResponse
	if err := s.post(ctx, s.generateClient, "/api/chat", reqBody, &resp); err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}

// ListModels returns the models available on the server.
func (s *LLMService) ListModels(ctx context.Context) ([]driven.ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.metaClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	models := make([]driven.ModelInfo, 0, len(tags.Models))
	for _, m := range tags.Models {
		models = append(models, driven.ModelInfo{
			Name:       m.Name,
			Size:       m.Size,
			ModifiedAt: m.ModifiedAt,
		})
	}
	return models, nil
}

// PullModel downloads a model to the server.
func (s *LLMService) PullModel(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty model name", domain.ErrInvalidInput)
	}

	logger.Info("Pulling model %s (this may take a while)", name)

	reqBody := map[string]any{"name": name, "stream": false}
	var result struct {
		Status string `json:"status"`
	}
	if err := s.post(ctx, s.pullClient, "/api/pull", reqBody, &result); err != nil {
		return err
	}
	if result.Status != "" && result.Status != "success" {
		return fmt.Errorf("pull model %s: %s", name, result.Status)
	}
	return nil
}

// ModelExists reports whether a model is available, matching either
// the exact name or the base name without its tag.
func (s *LLMService) ModelExists(ctx context.Context, name string) (bool, error) {
	models, err := s.ListModels(ctx)
	if err != nil {
		return false, err
	}

	base := strings.SplitN(name, ":", 2)[0]
	for _, m := range models {
		if m.Name == name {
			return true, nil
		}
		if strings.SplitN(m.Name, ":", 2)[0] == base {
			return true, nil
		}
	}
	return false, nil
}

// Ping validates the server is reachable without running inference.
func (s *LLMService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := s.metaClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return nil
}

// post sends a JSON POST and decodes the JSON response.
func (s *LLMService) post(ctx context.Context, client *http.Client, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("ollama error (status %d): failed to read response", resp.StatusCode)
	}
	return fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

func (s *LLMService) pickModel(opts driven.GenerateOptions) string {
	if opts.Model != "" {
		return opts.Model
	}
	return s.model
}

func buildOptions(opts driven.GenerateOptions) *options {
	if opts.MaxTokens == 0 && opts.Temperature == 0 && opts.TopP == 0 {
		return nil
	}
	return &options{
		NumPredict:  opts.MaxTokens,
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
	}
}
