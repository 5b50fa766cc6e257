package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driving"
	"github.com/designdocs-labs/designdocs-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// maxContextPerDoc bounds how much of each document is included as
// prompt context.
const maxContextPerDoc = 4000

// maxHistoryTurns bounds how many prior turns reach the prompt.
const maxHistoryTurns = 5

// contextSeparator joins documents in the assembled context.
const contextSeparator = "\n\n---\n\n"

// ChatConfig selects the model and sampling options for chat.
type ChatConfig struct {
	Model   string
	Options driven.GenerateOptions
}

// ChatService answers questions over the persisted documentation.
// There is no relevance ranking: retrieval is filter-by-key plus
// truncation. Assembled context is cached per key and invalidated when
// artifact files change on disk.
type ChatService struct {
	llm   driven.LLMService
	store driven.ArtifactStore
	cfg   ChatConfig

	mu      sync.Mutex
	cache   map[string]cachedContext
	watcher *fsnotify.Watcher
}

type cachedContext struct {
	context string
	sources []string
}

// NewChatService creates a chat service.
func NewChatService(llm driven.LLMService, store driven.ArtifactStore, cfg ChatConfig) *ChatService {
	return &ChatService{
		llm:   llm,
		store: store,
		cfg:   cfg,
		cache: make(map[string]cachedContext),
	}
}

// WatchArtifacts starts invalidating the context cache when files in
// the artifact directory change. Optional: without it the cache is
// still correct for a single process writing through this service's
// store, but regeneration by another process would go unnoticed.
func (s *ChatService) WatchArtifacts() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.store.Dir()); err != nil {
		watcher.Close()
		return fmt.Errorf("watch artifact dir: %w", err)
	}

	s.mu.Lock()
	s.watcher = watcher
	s.mu.Unlock()

	go func() {
		for {
			select {
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				s.invalidate()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Artifact watcher error: %v", err)
			}
		}
	}()

	return nil
}

// Close stops the artifact watcher, if any.
func (s *ChatService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher != nil {
		err := s.watcher.Close()
		s.watcher = nil
		return err
	}
	return nil
}

func (s *ChatService) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cache) > 0 {
		logger.Debug("Artifacts changed, clearing chat context cache")
		s.cache = make(map[string]cachedContext)
	}
}

// Ask answers a question using stored documentation as context.
func (s *ChatService) Ask(
	ctx context.Context,
	message, sourceKey string,
	history []domain.ChatMessage,
) (*domain.ChatResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: empty message", domain.ErrInvalidInput)
	}

	docContext, sources, err := s.buildContext(ctx, sourceKey)
	if err != nil {
		return nil, fmt.Errorf("build chat context: %w", err)
	}

	prompt := buildChatPrompt(message, docContext, history)

	reply, err := s.llm.Generate(ctx, prompt, s.options())
	if err != nil {
		return nil, fmt.Errorf("chat generation: %w", err)
	}

	return &domain.ChatResponse{
		Message: strings.TrimSpace(reply),
		Sources: sources,
	}, nil
}

// buildContext loads (or reuses) the truncated, concatenated
// documentation text for a source key ("" means all documents).
func (s *ChatService) buildContext(ctx context.Context, sourceKey string) (string, []string, error) {
	s.mu.Lock()
	if cached, ok := s.cache[sourceKey]; ok {
		s.mu.Unlock()
		return cached.context, cached.sources, nil
	}
	s.mu.Unlock()

	docs, err := s.store.MarkdownByKey(ctx, sourceKey)
	if err != nil {
		return "", nil, err
	}

	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		content := docs[name]
		if len(content) > maxContextPerDoc {
			content = content[:maxContextPerDoc]
		}
		parts = append(parts, fmt.Sprintf("Documentation for %s:\n%s", name, content))
	}

	built := cachedContext{
		context: strings.Join(parts, contextSeparator),
		sources: names,
	}

	s.mu.Lock()
	s.cache[sourceKey] = built
	s.mu.Unlock()

	return built.context, built.sources, nil
}

func (s *ChatService) options() driven.GenerateOptions {
	opts := s.cfg.Options
	opts.Model = s.cfg.Model
	return opts
}

// buildChatPrompt assembles the chat prompt from context, recent
// history and the user's message.
func buildChatPrompt(message, docContext string, history []domain.ChatMessage) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant that answers questions about application design and documentation.\n\n")

	if docContext != "" {
		fmt.Fprintf(&b, "Context from documentation:\n%s\n\n", docContext)
	}

	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	if len(history) > 0 {
		b.WriteString("Previous conversation:\n")
		for _, msg := range history {
			role := msg.Role
			if role == "" {
				role = domain.RoleUser
			}
			fmt.Fprintf(&b, "%s%s: %s\n", strings.ToUpper(role[:1]), role[1:], msg.Content)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "User: %s\n\n", message)
	b.WriteString("Provide a helpful, accurate response based on the available context. If you don't have enough information, say so.")
	return b.String()
}
