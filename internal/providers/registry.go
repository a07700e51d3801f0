package providers

import (
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// LLMProviderConfig configures a single provider entry.
type LLMProviderConfig struct {
	Type    string // "gemini", "openai", "mock"
	APIKey  string
	BaseURL string
	// Patterns are globs matched against request model IDs (e.g. "gemini-*").
	Patterns          []string
	DefaultModel      string
	RequestsPerMinute int
	MaxRetries        int
	RetryDelay        time.Duration
	Enabled           bool
}

// RegistryConfig is the full provider configuration.
type RegistryConfig struct {
	Providers map[string]LLMProviderConfig
}

type patternEntry struct {
	pattern string
	name    string
}

// Registry resolves model IDs to LLM clients. It supports atomic reloads so
// configuration changes apply without restarting the server.
type Registry struct {
	mu       sync.RWMutex
	clients  map[string]LLMClient
	patterns []patternEntry
	logger   *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]LLMClient),
		logger:  slog.Default(),
	}
}

// SetLogger sets the logger used for reload reporting.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if logger != nil {
		r.logger = logger
	}
}

// Register adds a client with its model ID patterns. Used directly by tests;
// production code goes through Reload.
func (r *Registry) Register(name string, client LLMClient, patterns []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = client
	for _, p := range patterns {
		r.patterns = append(r.patterns, patternEntry{pattern: p, name: name})
	}
}

// Reload replaces all registered clients from config. Entries that fail to
// construct are skipped with a log line so one bad provider does not take
// down the rest.
func (r *Registry) Reload(cfg RegistryConfig) {
	clients := make(map[string]LLMClient)
	var patterns []patternEntry

	names := make([]string, 0, len(cfg.Providers))
	for name := range cfg.Providers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		pc := cfg.Providers[name]
		if !pc.Enabled {
			continue
		}
		client, err := buildClient(pc)
		if err != nil {
			r.logger.Warn("skipping provider", "provider", name, "error", err)
			continue
		}
		clients[name] = client
		for _, p := range pc.Patterns {
			patterns = append(patterns, patternEntry{pattern: p, name: name})
		}
	}

	r.mu.Lock()
	r.clients = clients
	r.patterns = patterns
	r.mu.Unlock()
}

func buildClient(pc LLMProviderConfig) (LLMClient, error) {
	switch strings.ToLower(pc.Type) {
	case "gemini":
		return NewGeminiClient(GeminiConfig{
			APIKey:            pc.APIKey,
			DefaultModel:      pc.DefaultModel,
			RequestsPerMinute: pc.RequestsPerMinute,
			MaxRetries:        pc.MaxRetries,
			RetryDelay:        pc.RetryDelay,
		})
	case "openai":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:            pc.APIKey,
			BaseURL:           pc.BaseURL,
			DefaultModel:      pc.DefaultModel,
			RequestsPerMinute: pc.RequestsPerMinute,
			MaxRetries:        pc.MaxRetries,
			RetryDelay:        pc.RetryDelay,
		})
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown provider type %q", pc.Type)
	}
}

// ResolveModel returns the client whose patterns match the model ID.
// Patterns are tried in registration order; the first match wins.
func (r *Registry) ResolveModel(modelID string) (LLMClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.patterns {
		ok, err := path.Match(entry.pattern, modelID)
		if err != nil {
			continue
		}
		if ok {
			if client, found := r.clients[entry.name]; found {
				return client, nil
			}
		}
	}
	return nil, fmt.Errorf("no provider registered for model %q", modelID)
}

// List returns the names of registered providers, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
