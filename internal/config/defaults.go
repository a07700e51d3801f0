package config

import (
	"time"

	"github.com/mwootten/extractor/internal/providers"
)

// Config is the full extractor configuration.
type Config struct {
	Server    ServerConfig              `mapstructure:"server" yaml:"server"`
	Providers map[string]ProviderConfig `mapstructure:"providers" yaml:"providers"`
	Defaults  Defaults                  `mapstructure:"defaults" yaml:"defaults"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// ProviderConfig configures a single LLM provider.
type ProviderConfig struct {
	Type string `mapstructure:"type" yaml:"type"`
	// APIKey supports ${ENV_VAR} references, resolved at use time.
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url,omitempty"`
	// Patterns are globs matched against request model IDs.
	Patterns          []string `mapstructure:"patterns" yaml:"patterns"`
	DefaultModel      string   `mapstructure:"default_model" yaml:"default_model,omitempty"`
	RequestsPerMinute int      `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	MaxRetries        int      `mapstructure:"max_retries" yaml:"max_retries"`
	Enabled           bool     `mapstructure:"enabled" yaml:"enabled"`
}

// Defaults holds request-level defaults.
type Defaults struct {
	ModelID string `mapstructure:"model_id" yaml:"model_id"`
}

// DefaultConfig returns the built-in defaults: Gemini and OpenAI providers
// keyed off environment variables, matching model IDs by prefix.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Providers: map[string]ProviderConfig{
			"gemini": {
				Type:              "gemini",
				APIKey:            "${GEMINI_API_KEY}",
				Patterns:          []string{"gemini-*"},
				RequestsPerMinute: 60,
				MaxRetries:        3,
				Enabled:           true,
			},
			"openai": {
				Type:              "openai",
				APIKey:            "${OPENAI_API_KEY}",
				Patterns:          []string{"gpt-*", "o[134]*", "chatgpt-*"},
				RequestsPerMinute: 150,
				MaxRetries:        3,
				Enabled:           true,
			},
		},
		Defaults: Defaults{
			ModelID: "gemini-2.5-flash",
		},
	}
}

// ToRegistryConfig converts the config to the provider registry's format,
// resolving ${ENV_VAR} references in API keys.
func (c *Config) ToRegistryConfig() providers.RegistryConfig {
	cfg := providers.RegistryConfig{
		Providers: make(map[string]providers.LLMProviderConfig, len(c.Providers)),
	}
	for name, pc := range c.Providers {
		cfg.Providers[name] = providers.LLMProviderConfig{
			Type:              pc.Type,
			APIKey:            ResolveEnvVars(pc.APIKey),
			BaseURL:           pc.BaseURL,
			Patterns:          pc.Patterns,
			DefaultModel:      pc.DefaultModel,
			RequestsPerMinute: pc.RequestsPerMinute,
			MaxRetries:        pc.MaxRetries,
			RetryDelay:        time.Second,
			Enabled:           pc.Enabled,
		}
	}
	return cfg
}
