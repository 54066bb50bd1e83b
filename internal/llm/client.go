// Package llm wraps the supported LLM providers behind a single completion
// interface and decodes structured (JSON) answers into Go types.
package llm

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

var ErrMissingAPIKey = errors.New("missing API key")

// Request is a single-turn completion request.
type Request struct {
	System string
	Prompt string
	// JSON asks the provider for a JSON object response when it supports
	// a dedicated response format.
	JSON bool
}

// Client sends completion requests to a provider.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}

// RetryConfig controls retries of transient provider errors. Delays are in
// milliseconds.
type RetryConfig struct {
	Attempts     int    `mapstructure:"attempts"`
	InitialDelay int    `mapstructure:"initial_delay"`
	MaxDelay     int    `mapstructure:"max_delay"`
	BackoffType  string `mapstructure:"backoff_type"`
}

// Config selects and configures a provider.
type Config struct {
	Provider  string      `mapstructure:"provider"`
	Model     string      `mapstructure:"model"`
	MaxTokens int         `mapstructure:"max_tokens"`
	BaseURL   string      `mapstructure:"base_url"`
	Retry     RetryConfig `mapstructure:"retry"`
}

// DefaultRetryConfig is used when no retry settings are configured.
var DefaultRetryConfig = RetryConfig{
	Attempts:     3,
	InitialDelay: 1000,
	MaxDelay:     10000,
	BackoffType:  "exponential",
}

var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-4o",
	ProviderAnthropic: "claude-sonnet-4-5",
	ProviderGemini:    "gemini-2.5-pro",
}

var apiKeyEnvVars = map[string]string{
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderGemini:    "GOOGLE_API_KEY",
}

// Normalize fills defaults for provider, model, token limit and retries.
func (c Config) Normalize() Config {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	if c.Model == "" {
		c.Model = defaultModels[c.Provider]
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 8192
	}
	if c.Retry.Attempts <= 0 {
		c.Retry = DefaultRetryConfig
	}
	return c
}

// APIKeyEnvVar names the environment variable holding the provider's key.
func APIKeyEnvVar(provider string) string {
	return apiKeyEnvVars[strings.ToLower(provider)]
}

// HasAPIKey reports whether the key for provider is set.
func HasAPIKey(provider string) bool {
	env := APIKeyEnvVar(provider)
	return env != "" && os.Getenv(env) != ""
}

// NewFromConfig builds the client for the configured provider.
func NewFromConfig(ctx context.Context, cfg Config) (Client, error) {
	cfg = cfg.Normalize()

	env := APIKeyEnvVar(cfg.Provider)
	if env == "" {
		return nil, errors.Errorf("unknown LLM provider %q (expected openai, anthropic or gemini)", cfg.Provider)
	}
	apiKey := os.Getenv(env)
	if apiKey == "" {
		return nil, errors.Wrapf(ErrMissingAPIKey, "%s is not set", env)
	}

	switch cfg.Provider {
	case ProviderAnthropic:
		return NewAnthropicClient(cfg, apiKey), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg, apiKey)
	default:
		return NewOpenAIClient(cfg, apiKey), nil
	}
}
