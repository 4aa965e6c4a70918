package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/abhisek/testlab/internal/config"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-haiku"
	BaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-mini"
	BaseURL string // Optional. Override for OpenAI-compatible APIs.
}

type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// apiKeyEnv lists the standard key variable for each provider, in the
// order DiscoverConfig probes them.
var apiKeyEnv = []struct {
	provider string
	env      string
}{
	{"gemini", "GEMINI_API_KEY"},
	{"openai", "OPENAI_API_KEY"},
	{"anthropic", "ANTHROPIC_API_KEY"},
	{"openrouter", "OPENROUTER_API_KEY"},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	for _, k := range apiKeyEnv {
		if key := os.Getenv(k.env); key != "" {
			cfg := DefaultConfig()
			cfg.Provider = k.provider
			cfg.setAPIKey(key)
			return cfg, true
		}
	}
	return Config{}, false
}

// FromSettings builds a Config from the application's llm settings. With
// no provider configured it falls back to DiscoverConfig. ok is false when
// no provider is available and the coach should stay rule-based.
func FromSettings(s config.LLMConfig) (cfg Config, ok bool) {
	if s.Provider == "" {
		cfg, ok = DiscoverConfig()
		if !ok {
			return Config{}, false
		}
	} else {
		cfg = DefaultConfig()
		cfg.Provider = s.Provider
		if s.APIKey == "" {
			for _, k := range apiKeyEnv {
				if k.provider == s.Provider {
					cfg.setAPIKey(os.Getenv(k.env))
				}
			}
		}
	}

	if s.APIKey != "" {
		cfg.setAPIKey(s.APIKey)
	}
	if s.Model != "" {
		cfg.setModel(s.Model)
	}
	if s.BaseURL != "" {
		switch cfg.Provider {
		case "anthropic":
			cfg.Anthropic.BaseURL = s.BaseURL
		case "openai":
			cfg.OpenAI.BaseURL = s.BaseURL
		case "openrouter":
			cfg.OpenRouter.BaseURL = s.BaseURL
		}
	}
	if s.Timeout > 0 {
		cfg.Timeout = s.Timeout
	}
	return cfg, true
}

func (c *Config) setAPIKey(key string) {
	switch c.Provider {
	case "anthropic":
		c.Anthropic.APIKey = key
	case "openai":
		c.OpenAI.APIKey = key
	case "gemini":
		c.Gemini.APIKey = key
	case "openrouter":
		c.OpenRouter.APIKey = key
	}
}

func (c *Config) setModel(model string) {
	switch c.Provider {
	case "anthropic":
		c.Anthropic.Model = model
	case "openai":
		c.OpenAI.Model = model
	case "gemini":
		c.Gemini.Model = model
	case "openrouter":
		c.OpenRouter.Model = model
	}
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "anthropic":
		key = c.Anthropic.APIKey
	case "openai":
		key = c.OpenAI.APIKey
	case "gemini":
		key = c.Gemini.APIKey
	case "openrouter":
		key = c.OpenRouter.APIKey
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("an API key (llm.api_key or TESTLAB_LLM_API_KEY) is required for the %s provider", c.Provider)
	}
	return nil
}
