package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the model provider.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter", "mock".
	Provider string

	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout bounds one logical request including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig also serves OpenRouter, which speaks the same API behind
// a different BaseURL.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// RetryConfig is exponential backoff with jitter.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "google/gemini-2.0-flash-001"
)

// DefaultConfig targets Anthropic's small model.
func DefaultConfig() Config {
	return Config{
		Provider:  "anthropic",
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:    GeminiConfig{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv overlays LEXIS_* variables on DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.Provider, "LEXIS_LLM_PROVIDER")
	set(&cfg.Anthropic.APIKey, "LEXIS_ANTHROPIC_API_KEY")
	set(&cfg.Anthropic.Model, "LEXIS_ANTHROPIC_MODEL")
	set(&cfg.OpenAI.APIKey, "LEXIS_OPENAI_API_KEY")
	set(&cfg.OpenAI.Model, "LEXIS_OPENAI_MODEL")
	set(&cfg.OpenAI.BaseURL, "LEXIS_OPENAI_BASE_URL")
	set(&cfg.Gemini.APIKey, "LEXIS_GEMINI_API_KEY")
	set(&cfg.Gemini.Model, "LEXIS_GEMINI_MODEL")

	if cfg.Provider == "openrouter" {
		set(&cfg.OpenAI.APIKey, "LEXIS_OPENROUTER_API_KEY")
		cfg.OpenAI.Model = defaultOpenRouterModel
		set(&cfg.OpenAI.Model, "LEXIS_OPENROUTER_MODEL")
		if cfg.OpenAI.BaseURL == "" {
			cfg.OpenAI.BaseURL = defaultOpenRouterBaseURL
		}
	}
	if v := os.Getenv("LEXIS_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

// DiscoverConfig looks for the vendors' conventional key variables
// (Gemini, OpenAI, Anthropic, OpenRouter, in that order) and returns a
// config for the first one set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenAI = OpenAIConfig{APIKey: k, Model: defaultOpenRouterModel, BaseURL: defaultOpenRouterBaseURL}
		return cfg, true
	}
	return Config{}, false
}

// Validate checks the selected provider has a key.
func (c Config) Validate() error {
	missing := func(env string) error {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return missing("LEXIS_ANTHROPIC_API_KEY")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return missing("LEXIS_OPENAI_API_KEY")
		}
	case "openrouter":
		if c.OpenAI.APIKey == "" {
			return missing("LEXIS_OPENROUTER_API_KEY")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return missing("LEXIS_GEMINI_API_KEY")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
