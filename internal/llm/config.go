package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "openrouter", "openai", "anthropic", "gemini", "mock"
	Provider string `mapstructure:"provider" yaml:"provider"`

	OpenRouter OpenRouterConfig `mapstructure:"openrouter" yaml:"openrouter"`
	OpenAI     OpenAIConfig     `mapstructure:"openai" yaml:"openai"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic" yaml:"anthropic"`
	Gemini     GeminiConfig     `mapstructure:"gemini" yaml:"gemini"`
	Retry      RetryConfig      `mapstructure:"retry" yaml:"retry"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit" yaml:"rate_limit"`

	// CacheTTL keeps identical responses in memory. Zero disables the cache.
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Default: 120s.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey   string `mapstructure:"api_key" yaml:"api_key"`
	Model    string `mapstructure:"model" yaml:"model"`         // Default: "anthropic/claude-sonnet-4"
	BaseURL  string `mapstructure:"base_url" yaml:"base_url"`   // Default: "https://openrouter.ai/api/v1"
	SiteURL  string `mapstructure:"site_url" yaml:"site_url"`   // Sent as HTTP-Referer.
	AppTitle string `mapstructure:"app_title" yaml:"app_title"` // Sent as X-Title.
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
	Model   string `mapstructure:"model" yaml:"model"`       // Default: "gpt-4o-mini"
	BaseURL string `mapstructure:"base_url" yaml:"base_url"` // Optional. Override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
	Model   string `mapstructure:"model" yaml:"model"` // Default: "claude-sonnet"
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	Model  string `mapstructure:"model" yaml:"model"` // Default: "gemini-flash"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" yaml:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait" yaml:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait" yaml:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier" yaml:"multiplier"`
}

// RateLimitConfig bounds outbound calls. RPS zero means unlimited.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" yaml:"rps"`
	Burst int     `mapstructure:"burst" yaml:"burst"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderOpenRouter,
		OpenRouter: OpenRouterConfig{
			Model:    defaultOpenRouterModel,
			BaseURL:  defaultOpenRouterBaseURL,
			SiteURL:  defaultSiteURL,
			AppTitle: defaultAppTitle,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 120 * time.Second,
	}
}

// FillKeysFromEnv sets empty API keys from the conventional provider
// variables (OPENROUTER_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY,
// GEMINI_API_KEY).
func FillKeysFromEnv(cfg *Config) {
	fill := func(dst *string, env string) {
		if *dst == "" {
			*dst = os.Getenv(env)
		}
	}
	fill(&cfg.OpenRouter.APIKey, "OPENROUTER_API_KEY")
	fill(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	fill(&cfg.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	fill(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
}

// Model returns the configured model for the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case ProviderOpenRouter:
		return c.OpenRouter.Model
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderAnthropic:
		return c.Anthropic.Model
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderMock:
		return "mock"
	}
	return ""
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderMock:
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("retry max attempts must not be negative")
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	return nil
}
