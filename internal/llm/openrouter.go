package llm

import (
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "anthropic/claude-sonnet-4"
	defaultSiteURL           = "http://localhost:3000"
	defaultAppTitle          = "LogiClue"
)

// OpenRouterProvider wraps OpenAIProvider with OpenRouter-specific defaults.
// OpenRouter exposes an OpenAI-compatible API, so the underlying SDK is reused.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
// Every request carries the HTTP-Referer and X-Title attribution headers.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultOpenRouterModel
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = baseURL
	config.HTTPClient = &http.Client{
		Transport: &attributionTransport{
			base:     http.DefaultTransport,
			referer:  valueOr(cfg.SiteURL, defaultSiteURL),
			appTitle: valueOr(cfg.AppTitle, defaultAppTitle),
		},
	}

	return &OpenRouterProvider{OpenAIProvider: newOpenAIProvider(config, model, true)}, nil
}

// attributionTransport sets the OpenRouter app attribution headers.
type attributionTransport struct {
	base     http.RoundTripper
	referer  string
	appTitle string
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("HTTP-Referer", t.referer)
	r.Header.Set("X-Title", t.appTitle)
	return t.base.RoundTrip(r)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
