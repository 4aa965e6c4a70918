package llm

import (
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// openRouterTitle is reported in the X-Title header so usage shows up
	// under the app's name on the OpenRouter dashboard.
	openRouterTitle = "Test Lab"
)

// NewOpenRouterProvider targets OpenRouter through its OpenAI-compatible
// API. Model IDs are passed through without friendly-name mapping.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	client := &http.Client{Transport: titledTransport{base: http.DefaultTransport, title: openRouterTitle}}
	return newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	}, client)
}

// titledTransport stamps every request with an X-Title header.
type titledTransport struct {
	base  http.RoundTripper
	title string
}

func (t titledTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-Title", t.title)
	return t.base.RoundTrip(req)
}
