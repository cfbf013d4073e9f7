package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Provider selects which LLM backend serves completions. It is resolved once
// from configuration; the zero value is ProviderNone.
type Provider string

const (
	ProviderNone      Provider = ""
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

var (
	ErrNoProvider      = errors.New("no AI provider configured")
	ErrUnknownProvider = errors.New("unknown AI provider")
	ErrEmptyCompletion = errors.New("AI provider returned an empty completion")
)

// ParseProvider maps a configuration value to a Provider. Empty and "none"
// both mean no provider.
func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ProviderNone, nil
	case "openai":
		return ProviderOpenAI, nil
	case "anthropic":
		return ProviderAnthropic, nil
	case "gemini":
		return ProviderGemini, nil
	default:
		return ProviderNone, fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
}

type Config struct {
	Provider Provider
	APIKey   string
	Model    string
	// BaseURL overrides the provider's public endpoint (tests, proxies).
	BaseURL string
}

type Prompt struct {
	System string
	User   string
}

// Client produces a text completion for a prompt.
type Client interface {
	Provider() Provider
	Complete(ctx context.Context, p Prompt) (string, error)
}

// New returns the client for cfg.Provider. ProviderNone yields a client whose
// Complete always fails with ErrNoProvider.
func New(cfg Config, httpClient *http.Client) (Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if cfg.Provider != ProviderNone && cfg.APIKey == "" {
		return nil, eris.Errorf("AI provider %q requires AI_API_KEY", cfg.Provider)
	}

	switch cfg.Provider {
	case ProviderNone:
		return noneClient{}, nil
	case ProviderOpenAI:
		return &openAIClient{cfg: withDefaults(cfg, "https://api.openai.com/v1", "gpt-4o-mini"), http: httpClient}, nil
	case ProviderAnthropic:
		return &anthropicClient{cfg: withDefaults(cfg, "https://api.anthropic.com/v1", "claude-3-5-haiku-latest"), http: httpClient}, nil
	case ProviderGemini:
		return &geminiClient{cfg: withDefaults(cfg, "https://generativelanguage.googleapis.com/v1beta", "gemini-1.5-flash"), http: httpClient}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

func withDefaults(cfg Config, baseURL, model string) Config {
	if cfg.BaseURL == "" {
		cfg.BaseURL = baseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = model
	}
	return cfg
}

type noneClient struct{}

func (noneClient) Provider() Provider { return ProviderNone }

func (noneClient) Complete(context.Context, Prompt) (string, error) {
	return "", ErrNoProvider
}
