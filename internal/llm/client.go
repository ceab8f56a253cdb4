package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/edustack/school-api/pkg/config"
	appErrors "github.com/edustack/school-api/pkg/errors"
)

// Completion is the result of one successful provider call.
type Completion struct {
	Text     string
	Provider string
	Model    string
}

// AttemptObserver receives the outcome of each provider call, typically
// a metrics sink.
type AttemptObserver interface {
	RecordAIAttempt(provider, outcome string)
}

// Client fans a prompt across the configured providers in order and
// returns the first successful completion. Provider order is decided at
// construction time and never changes at runtime.
type Client struct {
	providers   []Provider
	callTimeout time.Duration
	logger      *zap.Logger
	observer    AttemptObserver
}

// New builds a client over an explicit provider list.
func New(providers []Provider, callTimeout time.Duration, logger *zap.Logger) *Client {
	if callTimeout <= 0 {
		callTimeout = 120 * time.Second
	}
	return &Client{providers: providers, callTimeout: callTimeout, logger: logger}
}

// FromConfig builds a client from the configured provider list, skipping
// any provider whose API key is empty.
func FromConfig(cfg config.AIConfig, logger *zap.Logger) *Client {
	httpClient := &http.Client{Timeout: cfg.CallTimeout}

	providers := make([]Provider, 0, len(cfg.Providers))
	for _, pc := range cfg.Providers {
		if strings.TrimSpace(pc.APIKey) == "" {
			continue
		}
		switch pc.Name {
		case "claude":
			providers = append(providers, NewAnthropicProvider(httpClient, pc.APIKey, pc.Model, cfg.MaxTokens))
		case "openai":
			providers = append(providers, NewOpenAIProvider(httpClient, pc.APIKey, pc.Model, cfg.MaxTokens))
		case "xai":
			providers = append(providers, NewXAIProvider(httpClient, pc.APIKey, pc.Model, cfg.MaxTokens))
		case "gemini":
			providers = append(providers, NewGeminiProvider(httpClient, pc.APIKey, pc.Model, cfg.MaxTokens))
		case "deepseek":
			providers = append(providers, NewDeepSeekProvider(httpClient, pc.APIKey, pc.Model, cfg.MaxTokens))
		}
	}

	return New(providers, cfg.CallTimeout, logger)
}

// WithObserver attaches an attempt observer and returns the client.
func (c *Client) WithObserver(o AttemptObserver) *Client {
	c.observer = o
	return c
}

// Configured reports whether at least one provider is available.
func (c *Client) Configured() bool {
	return len(c.providers) > 0
}

// ProviderNames returns the providers in call order.
func (c *Client) ProviderNames() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// Complete tries each provider in order and returns the first successful
// completion. Failures are collected so the terminal error names every
// provider that was tried. Context cancellation aborts the chain.
func (c *Client) Complete(ctx context.Context, prompt string) (*Completion, error) {
	if len(c.providers) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoProviderConfigured, "")
	}

	failures := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		if err := ctx.Err(); err != nil {
			msg := "generation aborted before any provider was attempted"
			if len(failures) > 0 {
				msg = "generation aborted after: " + strings.Join(failures, "; ")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrAllProvidersFailed.Code, appErrors.ErrAllProvidersFailed.Status, msg)
		}

		callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
		text, err := p.Complete(callCtx, prompt)
		cancel()

		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", p.Name(), err))
			if c.observer != nil {
				c.observer.RecordAIAttempt(p.Name(), "error")
			}
			if c.logger != nil {
				c.logger.Warn("ai provider call failed",
					zap.String("provider", p.Name()),
					zap.String("model", p.Model()),
					zap.Error(err))
			}
			continue
		}

		if c.observer != nil {
			c.observer.RecordAIAttempt(p.Name(), "success")
		}
		if c.logger != nil {
			c.logger.Info("ai provider call succeeded",
				zap.String("provider", p.Name()),
				zap.String("model", p.Model()))
		}
		return &Completion{Text: text, Provider: p.Name(), Model: p.Model()}, nil
	}

	return nil, appErrors.Clone(appErrors.ErrAllProvidersFailed,
		"all configured AI providers failed: "+strings.Join(failures, "; "))
}
