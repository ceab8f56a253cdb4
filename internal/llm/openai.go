package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Chat-completions endpoints for the OpenAI-compatible vendors. xAI and
// DeepSeek expose the same request/response contract as OpenAI, so one
// provider type covers all three.
const (
	openAIChatURL   = "https://api.openai.com/v1/chat/completions"
	xaiChatURL      = "https://api.x.ai/v1/chat/completions"
	deepSeekChatURL = "https://api.deepseek.com/chat/completions"
)

// OpenAICompatProvider speaks the OpenAI chat-completions contract.
type OpenAICompatProvider struct {
	httpClient *http.Client
	name       string
	url        string
	apiKey     string
	model      string
	maxTokens  int
}

// NewOpenAIProvider constructs a provider against api.openai.com.
func NewOpenAIProvider(httpClient *http.Client, apiKey, model string, maxTokens int) *OpenAICompatProvider {
	return newOpenAICompat(httpClient, "openai", openAIChatURL, apiKey, model, maxTokens)
}

// NewXAIProvider constructs a provider against api.x.ai.
func NewXAIProvider(httpClient *http.Client, apiKey, model string, maxTokens int) *OpenAICompatProvider {
	return newOpenAICompat(httpClient, "xai", xaiChatURL, apiKey, model, maxTokens)
}

// NewDeepSeekProvider constructs a provider against api.deepseek.com.
func NewDeepSeekProvider(httpClient *http.Client, apiKey, model string, maxTokens int) *OpenAICompatProvider {
	return newOpenAICompat(httpClient, "deepseek", deepSeekChatURL, apiKey, model, maxTokens)
}

func newOpenAICompat(httpClient *http.Client, name, url, apiKey, model string, maxTokens int) *OpenAICompatProvider {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &OpenAICompatProvider{httpClient: httpClient, name: name, url: url, apiKey: apiKey, model: model, maxTokens: maxTokens}
}

// Name implements Provider.
func (p *OpenAICompatProvider) Name() string { return p.name }

// Model implements Provider.
func (p *OpenAICompatProvider) Model() string { return p.model }

type openAIRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Model string `json:"model"`
}

// Complete implements Provider.
func (p *OpenAICompatProvider) Complete(ctx context.Context, prompt string) (string, error) {
	payload := openAIRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		Messages:  []openAIMessage{{Role: "user", Content: prompt}},
	}
	headers := map[string]string{"Authorization": "Bearer " + p.apiKey}

	var resp openAIResponse
	if err := doJSONRequest(ctx, p.httpClient, http.MethodPost, p.url, headers, payload, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty choices in response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
