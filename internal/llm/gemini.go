package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const geminiURLFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

// GeminiProvider speaks the Google Generative Language API.
type GeminiProvider struct {
	httpClient *http.Client
	apiKey     string
	model      string
	maxTokens  int
}

// NewGeminiProvider constructs a Gemini-backed provider.
func NewGeminiProvider(httpClient *http.Client, apiKey, model string, maxTokens int) *GeminiProvider {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &GeminiProvider{httpClient: httpClient, apiKey: apiKey, model: model, maxTokens: maxTokens}
}

// Name implements Provider.
func (p *GeminiProvider) Name() string { return "gemini" }

// Model implements Provider.
func (p *GeminiProvider) Model() string { return p.model }

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Complete implements Provider.
func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	payload := geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{MaxOutputTokens: p.maxTokens},
	}
	url := fmt.Sprintf(geminiURLFormat, p.model, p.apiKey)

	var resp geminiResponse
	if err := doJSONRequest(ctx, p.httpClient, http.MethodPost, url, nil, payload, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates in response")
	}
	return strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text), nil
}
