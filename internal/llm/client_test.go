package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edustack/school-api/pkg/config"
	appErrors "github.com/edustack/school-api/pkg/errors"
)

type fakeProvider struct {
	name  string
	model string
	text  string
	err   error
	calls int
}

func (f *fakeProvider) Name() string  { return f.name }
func (f *fakeProvider) Model() string { return f.model }

func (f *fakeProvider) Complete(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func TestClient_Complete_FirstProviderWins(t *testing.T) {
	first := &fakeProvider{name: "openai", model: "gpt-4o", text: `{"ok": true}`}
	second := &fakeProvider{name: "gemini", model: "gemini-1.5-pro", text: "unused"}

	client := New([]Provider{first, second}, time.Second, zap.NewNop())

	result, err := client.Complete(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, result.Text)
	assert.Equal(t, "openai", result.Provider)
	assert.Equal(t, "gpt-4o", result.Model)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "later providers must not be attempted after a success")
}

func TestClient_Complete_FallsThroughOnFailure(t *testing.T) {
	first := &fakeProvider{name: "claude", model: "claude-3-5-sonnet-20241022", err: errors.New("status 529: overloaded")}
	second := &fakeProvider{name: "openai", model: "gpt-4o", text: "answer"}

	client := New([]Provider{first, second}, time.Second, zap.NewNop())

	result, err := client.Complete(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "answer", result.Text)
	assert.Equal(t, "openai", result.Provider)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestClient_Complete_AllProvidersFailed(t *testing.T) {
	first := &fakeProvider{name: "claude", model: "m1", err: errors.New("status 401: invalid key")}
	second := &fakeProvider{name: "xai", model: "m2", err: errors.New("connection refused")}

	client := New([]Provider{first, second}, time.Second, zap.NewNop())

	result, err := client.Complete(context.Background(), "prompt")

	require.Error(t, err)
	assert.Nil(t, result)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrAllProvidersFailed.Code, appErr.Code)
	// The aggregate message names every provider and its failure reason.
	assert.Contains(t, appErr.Message, "claude: status 401: invalid key")
	assert.Contains(t, appErr.Message, "xai: connection refused")
}

func TestClient_Complete_NoProviderConfigured(t *testing.T) {
	client := New(nil, time.Second, zap.NewNop())

	result, err := client.Complete(context.Background(), "prompt")

	require.Error(t, err)
	assert.Nil(t, result)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNoProviderConfigured.Code, appErr.Code)
}

func TestClient_Complete_ContextCancelledStopsChain(t *testing.T) {
	first := &fakeProvider{name: "claude", model: "m1", err: errors.New("timeout")}
	second := &fakeProvider{name: "openai", model: "m2", text: "late answer"}

	client := New([]Provider{first, second}, time.Second, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := client.Complete(ctx, "prompt")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 0, first.calls)
	assert.Equal(t, 0, second.calls)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrAllProvidersFailed.Code, appErr.Code)
	assert.Equal(t, "generation aborted before any provider was attempted", appErr.Message)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFromConfig_SkipsUnconfiguredProviders(t *testing.T) {
	cfg := config.AIConfig{
		Providers: []config.AIProviderConfig{
			{Name: "claude", APIKey: "", Model: "claude-3-5-sonnet-20241022"},
			{Name: "openai", APIKey: "sk-test", Model: "gpt-4o"},
			{Name: "xai", APIKey: "", Model: "grok-2-latest"},
			{Name: "gemini", APIKey: "g-test", Model: "gemini-1.5-pro"},
			{Name: "deepseek", APIKey: "", Model: "deepseek-chat"},
		},
		CallTimeout: time.Second,
		MaxTokens:   1024,
	}

	client := FromConfig(cfg, zap.NewNop())

	assert.True(t, client.Configured())
	assert.Equal(t, []string{"openai", "gemini"}, client.ProviderNames())
}

func TestFromConfig_NothingConfigured(t *testing.T) {
	cfg := config.AIConfig{
		Providers: []config.AIProviderConfig{
			{Name: "claude", APIKey: ""},
			{Name: "openai", APIKey: "   "},
		},
		CallTimeout: time.Second,
	}

	client := FromConfig(cfg, zap.NewNop())

	assert.False(t, client.Configured())
	assert.Empty(t, client.ProviderNames())
}
