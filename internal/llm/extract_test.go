package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/edustack/school-api/pkg/errors"
)

func TestExtractJSON_FencedBlockWithTrailingComma(t *testing.T) {
	raw := "```json\n{\"a\": 1,}\n```"

	result, err := ExtractJSON(raw)

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, result)
}

func TestExtractJSON_ProseAndEmbeddedNewline(t *testing.T) {
	raw := "Here is the result: {\"a\": \"line1\nline2\"} Thanks!"

	result, err := ExtractJSON(raw)

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": "line1 line2"}, result)
}

func TestExtractJSON_UntaggedFence(t *testing.T) {
	raw := "```\n{\"topic\": \"Fractions\"}\n```"

	result, err := ExtractJSON(raw)

	require.NoError(t, err)
	assert.Equal(t, "Fractions", result["topic"])
}

func TestExtractJSON_NestedObjectSpan(t *testing.T) {
	raw := `The plan follows. {"weeks": [{"week": 1, "topic": "Sets"}], "notes": "ok"} Hope this helps.`

	result, err := ExtractJSON(raw)

	require.NoError(t, err)
	weeks, ok := result["weeks"].([]interface{})
	require.True(t, ok)
	assert.Len(t, weeks, 1)
	assert.Equal(t, "ok", result["notes"])
}

func TestExtractJSON_BraceInsideString(t *testing.T) {
	raw := `{"explanation": "use {braces} carefully", "week": 2}`

	result, err := ExtractJSON(raw)

	require.NoError(t, err)
	assert.Equal(t, "use {braces} carefully", result["explanation"])
	assert.Equal(t, float64(2), result["week"])
}

func TestExtractJSON_TrailingCommaInArray(t *testing.T) {
	raw := `{"topics": ["algebra", "geometry",], "count": 2,}`

	result, err := ExtractJSON(raw)

	require.NoError(t, err)
	topics, ok := result["topics"].([]interface{})
	require.True(t, ok)
	assert.Len(t, topics, 2)
}

func TestExtractJSON_RepairsUnescapedQuote(t *testing.T) {
	raw := `{"title": "The "Golden" Ratio", "week": 3}`

	result, err := ExtractJSON(raw)

	require.NoError(t, err)
	assert.Equal(t, `The "Golden" Ratio`, result["title"])
	assert.Equal(t, float64(3), result["week"])
}

func TestExtractJSON_MalformedAfterRepair(t *testing.T) {
	raw := "no json here at all"

	result, err := ExtractJSON(raw)

	require.Error(t, err)
	assert.Nil(t, result)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrMalformedAIResponse.Code, appErr.Code)
}

func TestExtractJSON_TruncatesExcerptInError(t *testing.T) {
	raw := "{" + string(make([]byte, 500))

	_, err := ExtractJSON(raw)

	require.Error(t, err)
	// The diagnostic excerpt stays bounded even for large malformed output.
	assert.Less(t, len(err.Error()), 400)
}
