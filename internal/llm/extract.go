package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	appErrors "github.com/edustack/school-api/pkg/errors"
)

// Model output is near-JSON, not JSON: fenced blocks, surrounding prose,
// trailing commas, literal newlines inside string values, the occasional
// unescaped quote. ExtractJSON normalises all of that before parsing and
// applies one quote-repair pass when the first parse fails.

const malformedExcerptLimit = 200

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// ExtractJSON locates and parses the single JSON object embedded in raw
// model output. It fails with MALFORMED_AI_RESPONSE when no repair pass
// yields valid JSON.
func ExtractJSON(raw string) (map[string]interface{}, error) {
	candidate := sliceCandidate(raw)
	candidate = trailingCommaRe.ReplaceAllString(candidate, "$1")
	candidate = normalizeControlChars(candidate)

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(candidate), &result); err == nil {
		return result, nil
	}

	repaired := escapeInnerQuotes(candidate)
	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrMalformedAIResponse.Code, appErrors.ErrMalformedAIResponse.Status,
			"AI response is not valid JSON: "+truncate(candidate, malformedExcerptLimit))
	}
	return result, nil
}

// sliceCandidate narrows the raw text to the JSON span: fenced code block
// content when present, otherwise the first balanced brace span.
func sliceCandidate(raw string) string {
	text := strings.TrimSpace(raw)

	if start := strings.Index(text, "```"); start >= 0 {
		inner := text[start+3:]
		// Drop an optional language tag on the fence line.
		if nl := strings.IndexByte(inner, '\n'); nl >= 0 {
			tag := strings.TrimSpace(inner[:nl])
			if tag == "" || strings.EqualFold(tag, "json") {
				inner = inner[nl+1:]
			}
		}
		if end := strings.Index(inner, "```"); end >= 0 {
			inner = inner[:end]
		}
		return strings.TrimSpace(inner)
	}

	return braceSpan(text)
}

// braceSpan returns the span from the first '{' to its matching '}',
// tracking nesting depth and skipping braces inside string literals.
func braceSpan(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return text
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	// Unbalanced input: hand back the tail and let the parser report it.
	return text[start:]
}

// normalizeControlChars converts literal newlines, carriage returns and
// tabs into single spaces and drops any other control bytes.
func normalizeControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteByte(' ')
		case r < 0x20:
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeInnerQuotes escapes quote characters that appear inside string
// values. A quote inside a string is treated as the closing delimiter only
// when the next non-space character could legally follow a string end.
func escapeInnerQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !inString {
			if ch == '"' {
				inString = true
			}
			b.WriteByte(ch)
			continue
		}

		if escaped {
			escaped = false
			b.WriteByte(ch)
			continue
		}
		if ch == '\\' {
			escaped = true
			b.WriteByte(ch)
			continue
		}
		if ch != '"' {
			b.WriteByte(ch)
			continue
		}

		if closesString(s, i+1) {
			inString = false
			b.WriteByte(ch)
		} else {
			b.WriteString(`\"`)
		}
	}

	return b.String()
}

// closesString reports whether a quote at position i-1 can terminate a
// string value, judged by the next non-space character.
func closesString(s string, i int) bool {
	for ; i < len(s); i++ {
		switch s[i] {
		case ' ':
			continue
		case ',', '}', ']', ':':
			return true
		default:
			return false
		}
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
