package textproc

import (
	"encoding/json"
	"strings"
)

// ParseError is returned when no extraction tier could recover valid JSON
// from model output. It carries the original text so call sites can choose
// an explicit fallback (e.g., present the raw text instead of failing).
type ParseError struct {
	Raw string // The original model output
}

func (e *ParseError) Error() string {
	return "no parseable JSON found in model output"
}

// StripFences removes a ```json ... ``` or ``` ... ``` fenced block wrapper
// if the text contains one, returning the fence body. Text without fences is
// returned unchanged.
func StripFences(s string) string {
	trimmed := strings.TrimSpace(s)
	start := strings.Index(trimmed, "```")
	if start == -1 {
		return trimmed
	}
	body := trimmed[start+3:]
	// Drop an optional language tag on the opening fence line.
	if nl := strings.Index(body, "\n"); nl != -1 {
		firstLine := strings.TrimSpace(body[:nl])
		if firstLine == "json" || firstLine == "" {
			body = body[nl+1:]
		}
	}
	if end := strings.Index(body, "```"); end != -1 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// ExtractJSON unmarshals model output into v, tolerating the prose and code
// fences models wrap JSON in. Tiers, each tried only when the previous
// fails: fence strip, direct parse, first {...} span, first [...] span.
// When every tier fails it returns a *ParseError carrying the original text.
func ExtractJSON(raw string, v any) error {
	stripped := StripFences(raw)

	if err := json.Unmarshal([]byte(stripped), v); err == nil {
		return nil
	}

	if span, ok := spanBetween(stripped, '{', '}'); ok {
		if err := json.Unmarshal([]byte(span), v); err == nil {
			return nil
		}
	}

	if span, ok := spanBetween(stripped, '[', ']'); ok {
		if err := json.Unmarshal([]byte(span), v); err == nil {
			return nil
		}
	}

	return &ParseError{Raw: raw}
}

// spanBetween returns the substring from the first open delimiter to the
// last close delimiter.
func spanBetween(s string, open, closer byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start == -1 {
		return "", false
	}
	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}
