package services

import (
	"encoding/json"
	"errors"
	"strings"
)

// errNoJSON indicates no decodable JSON object was found in the reply.
var errNoJSON = errors.New("no JSON object in response")

// decodeLenientJSON decodes an LLM reply into v, tolerating the usual ways
// models wrap JSON. It tries three tiers in order:
//
//  1. strict: the whole reply is the object
//  2. fenced: the object sits inside a ``` or ```json code fence
//  3. embedded: the object is surrounded by prose; the outermost balanced
//     {...} span is decoded
//
// Callers that receive an error keep the raw reply instead of failing the
// chunk.
func decodeLenientJSON(raw string, v any) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return errNoJSON
	}

	if err := json.Unmarshal([]byte(trimmed), v); err == nil {
		return nil
	}

	if fenced, ok := extractFencedBlock(trimmed); ok {
		if err := json.Unmarshal([]byte(fenced), v); err == nil {
			return nil
		}
	}

	if embedded, ok := extractBalancedObject(trimmed); ok {
		if err := json.Unmarshal([]byte(embedded), v); err == nil {
			return nil
		}
	}

	return errNoJSON
}

// extractFencedBlock returns the content of the first code fence.
func extractFencedBlock(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start < 0 {
		return "", false
	}

	rest := s[start+3:]
	// Skip a language tag such as "json" up to the first newline.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		firstLine := strings.TrimSpace(rest[:nl])
		if firstLine != "" && !strings.HasPrefix(firstLine, "{") {
			rest = rest[nl+1:]
		}
	}

	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}

	return strings.TrimSpace(rest[:end]), true
}

// extractBalancedObject returns the outermost balanced {...} span.
// String literals are respected so braces inside values don't break the
// balance count.
func extractBalancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]

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
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
