// Package coerce turns free-text model output into a JSON object.
//
// Vision models are asked for pure JSON but routinely wrap it in markdown
// fences or conversational filler. ParseObject runs a fixed chain of
// extraction strategies, most-trusted first, and stops at the first one that
// yields a decodable object.
package coerce

import (
	"encoding/json"
	"regexp"
	"strings"
)

// snippetLimit bounds how much raw model output a MalformedResponseError
// carries, so error payloads stay log-safe.
const snippetLimit = 200

var (
	jsonFenceRe = regexp.MustCompile("(?s)```json\\s*(.*?)```")
	bareFenceRe = regexp.MustCompile("(?s)```\\s*(.*?)```")
)

// MalformedResponseError reports that no strategy could extract a JSON object
// from the model output. Snippet holds at most 200 characters of the raw text.
type MalformedResponseError struct {
	Snippet string
}

func (e *MalformedResponseError) Error() string {
	return "coerce: no JSON object found in model output: " + e.Snippet
}

// ParseObject extracts a single JSON object from text. Strategies are tried
// in order:
//
//  1. the whole text, trimmed, as a JSON object
//  2. the contents of the first ```json fenced block
//  3. the contents of the first bare ``` fenced block
//  4. the slice from the first '{' to the last '}'
//
// The first strategy whose candidate decodes to an object wins. If none does,
// the error is a *MalformedResponseError.
func ParseObject(text string) (map[string]any, error) {
	for _, candidate := range candidates(text) {
		if obj, ok := decodeObject(candidate); ok {
			return obj, nil
		}
	}
	return nil, &MalformedResponseError{Snippet: snippet(text)}
}

func candidates(text string) []string {
	out := []string{strings.TrimSpace(text)}
	if m := jsonFenceRe.FindStringSubmatch(text); m != nil {
		out = append(out, strings.TrimSpace(m[1]))
	}
	if m := bareFenceRe.FindStringSubmatch(text); m != nil {
		out = append(out, strings.TrimSpace(m[1]))
	}
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			out = append(out, text[start:end+1])
		}
	}
	return out
}

func decodeObject(candidate string) (map[string]any, bool) {
	if candidate == "" || !strings.HasPrefix(candidate, "{") {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func snippet(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > snippetLimit {
		return text[:snippetLimit]
	}
	return text
}
