package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractError reports that no parsable JSON payload could be found in a
// model response. Preview carries the first 100 characters of the raw text
// for debugging.
type ExtractError struct {
	Preview string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("malformed model response, no JSON payload found: %q", e.Preview)
}

// ResponseExtractor pulls the structured payload out of free-form generative
// output. Models routinely preface or suffix the JSON with prose or wrap it
// in fenced code blocks, so extraction is layered: fence-aware slicing first,
// then a bracket scan over the whole text.
type ResponseExtractor struct{}

func NewResponseExtractor() *ResponseExtractor {
	return &ResponseExtractor{}
}

// Extract returns the decoded JSON value embedded in rawText, or an
// *ExtractError when nothing parses.
func (re *ResponseExtractor) Extract(rawText string) (any, error) {
	candidate := re.sliceCandidate(rawText)

	if value, err := parseJSON(candidate); err == nil {
		return value, nil
	}

	// The fenced/trimmed slice did not parse. Scan the original text for the
	// outermost object or array instead.
	for _, scanned := range bracketScan(rawText) {
		if value, err := parseJSON(scanned); err == nil {
			return value, nil
		}
	}

	return nil, &ExtractError{Preview: preview(rawText, 100)}
}

// sliceCandidate picks the most likely JSON substring: a ```json fenced
// block, then any fenced block, then the trimmed whole text.
func (re *ResponseExtractor) sliceCandidate(rawText string) string {
	if idx := strings.Index(rawText, "```json"); idx != -1 {
		rest := rawText[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}

	if idx := strings.Index(rawText, "```"); idx != -1 {
		rest := rawText[idx+len("```"):]
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}

	return strings.TrimSpace(rawText)
}

// bracketScan collects candidate substrings spanning the first opening
// bracket to the last closing one, array form first so a prose-wrapped array
// of objects is not mistaken for a single object.
func bracketScan(text string) []string {
	var candidates []string

	startArr := strings.Index(text, "[")
	endArr := strings.LastIndex(text, "]")
	if startArr != -1 && endArr > startArr {
		candidates = append(candidates, text[startArr:endArr+1])
	}

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	if startObj != -1 && endObj > startObj {
		candidates = append(candidates, text[startObj:endObj+1])
	}

	return candidates
}

func parseJSON(candidate string) (any, error) {
	var value any
	if err := json.Unmarshal([]byte(candidate), &value); err != nil {
		return nil, err
	}
	switch value.(type) {
	case map[string]any, []any:
		return value, nil
	default:
		// Bare strings and numbers are valid JSON but never a payload the
		// pipeline can use.
		return nil, fmt.Errorf("payload is not an object or array")
	}
}

func preview(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n]
}
