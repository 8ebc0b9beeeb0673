package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// stripFences removes incidental markdown code-fence wrapping that models
// add despite being told to return bare JSON.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// parsePayload turns raw model output into a validated suggestion list
// and an optional summary. Any deviation from the schema is an error, the
// caller treats it as a provider failure and moves on to the next model.
func parsePayload(text string) ([]Suggestion, string, error) {
	var jobj any
	if err := json.Unmarshal([]byte(stripFences(text)), &jobj); err != nil {
		return nil, "", fmt.Errorf("model output is not valid JSON: %w", err)
	}

	// The list is usually at $.suggestions, but some models return the
	// bare array; accept both, nothing else.
	jval, err := jsonpath.Get("$.suggestions", jobj)
	if err != nil {
		if list, ok := jobj.([]any); ok {
			jval = list
		} else {
			return nil, "", fmt.Errorf("model output carries no suggestions list: %w", err)
		}
	}
	list, ok := jval.([]any)
	if !ok {
		return nil, "", fmt.Errorf("suggestions is not a list, got %T", jval)
	}

	suggestions := make([]Suggestion, 0, len(list))
	for i, item := range list {
		s, err := parseSuggestion(item)
		if err != nil {
			return nil, "", fmt.Errorf("suggestion %d: %w", i, err)
		}
		suggestions = append(suggestions, s)
	}

	return suggestions, summaryOf(jobj), nil
}

// parseSuggestion validates a single untrusted suggestion object. A stock
// symbol and a known confidence are mandatory; the goal reference fields
// are carried through as-is for the reconciler to resolve.
func parseSuggestion(item any) (Suggestion, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return Suggestion{}, fmt.Errorf("not an object, got %T", item)
	}
	stock, _ := m["stock"].(string)
	if strings.TrimSpace(stock) == "" {
		return Suggestion{}, fmt.Errorf("missing stock symbol")
	}
	rawConfidence, _ := m["confidence"].(string)
	confidence, err := ParseConfidence(strings.ToLower(rawConfidence))
	if err != nil {
		return Suggestion{}, err
	}
	goalID, _ := m["goalId"].(string)
	goalName, _ := m["goal"].(string)
	reason, _ := m["reason"].(string)
	return Suggestion{
		Stock:      stock,
		GoalID:     goalID,
		GoalName:   goalName,
		Reason:     reason,
		Confidence: confidence,
	}, nil
}

// summaryOf extracts the optional one-sentence summary, under either of
// the keys models have been seen using.
func summaryOf(jobj any) string {
	for _, path := range []string{"$.personality_summary", "$.summary"} {
		if jval, err := jsonpath.Get(path, jobj); err == nil {
			if s, ok := jval.(string); ok {
				return s
			}
		}
	}
	return ""
}
