package advisor

import (
	"strings"
	"testing"
)

func TestParsePayload(t *testing.T) {
	payload := "```json\n" + `{
		"suggestions": [
			{"stock": "INFY", "goalId": "g1", "reason": "stable large cap", "confidence": "high"},
			{"stock": "TCS", "goal": "Dream Home", "reason": "long horizon growth", "confidence": "medium"}
		],
		"personality_summary": "You favor steady compounders."
	}` + "\n```"

	suggestions, summary, err := parsePayload(payload)
	if err != nil {
		t.Fatalf("parsePayload() = %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(suggestions))
	}
	if s := suggestions[0]; s.Stock != "INFY" || s.GoalID != "g1" || s.Confidence != High {
		t.Errorf("first suggestion = %+v", s)
	}
	if s := suggestions[1]; s.GoalID != "" || s.GoalName != "Dream Home" {
		t.Errorf("second suggestion = %+v", s)
	}
	if summary != "You favor steady compounders." {
		t.Errorf("summary = %q", summary)
	}
}

func TestParsePayloadBareArray(t *testing.T) {
	payload := `[{"stock": "ITC", "goalId": "g2", "reason": "dividend payer", "confidence": "low"}]`

	suggestions, summary, err := parsePayload(payload)
	if err != nil {
		t.Fatalf("parsePayload() = %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Stock != "ITC" {
		t.Fatalf("suggestions = %+v", suggestions)
	}
	if summary != "" {
		t.Errorf("summary = %q, want empty", summary)
	}
}

func TestParsePayloadSummaryFallbackKey(t *testing.T) {
	payload := `{"suggestions": [], "summary": "short and sweet"}`

	_, summary, err := parsePayload(payload)
	if err != nil {
		t.Fatalf("parsePayload() = %v", err)
	}
	if summary != "short and sweet" {
		t.Errorf("summary = %q", summary)
	}
}

func TestParsePayloadRejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "the market looks great today"},
		{"no suggestions key", `{"picks": []}`},
		{"suggestions not a list", `{"suggestions": {"stock": "X"}}`},
		{"missing stock", `{"suggestions": [{"goalId": "g1", "confidence": "high"}]}`},
		{"unknown confidence", `{"suggestions": [{"stock": "X", "confidence": "certain"}]}`},
		{"item not an object", `{"suggestions": ["INFY"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := parsePayload(tt.payload); err == nil {
				t.Errorf("parsePayload(%q) succeeded, want error", tt.payload)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	got := stripFences("```json\n{\"a\":1}\n```")
	if got != `{"a":1}` {
		t.Errorf("stripFences() = %q", got)
	}
	if got := stripFences("  {} "); got != "{}" {
		t.Errorf("stripFences() = %q", got)
	}
}

func TestBuildPromptEmbedsState(t *testing.T) {
	prompt, err := BuildPrompt(nil, nil)
	if err != nil {
		t.Fatalf("BuildPrompt() = %v", err)
	}
	for _, want := range []string{"HOLDINGS:", "GOALS:", "personality_summary"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt misses %q", want)
		}
	}
}
