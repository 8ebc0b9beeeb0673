// Package advisor asks a language model which holdings should fund which
// goals, and reconciles its answers into committed assignments.
//
// The model output is untrusted external input: it is parsed and schema
// checked before anything reaches the book, and its goal references are
// re-resolved at acceptance time, never at generation time.
package advisor

import (
	"context"
	"fmt"
	"log"

	"github.com/etnz/goaltrack"
)

// Confidence is the model's self-reported confidence in a suggestion.
type Confidence string

const (
	High   Confidence = "high"
	Medium Confidence = "medium"
	Low    Confidence = "low"
)

// ParseConfidence validates the confidence field of a suggestion payload.
func ParseConfidence(s string) (Confidence, error) {
	switch Confidence(s) {
	case High, Medium, Low:
		return Confidence(s), nil
	default:
		return "", fmt.Errorf("unknown confidence %q", s)
	}
}

// Suggestion is a proposed assignment of one holding to one goal. It is
// ephemeral: never persisted, discarded once accepted or skipped.
//
// GoalID and GoalName are advisory only. The model may return a stale ID,
// or a goal's display name in the ID field; the Reconciler resolves them
// against the current book.
type Suggestion struct {
	Stock      string     `json:"stock"`
	GoalID     string     `json:"goalId,omitempty"`
	GoalName   string     `json:"goal,omitempty"`
	Reason     string     `json:"reason"`
	Confidence Confidence `json:"confidence"`
}

// Usage is the provider's token accounting for one generation.
type Usage struct {
	PromptTokens   int `json:"promptTokenCount"`
	ResponseTokens int `json:"candidatesTokenCount"`
	TotalTokens    int `json:"totalTokenCount"`
}

// Response is the normalized result of a suggestion run.
type Response struct {
	Suggestions []Suggestion `json:"suggestions"`
	Summary     string       `json:"personalitySummary,omitempty"`
	Usage       Usage        `json:"tokenUsage"`
	Model       string       `json:"modelUsed"`
}

// Provider is a reasoning provider capability. Models returns the ordered
// fallback list of model identifiers to try; a self-hosted provider
// typically returns a single entry.
type Provider interface {
	Name() string
	Models() []string
	Generate(ctx context.Context, model, prompt string) (string, Usage, error)
}

// Suggest serializes the holdings and goals into the advisor prompt and
// walks the provider's model list in order, returning the first response
// that parses into the expected schema. Generation and parse failures
// both advance to the next model; only exhausting the whole list is a
// terminal failure, reported as goaltrack.ErrProviderExhausted with the
// last underlying error attached.
func Suggest(ctx context.Context, p Provider, holdings []goaltrack.Holding, goals []goaltrack.Goal) (*Response, error) {
	prompt, err := BuildPrompt(holdings, goals)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, model := range p.Models() {
		log.Printf("generating suggestions with %s model %q", p.Name(), model)
		text, usage, err := p.Generate(ctx, model, prompt)
		if err != nil {
			log.Printf("model %q failed: %v", model, err)
			lastErr = err
			continue
		}
		suggestions, summary, err := parsePayload(text)
		if err != nil {
			log.Printf("model %q returned an unusable payload: %v", model, err)
			lastErr = err
			continue
		}
		return &Response{
			Suggestions: suggestions,
			Summary:     summary,
			Usage:       usage,
			Model:       model,
		}, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider %q has no models configured", p.Name())
	}
	return nil, fmt.Errorf("%w: %w", goaltrack.ErrProviderExhausted, lastErr)
}
