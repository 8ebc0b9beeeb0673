package advisor

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// geminiModels is the ordered fallback list, tried in sequence until one
// returns parseable output.
var geminiModels = []string{
	"gemini-3-flash-preview",
	"gemini-1.5-flash",
	"gemini-1.5-pro",
}

// Gemini is the managed cloud provider, backed by the Gemini API. The
// client reads its API key from the environment (GEMINI_API_KEY).
type Gemini struct {
	client *genai.Client
	models []string
}

// NewGemini initializes the Gemini client.
func NewGemini(ctx context.Context) (*Gemini, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize Gemini client: %w", err)
	}
	return &Gemini{client: client, models: geminiModels}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Models() []string { return g.models }

// Generate asks one Gemini model for a completion of the prompt.
func (g *Gemini) Generate(ctx context.Context, model, prompt string) (string, Usage, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", Usage{}, fmt.Errorf("gemini %q: %w", model, err)
	}
	text := resp.Text()
	if text == "" {
		return "", Usage{}, fmt.Errorf("gemini %q returned an empty response", model)
	}

	var usage Usage
	if meta := resp.UsageMetadata; meta != nil {
		usage = Usage{
			PromptTokens:   int(meta.PromptTokenCount),
			ResponseTokens: int(meta.CandidatesTokenCount),
			TotalTokens:    int(meta.TotalTokenCount),
		}
	}
	return text, usage, nil
}
