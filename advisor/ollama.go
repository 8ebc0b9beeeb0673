package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const (
	ollamaHostEnv  = "OLLAMA_HOST"
	ollamaModelEnv = "OLLAMA_MODEL"

	defaultOllamaHost  = "http://127.0.0.1:11434"
	defaultOllamaModel = "qwen2.5:7b"
	cloudOllamaModel   = "gpt-oss:20b-cloud"
)

// Ollama is the self-hosted inference provider: a single configured
// model, no fallback chain.
type Ollama struct {
	Host  string
	Model string
}

// NewOllama points at the configured Ollama host, honoring OLLAMA_HOST
// and OLLAMA_MODEL.
func NewOllama() *Ollama {
	host := os.Getenv(ollamaHostEnv)
	if host == "" {
		host = defaultOllamaHost
	}
	model := os.Getenv(ollamaModelEnv)
	if model == "" {
		model = defaultOllamaModel
	}
	return &Ollama{Host: host, Model: model}
}

// NewOllamaCloud is NewOllama with the cloud-served model selected.
func NewOllamaCloud() *Ollama {
	o := NewOllama()
	o.Model = cloudOllamaModel
	return o
}

func (o *Ollama) Name() string { return "ollama" }

func (o *Ollama) Models() []string { return []string{o.Model} }

// Generate runs a single non-streaming generation in JSON mode, which
// Ollama supports natively.
func (o *Ollama) Generate(ctx context.Context, model, prompt string) (string, Usage, error) {
	body, err := json.Marshal(map[string]any{
		"model":  model,
		"prompt": prompt,
		"format": "json",
		"stream": false,
	})
	if err != nil {
		return "", Usage{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(o.Host, "/")+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", Usage{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", Usage{}, fmt.Errorf("ollama %q: %w", model, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", Usage{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return "", Usage{}, fmt.Errorf("ollama %q: %s: %s", model, resp.Status, strings.TrimSpace(string(data)))
	}

	var payload struct {
		Response        string `json:"response"`
		PromptEvalCount int    `json:"prompt_eval_count"`
		EvalCount       int    `json:"eval_count"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", Usage{}, fmt.Errorf("cannot parse ollama response: %w", err)
	}

	usage := Usage{
		PromptTokens:   payload.PromptEvalCount,
		ResponseTokens: payload.EvalCount,
		TotalTokens:    payload.PromptEvalCount + payload.EvalCount,
	}
	return payload.Response, usage, nil
}
