package service

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"

	"github.com/kovaldeepai/server/internal/models"
)

// Sampling parameters for coaching replies.
const (
	chatTemperature = 0.7
	chatMaxTokens   = 800
)

// VertexLLM implements the LLM interface using Vertex AI Gemini models.
type VertexLLM struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// VertexLLMConfig carries the construction parameters.
type VertexLLMConfig struct {
	ProjectID       string
	Location        string
	Model           string // e.g. "gemini-2.0-flash-lite-001"
	CredentialsFile string // empty → ambient credentials
}

// NewVertexLLM creates a chat completion client with fixed sampling
// parameters (temperature 0.7, max 800 output tokens).
func NewVertexLLM(ctx context.Context, cfg VertexLLMConfig) (*VertexLLM, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(chatTemperature)
	model.SetMaxOutputTokens(chatMaxTokens)

	return &VertexLLM{
		client: client,
		model:  model,
	}, nil
}

// Generate runs a single completion over the assembled messages and returns
// the first candidate's trimmed text. One attempt, no retries; the caller
// maps failures to fallback strings.
func (l *VertexLLM) Generate(ctx context.Context, messages []models.Message) (string, error) {
	var sb strings.Builder
	for i, m := range messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(m.Content)
	}

	resp, err := l.model.GenerateContent(ctx, genai.Text(sb.String()))
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type")
	}
	return strings.TrimSpace(string(text)), nil
}

// Close closes the Vertex AI client.
func (l *VertexLLM) Close() error {
	return l.client.Close()
}
