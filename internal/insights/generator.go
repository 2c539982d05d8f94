// AngelaMos | 2026
// generator.go

package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/agritrace/agritrace-api/internal/config"
)

var ErrGeneratorUnavailable = errors.New("text generator unavailable")

// Generator turns a prompt into model text. Implementations return
// ErrGeneratorUnavailable when no model is configured.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type GeminiGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiGenerator(
	ctx context.Context,
	cfg config.AIConfig,
) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key: %w", ErrGeneratorUnavailable)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiGenerator{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr[float32](0.3),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("generate content: empty response")
	}

	return text, nil
}

// Offline is used when no API key is configured. Callers fall back to
// rule-based output.
type Offline struct{}

func (Offline) Generate(context.Context, string) (string, error) {
	return "", ErrGeneratorUnavailable
}

var (
	_ Generator = (*GeminiGenerator)(nil)
	_ Generator = Offline{}
)
