package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/naukri-ai/talent-ranker/internal/ai"
	"github.com/naukri-ai/talent-ranker/internal/logger"
	"github.com/naukri-ai/talent-ranker/internal/utils"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel   = "gemini-2.5-pro"
	defaultTimeout = 30 * time.Second
)

// contentCaller is the minimal surface of the genai client used by the
// generator. It exists so retry and timeout behavior is testable without the
// real backend.
type contentCaller interface {
	call(ctx context.Context, model, prompt string) (string, error)
}

// Generator wraps the Google GenAI client with retries and a bounded
// per-call timeout. Every failure surfaces as an ai.ServiceError so callers
// can degrade to their documented neutral defaults.
type Generator struct {
	caller     contentCaller
	modelName  string
	maxRetries int
	timeout    time.Duration
	log        *zap.Logger
}

// NewGenerator creates a Generator for the Gemini API backend. The timeout
// bounds each individual call; zero falls back to the 30s default so a hung
// provider can never stall a batch indefinitely.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int, timeout time.Duration, log *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Generator{
		caller:     &genaiCaller{client: client},
		modelName:  model,
		maxRetries: maxRetries,
		timeout:    timeout,
		log:        logger.WithCommonFields(log, "gemini", model),
	}, nil
}

// GenerateContent sends the prompt to Gemini and returns the first textual
// response, retrying transient failures with a linear backoff.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.caller == nil {
		return "", &ai.ServiceError{Op: "generate", Err: errors.New("gemini generator is not initialized")}
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", &ai.ServiceError{Op: "generate", Err: errors.New("prompt must not be empty")}
	}

	var lastErr error
	attempts := g.maxRetries + 1

	for attempt := 1; attempt <= attempts; attempt++ {
		output, err := g.generateOnce(ctx, prompt)
		if err == nil {
			return output, nil
		}
		lastErr = err

		if attempt < attempts {
			g.log.Debug("gemini call failed, retrying",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			if waitErr := utils.WaitFor(ctx, time.Duration(attempt)*time.Second); waitErr != nil {
				lastErr = waitErr
				break
			}
		}
	}

	return "", &ai.ServiceError{Op: "generate", Err: lastErr}
}

func (g *Generator) generateOnce(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	output, err := g.caller.call(callCtx, g.modelName, prompt)
	if err != nil {
		return "", err
	}

	output = strings.TrimSpace(output)
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

type genaiCaller struct {
	client *genai.Client
}

func (c *genaiCaller) call(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return builder.String(), nil
}
