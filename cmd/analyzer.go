package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/naukri-ai/talent-ranker/internal/ai"
	"github.com/naukri-ai/talent-ranker/internal/ai/gemini"
	"github.com/naukri-ai/talent-ranker/internal/secrets"

	"go.uber.org/zap"
)

// newAnalyzer builds the configured text analyzer. A nil return with a nil
// error means the analyzer is disabled; callers fall back to deterministic
// defaults.
func newAnalyzer(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Analyzer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	timeout := time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, timeout, logger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAnalyzer(generator, logger, cfg.Gemini.MaxLogLength), nil
}
