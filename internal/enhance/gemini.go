package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/resume-sections/internal/llm"
	"github.com/jonathan/resume-sections/internal/logger"
	"github.com/jonathan/resume-sections/internal/prompts"
)

// GeminiEnhancer implements Enhancer with an LLM client and the embedded prompts
type GeminiEnhancer struct {
	client   llm.Client
	maxRunes int
	logger   *zap.Logger
}

// NewGeminiEnhancer creates an enhancer; maxRunes bounds the requested output length
func NewGeminiEnhancer(client llm.Client, maxRunes int, log *zap.Logger) *GeminiEnhancer {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxInputRunes
	}
	return &GeminiEnhancer{client: client, maxRunes: maxRunes, logger: logger.OrNop(log)}
}

// Enhance implements Enhancer
func (g *GeminiEnhancer) Enhance(ctx context.Context, req Request) (*Result, error) {
	key := prompts.KeyEnhanceSection
	if req.Details {
		key = prompts.KeyEnhanceDetails
	}
	prompt, err := prompts.Render(prompts.EnhanceFile, key, map[string]string{
		"Language": req.Language,
		"Section":  req.Section,
		"Text":     req.Text,
		"MaxRunes": strconv.Itoa(g.maxRunes),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	tier := llm.TierFor(utf8.RuneCountInString(req.Text))
	g.logger.Debug("calling model", zap.String("model", g.client.GetModel(tier)), zap.String("prompt_key", key))

	raw, err := g.client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return nil, err
	}

	var res Result
	if err := json.Unmarshal([]byte(llm.ExtractJSONObject(raw)), &res); err != nil {
		return nil, fmt.Errorf("failed to parse model response %q: %w", logger.Truncate(raw, 120), err)
	}
	return &res, nil
}
