// Package llm wraps the generative model behind résumé enhancement.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short rewrites such as a headline
	TierLite ModelTier = "lite"
	// TierStandard is for section-length rewrites
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long, dense sections
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Config holds the model configuration
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: 0.4,
	}
}

// GetModel returns the model name for a given tier, falling back to standard then lite
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config using model for every tier.
// An empty model returns an unchanged copy.
func (c *Config) WithModel(model string) *Config {
	cp := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		cp.Models[k] = v
		if model != "" {
			cp.Models[k] = model
		}
	}
	return cp
}

// TierFor picks a tier by input size in runes
func TierFor(runes int) ModelTier {
	switch {
	case runes <= 200:
		return TierLite
	case runes <= 2000:
		return TierStandard
	default:
		return TierAdvanced
	}
}
