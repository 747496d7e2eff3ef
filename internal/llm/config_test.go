package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))
	assert.InDelta(t, 0.4, cfg.Temperature, 0.001)
}

func TestGetModel_Fallback(t *testing.T) {
	cfg := &Config{Models: map[ModelTier]string{TierLite: "lite-model"}}
	assert.Equal(t, "lite-model", cfg.GetModel(TierAdvanced))

	assert.Empty(t, (&Config{}).GetModel(TierStandard))
}

func TestWithModel(t *testing.T) {
	base := DefaultConfig()

	overridden := base.WithModel("custom")
	for _, tier := range []ModelTier{TierLite, TierStandard, TierAdvanced} {
		assert.Equal(t, "custom", overridden.GetModel(tier))
	}
	assert.Equal(t, "gemini-2.5-pro", base.GetModel(TierAdvanced), "original untouched")

	same := base.WithModel("")
	assert.Equal(t, base.Models, same.Models)
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierLite, TierFor(80))
	assert.Equal(t, TierStandard, TierFor(1500))
	assert.Equal(t, TierAdvanced, TierFor(3500))
}
