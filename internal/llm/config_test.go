package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetModel_FallbackChain(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierStandard: "gemini-2.5-flash",
		},
	}

	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	// Unconfigured tiers fall back to standard.
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierLite))

	empty := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Equal(t, "", empty.GetModel(TierStandard))
}

func TestWithModel_OverridesOneTierWithoutMutating(t *testing.T) {
	base := DefaultConfig()
	override := base.WithModel(TierStandard, "gemini-exp")

	assert.Equal(t, "gemini-exp", override.GetModel(TierStandard))
	assert.Equal(t, base.GetModel(TierAdvanced), override.GetModel(TierAdvanced))
	assert.NotEqual(t, "gemini-exp", base.GetModel(TierStandard))
}
