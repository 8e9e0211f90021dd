package qa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTokens_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		kind  TokenKind
		value float64
	}{
		{"percentage", "reduced incident rate by 75% overall", KindPercent, 75},
		{"percent word", "grew revenue 30 percent", KindPercent, 30},
		{"currency plain", "saved $250,000 annually", KindCurrency, 250000},
		{"currency magnitude", "managed a $2.5M budget", KindCurrency, 2.5e6},
		{"multiplier", "improved throughput 3.5x", KindMultiplier, 3.5},
		{"latency", "cut p99 latency to 200ms", KindLatency, 200},
		{"data volume", "processed 4TB of logs daily", KindDataVolume, 4},
		{"duration", "delivered in 6 months", KindDuration, 6},
		{"count with unit noun", "supported 1,200 users", KindCount, 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := ExtractTokens(tt.text)
			require.Len(t, tokens, 1)
			assert.Equal(t, tt.kind, tokens[0].Kind)
			assert.True(t, tokens[0].Numeric)
			assert.Equal(t, tt.value, tokens[0].Value)
		})
	}
}

func TestExtractTokens_BareNumbersIgnored(t *testing.T) {
	// Numbers without a recognized unit are not claims we can verify.
	assert.Empty(t, ExtractTokens("worked across 3 different countries offices"))
	assert.Empty(t, ExtractTokens("version 2 of the platform"))
}

func TestExtractTokens_NoDoubleClaim(t *testing.T) {
	// "200ms" must come out as latency once, not again as a bare count.
	tokens := ExtractTokens("cut latency from 900ms to 200ms")
	require.Len(t, tokens, 2)
	for _, token := range tokens {
		assert.Equal(t, KindLatency, token.Kind)
	}
}

func TestExtractTokens_Multiple(t *testing.T) {
	tokens := ExtractTokens("Reduced costs by 40% and saved $1.2M while serving 500 customers")
	require.Len(t, tokens, 3)
	assert.Equal(t, KindPercent, tokens[0].Kind)
	assert.Equal(t, KindCurrency, tokens[1].Kind)
	assert.Equal(t, KindCount, tokens[2].Kind)
}

func TestCurrencyScale(t *testing.T) {
	assert.Equal(t, 1e3, newToken("$240k", KindCurrency).Value/240)
	assert.Equal(t, 1e9, newToken("$3B", KindCurrency).Value/3)
	assert.Equal(t, 1.0, newToken("$3,000", KindCurrency).Value/3000)
}
