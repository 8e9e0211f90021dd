package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Reduced Latency", "reduced latency"},
		{"collapses whitespace", "  led   the  team ", "led the team"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestRatio_Identical(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("Led the migration", "led  the migration"))
}

func TestRatio_Disjoint(t *testing.T) {
	ratio := Ratio("kubernetes", "qqqqqqqqqq")
	assert.Less(t, ratio, 0.2)
}

func TestRatio_NearDuplicate(t *testing.T) {
	a := "Reduced incident rate by 75% through SRE practices"
	b := "Reduced incident rate by 75% through SRE practice"
	assert.Greater(t, Ratio(a, b), 0.9)
}

func TestRatio_EmptyInput(t *testing.T) {
	assert.Equal(t, 0.0, Ratio("", "something"))
	assert.Equal(t, 1.0, Ratio("", ""))
}
