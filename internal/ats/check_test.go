package ats

import (
	"testing"

	"github.com/jonathan/cv-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bulletsWith(texts ...string) *types.RoleBullets {
	rb := &types.RoleBullets{}
	for _, text := range texts {
		rb.Bullets = append(rb.Bullets, types.GeneratedBullet{Text: text})
	}
	return rb
}

func TestCheck_HalfCoverage(t *testing.T) {
	rb := bulletsWith(
		"Automated deployments with Python tooling",
		"Migrated workloads to AWS, cutting costs 30%",
	)

	result := Check(rb, []string{"Python", "AWS", "Kubernetes", "Docker"})

	assert.Equal(t, 0.5, result.CoverageRatio)
	assert.Equal(t, []string{"Python", "AWS"}, result.KeywordsFound)
	assert.Equal(t, []string{"Kubernetes", "Docker"}, result.KeywordsMissing)
}

func TestCheck_CaseInsensitive(t *testing.T) {
	rb := bulletsWith("Ran KUBERNETES clusters at scale for payments traffic")
	result := Check(rb, []string{"kubernetes"})
	assert.Equal(t, 1.0, result.CoverageRatio)
	assert.Empty(t, result.KeywordsMissing)
}

func TestCheck_CompoundKeywordWithoutSpaces(t *testing.T) {
	rb := bulletsWith("Built the machinelearning feature store from scratch")
	result := Check(rb, []string{"machine learning"})
	assert.Equal(t, 1.0, result.CoverageRatio)
}

func TestCheck_SuggestionsCappedAtThree(t *testing.T) {
	rb := bulletsWith("Shipped internal tooling")
	result := Check(rb, []string{"Go", "Rust", "Kafka", "Terraform", "GraphQL"})

	assert.Len(t, result.KeywordsMissing, 5)
	require.Len(t, result.Suggestions, MaxSuggestions)
	// Suggestions follow keyword priority order.
	assert.Contains(t, result.Suggestions[0], "Go")
	assert.Contains(t, result.Suggestions[1], "Rust")
	assert.Contains(t, result.Suggestions[2], "Kafka")
}

func TestCheck_NoKeywords(t *testing.T) {
	result := Check(bulletsWith("anything"), nil)
	assert.Equal(t, 1.0, result.CoverageRatio)
	assert.Empty(t, result.Suggestions)
}

func TestCheckDocument(t *testing.T) {
	result := CheckDocument("Led adoption of Terraform across four teams", []string{"Terraform", "Pulumi"})
	assert.Equal(t, 0.5, result.CoverageRatio)
	assert.Equal(t, []string{"Pulumi"}, result.KeywordsMissing)
}
