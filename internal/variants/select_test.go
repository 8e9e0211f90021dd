package variants

import (
	"testing"

	"github.com/jonathan/cv-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobContext() *types.JobContext {
	return &types.JobContext{
		RoleCategory: "platform_engineering",
		CompetencyWeights: types.CompetencyWeights{
			Delivery: 40, Process: 20, Architecture: 25, Leadership: 15,
		},
		TopKeywords:       []string{"Kubernetes", "Terraform"},
		TechnicalSkills:   []string{"Go", "Kubernetes"},
		ImpliedPainPoints: []string{"slow deployments"},
	}
}

func roleWithVariants() *types.RoleRecord {
	return &types.RoleRecord{
		ID:      "acme-sre",
		Company: "Acme",
		Title:   "SRE",
		Period:  "2021-2024",
		Achievements: []string{
			"Cut deploy time from 45 minutes to 8 minutes",
			"Reduced incident rate by 75% through SRE practices",
		},
		Variants: []types.AchievementVariant{
			{
				AchievementID: "a1",
				Text:          "Cut deploy time from 45 minutes to 8 minutes by introducing Kubernetes-based pipelines",
				Keywords:      []string{"Kubernetes"},
				Skills:        []string{"Kubernetes", "Go"},
				PainPoints:    []string{"slow deployments"},
			},
			{
				AchievementID: "a1",
				Text:          "Shortened release cycles from 45 to 8 minutes",
			},
			{
				AchievementID: "a2",
				Text:          "Reduced incident rate by 75% through SRE practices and runbook automation",
				Skills:        []string{"Go"},
			},
		},
	}
}

func TestSelect_RanksByRelevanceAndAvoidsAchievementReuse(t *testing.T) {
	result, ok := Select(roleWithVariants(), jobContext(), 3)
	require.True(t, ok)
	require.NotNil(t, result)

	assert.True(t, result.FromVariants)
	// Three variants, but only two distinct achievement ids.
	require.Len(t, result.Bullets, 2)
	assert.Contains(t, result.Bullets[0].Text, "Kubernetes")
	assert.Equal(t, "Cut deploy time from 45 minutes to 8 minutes", result.Bullets[0].SourceText)
	assert.Equal(t, "Kubernetes", result.Bullets[0].JDKeywordUsed)
	assert.Equal(t, "slow deployments", result.Bullets[0].PainPointAddressed)
}

func TestSelect_NoVariantsSignalsFallback(t *testing.T) {
	role := &types.RoleRecord{
		ID:           "r1",
		Company:      "Acme",
		Title:        "SRE",
		Period:       "2021",
		Achievements: []string{"Did things"},
	}

	_, ok := Select(role, jobContext(), 3)
	assert.False(t, ok)
}

func TestSelect_TargetCountCapsSelection(t *testing.T) {
	result, ok := Select(roleWithVariants(), jobContext(), 1)
	require.True(t, ok)
	assert.Len(t, result.Bullets, 1)
}

func TestSelect_IsDeterministic(t *testing.T) {
	first, ok := Select(roleWithVariants(), jobContext(), 3)
	require.True(t, ok)

	for i := 0; i < 5; i++ {
		again, ok := Select(roleWithVariants(), jobContext(), 3)
		require.True(t, ok)
		require.Len(t, again.Bullets, len(first.Bullets))
		for j := range again.Bullets {
			assert.Equal(t, first.Bullets[j].Text, again.Bullets[j].Text)
		}
	}
}

func TestScoreVariants_TaglessVariantScoresLower(t *testing.T) {
	scored := ScoreVariants(roleWithVariants().Variants, jobContext())
	require.Len(t, scored, 3)
	assert.Greater(t, scored[0].Score, scored[len(scored)-1].Score)
	assert.Equal(t, "a1", scored[0].Variant.AchievementID)
}
