package grading

import (
	"testing"

	"github.com/jonathan/cv-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gradeCorpus = []string{
	"Reduced incident rate by 75% through SRE practices",
	"Cut infrastructure spend by $1.2M annually",
}

func gradeJobContext() *types.JobContext {
	return &types.JobContext{
		RoleCategory:      "platform engineering",
		CompetencyWeights: types.CompetencyWeights{Delivery: 40, Process: 20, Architecture: 25, Leadership: 15},
		TopKeywords:       []string{"SRE", "Kafka"},
		TechnicalSkills:   []string{"SRE"},
		ImpliedPainPoints: []string{"reliability problems"},
	}
}

const strongDocument = `Staff SRE, Acme (2020-2024)
- Facing reliability problems, introduced SRE practices, reducing incident rate by 75%
- Cut infrastructure spend by $1.2M through Kafka consolidation
Skills: SRE, Kafka
`

func TestGrade_WeightsSumToOne(t *testing.T) {
	result := Grade(strongDocument, gradeJobContext(), gradeCorpus)

	total := 0.0
	for _, d := range result.DimensionScores {
		total += d.Weight
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestGrade_CompositeIsWeightedSum(t *testing.T) {
	result := Grade(strongDocument, gradeJobContext(), gradeCorpus)

	expected := 0.0
	for _, d := range result.DimensionScores {
		expected += d.Score * d.Weight
	}
	assert.InDelta(t, expected, result.CompositeScore, 1e-9)
}

func TestGrade_StrongDocumentPasses(t *testing.T) {
	result := Grade(strongDocument, gradeJobContext(), gradeCorpus)

	require.Len(t, result.DimensionScores, 5)
	for _, d := range result.DimensionScores {
		assert.Equal(t, 10.0, d.Score, "dimension %s", d.Dimension)
	}
	assert.InDelta(t, 10.0, result.CompositeScore, 1e-9)
	assert.True(t, result.Passed)
}

func TestGrade_FixedDimensionOrder(t *testing.T) {
	result := Grade(strongDocument, gradeJobContext(), gradeCorpus)

	var names []string
	for _, d := range result.DimensionScores {
		names = append(names, d.Dimension)
	}
	assert.Equal(t, []string{
		DimATSOptimization, DimImpactClarity, DimJDAlignment,
		DimExecutivePresence, DimAntiHallucination,
	}, names)
}

func TestGrade_LowestDimensionTargetsMissingKeywords(t *testing.T) {
	// No target keyword appears, so ATS is the weakest dimension.
	document := `Staff SRE, Acme (2020-2024)
- Facing reliability problems, automated remediation, reducing incident rate by 75%
`
	jobCtx := gradeJobContext()
	jobCtx.TopKeywords = []string{"Terraform", "Pulumi"}
	jobCtx.TechnicalSkills = nil

	result := Grade(document, jobCtx, gradeCorpus)

	assert.Equal(t, DimATSOptimization, result.LowestDimension)
	assert.Equal(t, 0.0, result.LowestScore())
	assert.False(t, result.Passed)
}

func TestGrade_FabricatedMetricLowersAntiHallucination(t *testing.T) {
	document := `Staff SRE, Acme (2020-2024)
- Facing reliability problems, introduced SRE practices, reducing incident rate by 95%
`
	result := Grade(document, gradeJobContext(), gradeCorpus)

	var antiHallucination types.DimensionScore
	for _, d := range result.DimensionScores {
		if d.Dimension == DimAntiHallucination {
			antiHallucination = d
		}
	}
	assert.Equal(t, 0.0, antiHallucination.Score)
	assert.Contains(t, antiHallucination.Rationale, "0 of 1")
}

func TestGrade_PassivePhrasingPenalized(t *testing.T) {
	passive := `Engineer, Acme
- Was involved in SRE practices and was responsible for reducing incidents by 75%
`
	active := `Engineer, Acme
- Facing outages, introduced SRE practices, reducing incidents by 75%
`
	jobCtx := gradeJobContext()

	passiveScore := dimensionScore(t, Grade(passive, jobCtx, gradeCorpus), DimExecutivePresence)
	activeScore := dimensionScore(t, Grade(active, jobCtx, gradeCorpus), DimExecutivePresence)
	assert.Less(t, passiveScore, activeScore)
}

func TestGrade_EmptyDocument(t *testing.T) {
	result := Grade("", gradeJobContext(), gradeCorpus)
	assert.False(t, result.Passed)
	assert.Equal(t, 0.0, dimensionScore(t, result, DimImpactClarity))
}

func dimensionScore(t *testing.T, result *types.GradeResult, name string) float64 {
	t.Helper()
	for _, d := range result.DimensionScores {
		if d.Dimension == name {
			return d.Score
		}
	}
	t.Fatalf("dimension %s not found", name)
	return 0
}
