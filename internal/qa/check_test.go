package qa

import (
	"strings"
	"testing"

	"github.com/jonathan/cv-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sreRole() *types.RoleRecord {
	return &types.RoleRecord{
		ID:      "r1",
		Company: "Acme",
		Title:   "Staff SRE",
		Achievements: []string{
			"Reduced incident rate by 75% through SRE practices",
			"Led on-call program for a team of 12 engineers",
			"Cut infrastructure spend by $1.2M annually",
		},
	}
}

func TestCheck_CleanBulletsPass(t *testing.T) {
	rb := &types.RoleBullets{
		Bullets: []types.GeneratedBullet{
			{
				Text:       "Facing chronic outages, introduced SRE practices, reducing incident rate by 75%",
				SourceText: "Reduced incident rate by 75% through SRE practices",
			},
			{
				Text:       "Cut infrastructure spend by $1.2M through capacity planning",
				SourceText: "Cut infrastructure spend by $1.2M annually",
			},
		},
	}

	result := Check(rb, sreRole())
	assert.True(t, result.Passed)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Empty(t, result.FlaggedBullets)
	assert.Contains(t, result.VerifiedMetrics, "75%")
	assert.Contains(t, result.VerifiedMetrics, "$1.2M")
}

func TestCheck_InflatedMetricFlagged(t *testing.T) {
	// Achievement says 75%; a bullet claiming 95% is outside the 15%
	// tolerance band and carries a declared metric, so the result hard-fails.
	rb := &types.RoleBullets{
		Bullets: []types.GeneratedBullet{
			{
				Text:         "Reduced incident rate by 95% through SRE practices",
				SourceText:   "Reduced incident rate by 75% through SRE practices",
				SourceMetric: "95%",
			},
		},
	}

	result := Check(rb, sreRole())
	assert.False(t, result.Passed)
	assert.Equal(t, 0.0, result.Confidence)
	require.NotEmpty(t, result.Issues)
	found := false
	for _, issue := range result.Issues {
		if strings.Contains(issue, "95") {
			found = true
		}
	}
	assert.True(t, found, "issues must reference the fabricated 95 figure")
}

func TestCheck_ToleranceBandAccepted(t *testing.T) {
	// 70% vs source 75% is a 6.7% relative difference, inside the band.
	rb := &types.RoleBullets{
		Bullets: []types.GeneratedBullet{
			{
				Text:       "Improved reliability posture, reducing incidents by 70%",
				SourceText: "Reduced incident rate by 75% through SRE practices",
			},
		},
	}

	result := Check(rb, sreRole())
	assert.True(t, result.Passed)
	assert.Empty(t, result.FlaggedBullets)
}

func TestCheck_LeadershipClaimNeedsSourceSupport(t *testing.T) {
	rb := &types.RoleBullets{
		Bullets: []types.GeneratedBullet{
			{
				// "founded" has no support in the source text.
				Text:       "Founded the platform engineering practice",
				SourceText: "Contributed to platform tooling improvements",
			},
		},
	}

	result := Check(rb, sreRole())
	require.Len(t, result.FlaggedBullets, 1)
	assert.Contains(t, result.Issues[0], "leadership claim")
}

func TestCheck_LeadershipSynonymAccepted(t *testing.T) {
	rb := &types.RoleBullets{
		Bullets: []types.GeneratedBullet{
			{
				// "headed" is a synonym of the source's "led".
				Text:       "Headed the on-call program across 12 engineers",
				SourceText: "Led on-call program for a team of 12 engineers",
			},
		},
	}

	result := Check(rb, sreRole())
	assert.True(t, result.Passed)
	assert.Empty(t, result.FlaggedBullets)
}

func TestCheck_LenientGateAllowsOneFlag(t *testing.T) {
	clean := types.GeneratedBullet{
		Text:       "Introduced SRE practices, reducing incident rate by 75%",
		SourceText: "Reduced incident rate by 75% through SRE practices",
	}
	fabricated := types.GeneratedBullet{
		Text:       "Served 9,000 customers with zero downtime",
		SourceText: "Reduced incident rate by 75% through SRE practices",
	}

	rb := &types.RoleBullets{
		Bullets: []types.GeneratedBullet{clean, fabricated},
	}

	result := Check(rb, sreRole())
	// One flag out of two bullets stays within max(1, ceil(2*0.4)) = 1.
	assert.True(t, result.Passed)
	assert.Len(t, result.FlaggedBullets, 1)
	assert.Equal(t, 0.5, result.Confidence)
}

func TestCheck_TooManyFlagsFail(t *testing.T) {
	fabricated := types.GeneratedBullet{
		Text:       "Served 9,000 customers across 40 countries",
		SourceText: "Reduced incident rate by 75% through SRE practices",
	}

	rb := &types.RoleBullets{
		Bullets: []types.GeneratedBullet{fabricated, fabricated, fabricated},
	}

	result := Check(rb, sreRole())
	// Three flags out of three exceeds max(1, ceil(3*0.4)) = 2.
	assert.False(t, result.Passed)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestCheck_EmptyBullets(t *testing.T) {
	result := Check(&types.RoleBullets{}, sreRole())
	assert.True(t, result.Passed)
	assert.Equal(t, 1.0, result.Confidence)
}
