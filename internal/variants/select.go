// Package variants provides deterministic selection of pre-written
// achievement variants. Selection carries zero fabrication risk: no
// generation call is ever made here.
package variants

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

const (
	// Scoring weights for variant relevance
	weightKeywordOverlap   = 0.45
	weightSkillOverlap     = 0.35
	weightPainPointOverlap = 0.20
)

// ScoredVariant pairs a variant with its relevance score for inspection.
type ScoredVariant struct {
	Variant    types.AchievementVariant
	Score      float64
	Components ScoreComponents
}

// ScoreComponents holds the individual scoring factors
type ScoreComponents struct {
	KeywordOverlap   float64
	SkillOverlap     float64
	PainPointOverlap float64
}

// Select ranks the role's pre-written variants against the job context and
// picks the top targetCount, never reusing the same achievement id twice.
// Returns ok=false when the role carries no variants; the caller falls back
// to generation.
func Select(role *types.RoleRecord, jobCtx *types.JobContext, targetCount int) (*types.RoleBullets, bool) {
	if role == nil || len(role.Variants) == 0 || targetCount <= 0 {
		return nil, false
	}

	scored := ScoreVariants(role.Variants, jobCtx)

	// Pick top-N with distinct achievement ids so the same underlying fact
	// never appears twice.
	usedAchievements := make(map[string]bool)
	bullets := make([]types.GeneratedBullet, 0, targetCount)
	keywords := make(map[string]bool)

	for _, sv := range scored {
		if len(bullets) >= targetCount {
			break
		}
		if usedAchievements[sv.Variant.AchievementID] {
			continue
		}
		usedAchievements[sv.Variant.AchievementID] = true

		sourceText := sourceAchievement(role, sv.Variant.AchievementID)
		bullet := types.GeneratedBullet{
			Text:                sv.Variant.Text,
			SourceText:          sourceText,
			JDKeywordUsed:       firstMatch(sv.Variant.Keywords, jobCtx.TopKeywords),
			PainPointAddressed:  firstMatch(sv.Variant.PainPoints, jobCtx.ImpliedPainPoints),
			AnnotationInfluence: "variant:" + sv.Variant.AchievementID,
		}
		bullets = append(bullets, bullet)

		if bullet.JDKeywordUsed != "" {
			keywords[bullet.JDKeywordUsed] = true
		}
	}

	if len(bullets) == 0 {
		return nil, false
	}

	result := &types.RoleBullets{
		RoleID:       role.ID,
		Company:      role.Company,
		Title:        role.Title,
		Period:       role.Period,
		Bullets:      bullets,
		FromVariants: true,
	}
	for kw := range keywords {
		result.KeywordsIntegrated = append(result.KeywordsIntegrated, kw)
	}
	sort.Strings(result.KeywordsIntegrated)

	return result, true
}

// ScoreVariants scores every variant and returns them sorted by relevance,
// highest first. Ties keep the original (manifest) order, so ranking is
// fully deterministic.
func ScoreVariants(variants []types.AchievementVariant, jobCtx *types.JobContext) []ScoredVariant {
	scored := make([]ScoredVariant, 0, len(variants))
	for _, v := range variants {
		components := ScoreComponents{
			KeywordOverlap:   overlapScore(v.Keywords, jobCtx.TopKeywords, v.Text),
			SkillOverlap:     overlapScore(v.Skills, jobCtx.TechnicalSkills, v.Text),
			PainPointOverlap: overlapScore(v.PainPoints, jobCtx.ImpliedPainPoints, ""),
		}
		score := components.KeywordOverlap*weightKeywordOverlap +
			components.SkillOverlap*weightSkillOverlap +
			components.PainPointOverlap*weightPainPointOverlap

		scored = append(scored, ScoredVariant{Variant: v, Score: score, Components: components})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// overlapScore measures how much of targets is covered by the variant's own
// tags, falling back to substring presence in the variant text.
func overlapScore(tags, targets []string, text string) float64 {
	if len(targets) == 0 {
		return 0.0
	}

	tagSet := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tagSet[strings.ToLower(strings.TrimSpace(tag))] = true
	}
	textLower := strings.ToLower(text)

	matches := 0
	for _, target := range targets {
		targetLower := strings.ToLower(strings.TrimSpace(target))
		if targetLower == "" {
			continue
		}
		if tagSet[targetLower] || (textLower != "" && strings.Contains(textLower, targetLower)) {
			matches++
		}
	}

	return float64(matches) / float64(len(targets))
}

// sourceAchievement resolves the raw achievement text behind a variant.
// Falls back to the variant's own text when the id cannot be resolved, so
// SourceText is never empty.
func sourceAchievement(role *types.RoleRecord, achievementID string) string {
	for i, achievement := range role.Achievements {
		if achievementIDFor(i) == achievementID {
			return achievement
		}
	}
	// Variants may also key achievements by verbatim prefix.
	for _, achievement := range role.Achievements {
		if strings.HasPrefix(strings.ToLower(achievement), strings.ToLower(achievementID)) {
			return achievement
		}
	}
	return fallbackSource(role)
}

// achievementIDFor is the positional id convention for raw achievements.
func achievementIDFor(index int) string {
	return "a" + strconv.Itoa(index+1)
}

func fallbackSource(role *types.RoleRecord) string {
	if len(role.Achievements) > 0 {
		return role.Achievements[0]
	}
	return ""
}

// firstMatch returns the first tag that appears among targets (case-insensitive).
func firstMatch(tags, targets []string) string {
	for _, tag := range tags {
		for _, target := range targets {
			if strings.EqualFold(strings.TrimSpace(tag), strings.TrimSpace(target)) {
				return target
			}
		}
	}
	return ""
}
