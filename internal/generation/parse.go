package generation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/cv-tailor/internal/schemas"
	"github.com/jonathan/cv-tailor/internal/textutil"
	"github.com/jonathan/cv-tailor/internal/types"
)

// sourceTraceThreshold is the minimum similarity for a declared source_text
// to count as traceable to a raw achievement when not an exact substring.
const sourceTraceThreshold = 0.8

// bulletsResponse mirrors the structured generation output.
type bulletsResponse struct {
	Bullets []struct {
		Text               string `json:"text"`
		SourceText         string `json:"source_text"`
		SourceMetric       string `json:"source_metric"`
		JDKeywordUsed      string `json:"jd_keyword_used"`
		PainPointAddressed string `json:"pain_point_addressed"`
		Situation          string `json:"situation"`
		Action             string `json:"action"`
		Result             string `json:"result"`
	} `json:"bullets"`
}

// parseBulletsResponse deserializes and strictly validates one generation
// response. Any violation returns a ResponseError so the caller can retry.
func parseBulletsResponse(responseText string, role *types.RoleRecord) (*types.RoleBullets, error) {
	// Structural validation first: required fields, item bounds.
	if err := schemas.ValidateGeneratedBullets(responseText); err != nil {
		return nil, &ResponseError{Message: "generation response failed schema validation", Cause: err}
	}

	var resp bulletsResponse
	if err := json.Unmarshal([]byte(responseText), &resp); err != nil {
		return nil, &ResponseError{Message: "failed to decode generation response", Cause: err}
	}

	bullets := make([]types.GeneratedBullet, 0, len(resp.Bullets))
	keywords := make(map[string]bool)

	for i, raw := range resp.Bullets {
		words := len(strings.Fields(raw.Text))
		if words < minWordsPerBullet || words > maxWordsPerBullet {
			return nil, &ResponseError{
				Message: fmt.Sprintf("bullet %d has %d words, want %d-%d", i+1, words, minWordsPerBullet, maxWordsPerBullet),
			}
		}

		source := traceSource(raw.SourceText, role)
		if source == "" {
			return nil, &ResponseError{
				Message: fmt.Sprintf("bullet %d declares source text not traceable to role %s", i+1, role.ID),
			}
		}

		bullets = append(bullets, types.GeneratedBullet{
			Text:               strings.TrimSpace(raw.Text),
			SourceText:         source,
			SourceMetric:       strings.TrimSpace(raw.SourceMetric),
			JDKeywordUsed:      strings.TrimSpace(raw.JDKeywordUsed),
			PainPointAddressed: strings.TrimSpace(raw.PainPointAddressed),
			Situation:          strings.TrimSpace(raw.Situation),
			Action:             strings.TrimSpace(raw.Action),
			Result:             strings.TrimSpace(raw.Result),
		})
		if kw := strings.TrimSpace(raw.JDKeywordUsed); kw != "" {
			keywords[kw] = true
		}
	}

	result := &types.RoleBullets{
		RoleID:  role.ID,
		Company: role.Company,
		Title:   role.Title,
		Period:  role.Period,
		Bullets: bullets,
	}
	for kw := range keywords {
		result.KeywordsIntegrated = append(result.KeywordsIntegrated, kw)
	}
	sort.Strings(result.KeywordsIntegrated)

	return result, nil
}

// traceSource resolves a declared source text to the matching raw
// achievement. Exact and substring matches win; otherwise the closest
// achievement above the similarity threshold. Returns "" when untraceable.
func traceSource(declared string, role *types.RoleRecord) string {
	declared = strings.TrimSpace(declared)
	if declared == "" {
		return ""
	}

	declaredNorm := textutil.Normalize(declared)
	for _, achievement := range role.Achievements {
		achievementNorm := textutil.Normalize(achievement)
		if achievementNorm == declaredNorm ||
			strings.Contains(achievementNorm, declaredNorm) ||
			strings.Contains(declaredNorm, achievementNorm) {
			return achievement
		}
	}

	best := ""
	bestRatio := 0.0
	for _, achievement := range role.Achievements {
		if ratio := textutil.Ratio(declared, achievement); ratio > bestRatio {
			bestRatio = ratio
			best = achievement
		}
	}
	if bestRatio >= sourceTraceThreshold {
		return best
	}

	return ""
}
