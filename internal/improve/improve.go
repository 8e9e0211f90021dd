// Package improve runs the single targeted revision pass after grading.
// Exactly one generation call is made, aimed at the lowest-scoring
// dimension; if the revision still fails grading, the caller keeps the best
// available output rather than looping.
package improve

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/types"
)

// Options tunes the improvement call.
type Options struct {
	Tier llm.ModelTier
	// MissingKeywords feeds the ATS guidance template when the target
	// dimension is ats_optimization.
	MissingKeywords []string
}

// ImproveError wraps revision failures.
type ImproveError struct {
	Message string
	Cause   error
}

func (e *ImproveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("improve error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("improve error: %s", e.Message)
}

func (e *ImproveError) Unwrap() error { return e.Cause }

// improvementResponse is the JSON envelope expected from the model.
type improvementResponse struct {
	CVText      string   `json:"cv_text"`
	ChangesMade []string `json:"changes_made"`
}

// Improve revises documentText to strengthen the grade's lowest dimension.
// The returned result carries the replacement text; on any failure it
// reports Improved=false with the original text untouched, and the error
// explains what went wrong.
func Improve(ctx context.Context, client llm.Client, documentText string, grade *types.GradeResult, opts Options) (*types.ImprovementResult, error) {
	result := &types.ImprovementResult{CVText: documentText}
	if grade == nil || grade.LowestDimension == "" {
		return result, &ImproveError{Message: "grade result carries no target dimension"}
	}

	result.TargetDimension = grade.LowestDimension
	result.OriginalScore = grade.CompositeScore

	tier := opts.Tier
	if tier == "" {
		tier = llm.TierAdvanced
	}

	prompt := buildPrompt(documentText, grade, opts)
	raw, err := client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return result, &ImproveError{Message: "revision call failed", Cause: err}
	}

	var response improvementResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		return result, &ImproveError{Message: "revision response is not valid JSON", Cause: err}
	}
	if strings.TrimSpace(response.CVText) == "" {
		return result, &ImproveError{Message: "revision returned empty document"}
	}

	result.Improved = true
	result.CVText = response.CVText
	result.ChangesMade = response.ChangesMade
	return result, nil
}

func buildPrompt(documentText string, grade *types.GradeResult, opts Options) string {
	dimension := grade.LowestDimension
	rationale := ""
	for _, d := range grade.DimensionScores {
		if d.Dimension == dimension {
			rationale = d.Rationale
		}
	}

	guidance := dimensionGuidance(dimension, opts)
	template := prompts.MustGet("improvement.json", "improve-dimension")
	return prompts.Format(template, map[string]string{
		"Dimension": dimension,
		"Rationale": rationale,
		"Guidance":  guidance,
		"CVText":    documentText,
	})
}

func dimensionGuidance(dimension string, opts Options) string {
	guidance, err := prompts.Get("improvement.json", "improve-guidance-"+dimension)
	if err != nil {
		return ""
	}
	return prompts.Format(guidance, map[string]string{
		"Extra": strings.Join(opts.MissingKeywords, ", "),
	})
}
