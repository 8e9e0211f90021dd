// Package header composes the top of the document: a generated professional
// profile and categorized skills sections grounded strictly against the
// candidate's skill whitelist.
package header

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/types"
)

// maxHighlights bounds how many stitched bullets feed the profile prompt.
const maxHighlights = 6

// Options tunes composition.
type Options struct {
	Tier llm.ModelTier
}

// ComposeError wraps profile generation failures.
type ComposeError struct {
	Message string
	Cause   error
}

func (e *ComposeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("header compose error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("header compose error: %s", e.Message)
}

func (e *ComposeError) Unwrap() error { return e.Cause }

// Compose builds the HeaderOutput for an assembled document. The profile is
// the only generated part; the skills sections are assembled deterministically
// and validated against the whitelist. Ungrounded skills fail the validation
// result but never block the document.
func Compose(ctx context.Context, client llm.Client, stitched *types.StitchedCV, jobCtx *types.JobContext, whitelist []string, opts Options) (*types.HeaderOutput, error) {
	if stitched == nil {
		return nil, &ComposeError{Message: "nil stitched document"}
	}
	tier := opts.Tier
	if tier == "" {
		tier = llm.TierLite
	}

	out := &types.HeaderOutput{}

	profile, err := composeProfile(ctx, client, stitched, jobCtx, tier)
	if err != nil {
		return nil, err
	}
	out.Profile = profile

	out.SkillsSections = buildSkillsSections(stitched, jobCtx, whitelist)
	out.ValidationResult = validateGrounding(out.SkillsSections, whitelist)

	return out, nil
}

// composeProfile issues the single profile generation call. Highlights come
// from the most recent roles' leading bullets.
func composeProfile(ctx context.Context, client llm.Client, stitched *types.StitchedCV, jobCtx *types.JobContext, tier llm.ModelTier) (types.ProfileSection, error) {
	highlights := collectHighlights(stitched)

	roleCategory := "senior engineering"
	var keywords []string
	if jobCtx != nil {
		roleCategory = jobCtx.RoleCategory
		keywords = jobCtx.TopKeywords
	}

	template := prompts.MustGet("header.json", "compose-profile")
	prompt := prompts.Format(template, map[string]string{
		"RoleCategory": roleCategory,
		"Highlights":   strings.Join(highlights, "\n"),
		"Keywords":     strings.Join(keywords, ", "),
	})

	text, err := client.GenerateContent(ctx, prompt, tier)
	if err != nil {
		return types.ProfileSection{}, &ComposeError{Message: "profile generation failed", Cause: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return types.ProfileSection{}, &ComposeError{Message: "profile generation returned empty text"}
	}

	return types.ProfileSection{
		Text:               text,
		HighlightsUsed:     highlights,
		KeywordsIntegrated: keywordsIn(text, keywords),
	}, nil
}

func collectHighlights(stitched *types.StitchedCV) []string {
	var highlights []string
	for _, role := range stitched.Roles {
		for _, bullet := range role.Bullets {
			if len(highlights) >= maxHighlights {
				return highlights
			}
			highlights = append(highlights, bullet.Text)
		}
	}
	return highlights
}

func keywordsIn(text string, keywords []string) []string {
	textLower := strings.ToLower(text)
	var found []string
	for _, keyword := range keywords {
		if strings.Contains(textLower, strings.ToLower(keyword)) {
			found = append(found, keyword)
		}
	}
	return found
}
