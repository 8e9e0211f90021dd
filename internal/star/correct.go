package star

import (
	"context"
	"strings"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/types"
)

// DefaultMaxRetries bounds the application-level correction loop. This is
// separate from transport retries inside the LLM client.
const DefaultMaxRetries = 2

// EnforceOptions tunes the correction loop. The zero value uses defaults.
type EnforceOptions struct {
	MaxRetries int
	Threshold  float64
	Tier       llm.ModelTier
}

func (o *EnforceOptions) withDefaults() EnforceOptions {
	opts := *o
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultCoverageThreshold
	}
	if opts.Tier == "" {
		opts.Tier = llm.TierStandard
	}
	return opts
}

// Enforce runs the validate-correct loop: validate, and while coverage is
// below threshold, issue one targeted correction call per failing bullet,
// then re-validate. Each round produces a new immutable snapshot. A
// correction is only accepted when it does not lose elements, so coverage
// never decreases across rounds. Still failing after MaxRetries is a soft
// gate: the best snapshot is returned with Passed=false for the caller to
// log, never an error.
func Enforce(ctx context.Context, client llm.Client, rb *types.RoleBullets, skillKeywords []string, opts EnforceOptions) (*types.RoleBullets, *types.STARResult) {
	o := opts.withDefaults()

	current := rb
	result := ValidateWithThreshold(current, skillKeywords, o.Threshold)

	for retry := 0; retry < o.MaxRetries && !result.Passed; retry++ {
		if client == nil {
			break
		}

		corrected := correctRound(ctx, client, current, skillKeywords, o.Tier)
		result = ValidateWithThreshold(corrected, skillKeywords, o.Threshold)
		current = corrected
	}

	return current, result
}

// correctRound issues one correction call per incomplete bullet and returns
// a fresh snapshot. A replacement bullet is kept only when it carries at
// least as many narrative elements as the original.
func correctRound(ctx context.Context, client llm.Client, rb *types.RoleBullets, skillKeywords []string, tier llm.ModelTier) *types.RoleBullets {
	bullets := make([]types.GeneratedBullet, len(rb.Bullets))
	copy(bullets, rb.Bullets)

	for i, bullet := range bullets {
		elements := CheckBullet(bullet, skillKeywords)
		if elements.Complete() {
			continue
		}

		replacement, err := correctBullet(ctx, client, bullet, elements, tier)
		if err != nil {
			continue // keep the original, soft gate
		}

		if CheckBullet(replacement, skillKeywords).Count() >= elements.Count() {
			bullets[i] = replacement
		}
	}

	return rb.CloneWithBullets(bullets)
}

// correctBullet issues the targeted correction prompt for a single bullet.
func correctBullet(ctx context.Context, client llm.Client, bullet types.GeneratedBullet, elements Elements, tier llm.ModelTier) (types.GeneratedBullet, error) {
	template := prompts.MustGet("correction.json", "star-correction")
	prompt := prompts.Format(template, map[string]string{
		"MissingElements": strings.Join(elements.Missing(), ", "),
		"BulletText":      bullet.Text,
		"SourceText":      bullet.SourceText,
	})

	text, err := client.GenerateContent(ctx, prompt, tier)
	if err != nil {
		return types.GeneratedBullet{}, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return types.GeneratedBullet{}, &invalidCorrectionError{}
	}

	replacement := bullet
	replacement.Text = text
	return replacement, nil
}

type invalidCorrectionError struct{}

func (e *invalidCorrectionError) Error() string {
	return "correction returned empty text"
}
