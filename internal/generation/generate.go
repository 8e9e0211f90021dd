package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/types"
)

const (
	// maxAttempts bounds schema-failure retries of the generation call.
	maxAttempts = 3
	// fallbackBulletCount is how many raw achievements the degraded path copies.
	fallbackBulletCount = 5

	// Word-count bounds per bullet.
	minWordsPerBullet = 20
	maxWordsPerBullet = 40
)

// Options tunes generation behavior. The zero value uses defaults.
type Options struct {
	TargetCount int
	Tier        llm.ModelTier
	// RetryBaseDelay is the initial backoff between schema-failure retries.
	RetryBaseDelay time.Duration
}

func (o *Options) withDefaults() Options {
	opts := *o
	if opts.TargetCount <= 0 {
		opts.TargetCount = 4
	}
	if opts.Tier == "" {
		opts.Tier = llm.TierStandard
	}
	if opts.RetryBaseDelay <= 0 {
		opts.RetryBaseDelay = time.Second
	}
	return opts
}

// Generate produces tailored bullets for one role. The role's raw
// achievements are the only permitted source of fact; the job context and
// career guidance shape phrasing only. Exactly one generation round is
// performed (with bounded schema-failure retries); narrative-structure and
// hallucination fixing are separate later passes.
//
// Generation failure is never fatal: after retries are exhausted the result
// is a degraded plain copy of the top raw achievements with FailureReason
// set for the caller to log.
func Generate(ctx context.Context, client llm.Client, role *types.RoleRecord, jobCtx *types.JobContext, guidance *types.CareerGuidance, opts Options) (*types.RoleBullets, error) {
	if role == nil {
		return nil, &APICallError{Message: "role record is required"}
	}
	if client == nil {
		return nil, &APICallError{Message: "LLM client is required"}
	}
	o := opts.withDefaults()

	prompt := buildGenerationPrompt(role, jobCtx, guidance, o.TargetCount)

	var lastErr error
	delay := o.RetryBaseDelay

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		responseText, err := client.GenerateJSON(ctx, prompt, o.Tier)
		if err == nil {
			result, parseErr := parseBulletsResponse(responseText, role)
			if parseErr == nil {
				return result, nil
			}
			lastErr = parseErr
		} else {
			lastErr = err
		}

		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return fallbackBullets(role, lastErr), nil
}

// fallbackBullets builds the degraded result: a plain copy of the top raw
// achievements, no fabrication possible.
func fallbackBullets(role *types.RoleRecord, cause error) *types.RoleBullets {
	count := len(role.Achievements)
	if count > fallbackBulletCount {
		count = fallbackBulletCount
	}

	bullets := make([]types.GeneratedBullet, 0, count)
	for _, achievement := range role.Achievements[:count] {
		bullets = append(bullets, types.GeneratedBullet{
			Text:       achievement,
			SourceText: achievement,
		})
	}

	reason := "generation failed"
	if cause != nil {
		reason = fmt.Sprintf("generation failed after %d attempts: %v", maxAttempts, cause)
	}

	return &types.RoleBullets{
		RoleID:        role.ID,
		Company:       role.Company,
		Title:         role.Title,
		Period:        role.Period,
		Bullets:       bullets,
		Degraded:      true,
		FailureReason: reason,
	}
}

// buildGenerationPrompt constructs the generation prompt from embedded templates
func buildGenerationPrompt(role *types.RoleRecord, jobCtx *types.JobContext, guidance *types.CareerGuidance, targetCount int) string {
	var sb strings.Builder

	var achievements strings.Builder
	for i, a := range role.Achievements {
		achievements.WriteString(fmt.Sprintf("%d. %s\n", i+1, a))
	}

	intro := prompts.MustGet("generation.json", "generate-bullets-intro")
	sb.WriteString(prompts.Format(intro, map[string]string{
		"RoleTitle":    role.Title,
		"Company":      role.Company,
		"Achievements": achievements.String(),
	}))
	sb.WriteString("\n")

	// Job context (dynamic)
	if jobCtx != nil {
		sb.WriteString("Target job context:\n")
		sb.WriteString(fmt.Sprintf("- Role category: %s\n", jobCtx.RoleCategory))
		w := jobCtx.CompetencyWeights
		sb.WriteString(fmt.Sprintf("- Competency emphasis: delivery %d%%, process %d%%, architecture %d%%, leadership %d%%\n",
			w.Delivery, w.Process, w.Architecture, w.Leadership))
		if len(jobCtx.TopKeywords) > 0 {
			sb.WriteString("- ATS keywords to integrate where truthful: ")
			sb.WriteString(strings.Join(jobCtx.TopKeywords, ", "))
			sb.WriteString("\n")
		}
		if len(jobCtx.ImpliedPainPoints) > 0 {
			sb.WriteString("- Pain points the hiring team cares about: ")
			sb.WriteString(strings.Join(jobCtx.ImpliedPainPoints, ", "))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	// Career stage guidance (dynamic)
	if guidance != nil && guidance.Stage != "" {
		sb.WriteString(fmt.Sprintf("Candidate career stage: %s", guidance.Stage))
		if guidance.Emphasis != "" {
			sb.WriteString(fmt.Sprintf(" (emphasize %s)", guidance.Emphasis))
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString(prompts.MustGet("generation.json", "generate-bullets-structure"))
	sb.WriteString("\n")

	output := prompts.MustGet("generation.json", "generate-bullets-output")
	sb.WriteString(prompts.Format(output, map[string]string{
		"TargetCount": fmt.Sprintf("%d", targetCount),
	}))

	return sb.String()
}
