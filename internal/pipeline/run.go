// Package pipeline provides the high-level orchestration for the CV
// generation process. Roles are processed sequentially so generation cost
// stays predictable and any failure is traceable to exactly one role; the
// independent fact and keyword checks inside a role run concurrently.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-tailor/internal/ats"
	"github.com/jonathan/cv-tailor/internal/db"
	"github.com/jonathan/cv-tailor/internal/generation"
	"github.com/jonathan/cv-tailor/internal/grading"
	"github.com/jonathan/cv-tailor/internal/header"
	"github.com/jonathan/cv-tailor/internal/improve"
	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/observability"
	"github.com/jonathan/cv-tailor/internal/qa"
	"github.com/jonathan/cv-tailor/internal/star"
	"github.com/jonathan/cv-tailor/internal/stitching"
	"github.com/jonathan/cv-tailor/internal/types"
	"github.com/jonathan/cv-tailor/internal/variants"
)

// totalSteps is the step count used in progress logging.
const totalSteps = 8

// defaultTargetBullets is requested per role when no target is configured.
const defaultTargetBullets = 4

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	TargetBullets int
	WordBudget    int // 0 means unlimited
	SkipImprove   bool
	Verbose       bool
	DatabaseURL   string
	OnProgress    ProgressCallback
}

// Result is everything a run produced, kept even when individual phases
// reported failures, so the caller can emit a best-effort document plus a
// quality report.
type Result struct {
	RoleBullets  []*types.RoleBullets
	Stitched     *types.StitchedCV
	Header       *types.HeaderOutput
	Grade        *types.GradeResult
	Improvement  *types.ImprovementResult
	DocumentText string
	RunID        uuid.UUID
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

// Run orchestrates the full CV generation pipeline.
func Run(ctx context.Context, client llm.Client, profile *types.CandidateProfile, jobCtx *types.JobContext, opts RunOptions) (*Result, error) {
	printer := observability.NewPrinter(os.Stdout)
	if opts.TargetBullets <= 0 {
		opts.TargetBullets = defaultTargetBullets
	}

	fmt.Printf("Step 1/%d: Validating inputs...\n", totalSteps)
	if profile == nil || len(profile.Roles) == 0 {
		return nil, fmt.Errorf("no roles loaded: role source data is required")
	}
	if jobCtx == nil {
		return nil, fmt.Errorf("job context is required")
	}
	if err := jobCtx.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job context: %w", err)
	}
	if opts.Verbose {
		printer.PrintJobContext(jobCtx)
	}

	// Database persistence is best-effort: a run never fails because the
	// artifact store is down.
	var database *db.DB
	var runID uuid.UUID
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
			runID, err = database.CreateRun(ctx, jobCtx.RoleCategory, profile.Candidate.Name)
			if err != nil {
				fmt.Printf("Warning: Failed to create database run: %v\n", err)
			} else if opts.Verbose {
				fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
			}
			saveArtifact(ctx, database, runID, db.StepJobContext, db.CategoryInput, jobCtx)
		}
	}

	result := &Result{RunID: runID}
	guidance := careerGuidance(profile.Roles)

	fmt.Printf("Step 2/%d: Generating bullets for %d roles...\n", totalSteps, len(profile.Roles))
	for i := range profile.Roles {
		role := &profile.Roles[i]
		fmt.Printf("  Role %d/%d: %s at %s\n", i+1, len(profile.Roles), role.Title, role.Company)

		rb := processRole(ctx, client, role, jobCtx, guidance, &opts)
		result.RoleBullets = append(result.RoleBullets, rb)

		if opts.Verbose {
			printer.PrintRoleBullets(rb)
		}
		emitProgress(&opts, db.RoleBulletsStep(role.ID), db.CategoryGeneration,
			fmt.Sprintf("Generated %d bullets for %s", len(rb.Bullets), role.Company), rb)
		saveArtifact(ctx, database, runID, db.RoleBulletsStep(role.ID), db.CategoryGeneration, rb)
	}

	fmt.Printf("Step 3/%d: Stitching roles into one document...\n", totalSteps)
	var budget *int
	if opts.WordBudget > 0 {
		budget = &opts.WordBudget
	}
	records := make([]*types.RoleRecord, len(profile.Roles))
	for i := range profile.Roles {
		records[i] = &profile.Roles[i]
	}
	result.Stitched = stitching.Stitch(result.RoleBullets, records, stitching.Options{
		WordBudget:     budget,
		TargetKeywords: jobCtx.TopKeywords,
	})
	if opts.Verbose {
		printer.PrintStitched(result.Stitched)
	}
	emitProgress(&opts, db.StepStitchedCV, db.CategoryAssembly,
		fmt.Sprintf("Stitched %d roles, %d bullets", len(result.Stitched.Roles), result.Stitched.TotalBulletCount), nil)
	saveArtifact(ctx, database, runID, db.StepStitchedCV, db.CategoryAssembly, result.Stitched)

	fmt.Printf("Step 4/%d: Composing header and skills sections...\n", totalSteps)
	headerOut, err := header.Compose(ctx, client, result.Stitched, jobCtx, profile.SkillWhitelist, header.Options{})
	if err != nil {
		fmt.Printf("Warning: header composition failed: %v\n", err)
	} else {
		result.Header = headerOut
		if opts.Verbose && !headerOut.ValidationResult.Passed {
			printer.PrintHeaderValidation(headerOut.ValidationResult)
		}
		saveArtifact(ctx, database, runID, db.StepHeader, db.CategoryAssembly, headerOut)
	}

	fmt.Printf("Step 5/%d: Assembling final document...\n", totalSteps)
	result.DocumentText = RenderDocument(profile.Candidate, result.Header, result.Stitched)

	fmt.Printf("Step 6/%d: Grading document...\n", totalSteps)
	result.Grade = grading.Grade(result.DocumentText, jobCtx, achievementCorpus(profile.Roles))
	if opts.Verbose {
		printer.PrintGrade(result.Grade)
	}
	emitProgress(&opts, db.StepGrade, db.CategoryQuality,
		fmt.Sprintf("Composite %.2f (passed: %v)", result.Grade.CompositeScore, result.Grade.Passed), result.Grade)
	saveArtifact(ctx, database, runID, db.StepGrade, db.CategoryQuality, result.Grade)

	if !result.Grade.Passed && !opts.SkipImprove {
		fmt.Printf("Step 7/%d: Improving weakest dimension (%s)...\n", totalSteps, result.Grade.LowestDimension)
		docATS := ats.CheckDocument(result.DocumentText, jobCtx.TopKeywords)
		improvement, err := improve.Improve(ctx, client, result.DocumentText, result.Grade, improve.Options{
			MissingKeywords: docATS.KeywordsMissing,
		})
		result.Improvement = improvement
		if err != nil {
			fmt.Printf("Warning: improvement pass failed: %v\n", err)
		} else if improvement.Improved {
			result.DocumentText = improvement.CVText
			// Re-grade the revision for the final report. The revised
			// document is kept either way; this is a single pass.
			result.Grade = grading.Grade(result.DocumentText, jobCtx, achievementCorpus(profile.Roles))
			if opts.Verbose {
				printer.PrintGrade(result.Grade)
			}
			saveArtifact(ctx, database, runID, db.StepImprovement, db.CategoryQuality, improvement)
		}
	} else {
		fmt.Printf("Step 7/%d: Improvement pass skipped\n", totalSteps)
	}

	fmt.Printf("Step 8/%d: Finalizing run...\n", totalSteps)
	emitProgress(&opts, db.StepFinalDocument, db.CategoryQuality, "Run complete", nil)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveTextArtifact(ctx, runID, db.StepFinalDocument, db.CategoryQuality, result.DocumentText)
		_ = database.CompleteRun(ctx, runID, db.RunStatusCompleted)
	}

	return result, nil
}

// processRole runs the per-role phase chain: variant selection, generation
// fallback, narrative enforcement, then the concurrent fact and keyword
// checks. Failures degrade the role, never the run.
func processRole(ctx context.Context, client llm.Client, role *types.RoleRecord, jobCtx *types.JobContext, guidance *types.CareerGuidance, opts *RunOptions) *types.RoleBullets {
	rb, ok := variants.Select(role, jobCtx, opts.TargetBullets)
	if !ok {
		var err error
		rb, err = generation.Generate(ctx, client, role, jobCtx, guidance, generation.Options{
			TargetCount: opts.TargetBullets,
		})
		if err != nil {
			// Partial-failure isolation: the role degrades to its raw
			// achievements and the run continues.
			fmt.Printf("  Warning: generation failed for %s: %v\n", role.ID, err)
			rb = degradedRole(role, err)
		}
	}

	skillKeywords := append(append([]string(nil), role.HardSkills...), jobCtx.TechnicalSkills...)
	rb, starResult := star.Enforce(ctx, client, rb, skillKeywords, star.EnforceOptions{})
	rb.STARResult = starResult
	if !starResult.Passed {
		fmt.Printf("  Warning: narrative coverage %.0f%% below threshold for %s\n",
			starResult.StarCoverage*100, role.ID)
	}

	// The fact check and the keyword check are independent and pure.
	g, _ := errgroup.WithContext(ctx)
	var qaResult *types.QAResult
	var atsResult *types.ATSResult
	g.Go(func() error {
		qaResult = qa.Check(rb, role)
		return nil
	})
	g.Go(func() error {
		atsResult = ats.Check(rb, jobCtx.TopKeywords)
		return nil
	})
	_ = g.Wait()

	rb.QAResult = qaResult
	rb.ATSResult = atsResult
	return rb
}

// degradedRole is the last-resort fallback when even the generation
// component errored out: a plain copy of the role's top achievements.
func degradedRole(role *types.RoleRecord, cause error) *types.RoleBullets {
	const maxFallback = 5
	count := len(role.Achievements)
	if count > maxFallback {
		count = maxFallback
	}
	rb := &types.RoleBullets{
		RoleID:        role.ID,
		Company:       role.Company,
		Title:         role.Title,
		Period:        role.Period,
		Degraded:      true,
		FailureReason: cause.Error(),
	}
	for _, achievement := range role.Achievements[:count] {
		rb.Bullets = append(rb.Bullets, types.GeneratedBullet{
			Text:       achievement,
			SourceText: achievement,
		})
	}
	return rb
}

// careerGuidance derives the seniority framing from the number of roles.
// A deliberate simplification: role count is the only signal available
// without parsing period strings.
func careerGuidance(roles []types.RoleRecord) *types.CareerGuidance {
	switch {
	case len(roles) >= 5:
		return &types.CareerGuidance{Stage: types.StageExecutive, Emphasis: "scope and ownership"}
	case len(roles) >= 3:
		return &types.CareerGuidance{Stage: types.StageSenior, Emphasis: "impact and leadership"}
	case len(roles) == 2:
		return &types.CareerGuidance{Stage: types.StageMid, Emphasis: "growth and delivery"}
	default:
		return &types.CareerGuidance{Stage: types.StageJunior, Emphasis: "hands-on depth"}
	}
}

func achievementCorpus(roles []types.RoleRecord) []string {
	var corpus []string
	for _, role := range roles {
		corpus = append(corpus, role.Achievements...)
	}
	return corpus
}

func saveArtifact(ctx context.Context, database *db.DB, runID uuid.UUID, step, category string, content any) {
	if database == nil || runID == uuid.Nil {
		return
	}
	if err := database.SaveArtifact(ctx, runID, step, category, content); err != nil {
		fmt.Printf("Warning: failed to save artifact %s: %v\n", step, err)
	}
}
