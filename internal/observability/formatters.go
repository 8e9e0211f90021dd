// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobContext outputs a human-readable summary of the job context.
func (p *Printer) PrintJobContext(jobCtx *types.JobContext) {
	if jobCtx == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role category: %s\n", jobCtx.RoleCategory))
	w := jobCtx.CompetencyWeights
	sb.WriteString(fmt.Sprintf("Weights:       delivery %d / process %d / architecture %d / leadership %d\n",
		w.Delivery, w.Process, w.Architecture, w.Leadership))

	if len(jobCtx.TopKeywords) > 0 {
		sb.WriteString("\nTop keywords:\n")
		writeList(&sb, jobCtx.TopKeywords)
	}
	if len(jobCtx.ImpliedPainPoints) > 0 {
		sb.WriteString("\nImplied pain points:\n")
		writeList(&sb, jobCtx.ImpliedPainPoints)
	}

	p.printBox("Job Context", sb.String())
}

// PrintRoleBullets outputs one role's generated bullets with their
// validation verdicts.
func (p *Printer) PrintRoleBullets(rb *types.RoleBullets) {
	if rb == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s at %s (%d bullets, %d words)\n",
		rb.Title, rb.Company, len(rb.Bullets), rb.WordCount()))
	if rb.Degraded {
		sb.WriteString(fmt.Sprintf("DEGRADED: %s\n", rb.FailureReason))
	}
	sb.WriteString("\n")

	count := min(len(rb.Bullets), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", rb.Bullets[i].Text))
	}
	if len(rb.Bullets) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rb.Bullets)-maxItemsToShow))
	}

	if rb.STARResult != nil {
		sb.WriteString(fmt.Sprintf("\nSTAR coverage: %.0f%% (passed: %v)\n",
			rb.STARResult.StarCoverage*100, rb.STARResult.Passed))
	}
	if rb.QAResult != nil {
		sb.WriteString(fmt.Sprintf("Fact check:    %d flagged, confidence %.2f (passed: %v)\n",
			len(rb.QAResult.FlaggedBullets), rb.QAResult.Confidence, rb.QAResult.Passed))
	}
	if rb.ATSResult != nil {
		sb.WriteString(fmt.Sprintf("ATS coverage:  %.0f%%\n", rb.ATSResult.CoverageRatio*100))
	}

	p.printBox(fmt.Sprintf("Role: %s", rb.RoleID), sb.String())
}

// PrintStitched outputs a summary of the assembled document.
func (p *Printer) PrintStitched(cv *types.StitchedCV) {
	if cv == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Roles:     %d\n", len(cv.Roles)))
	sb.WriteString(fmt.Sprintf("Bullets:   %d\n", cv.TotalBulletCount))
	sb.WriteString(fmt.Sprintf("Words:     %d\n", cv.TotalWordCount))
	if cv.DedupResult.DroppedCount > 0 {
		sb.WriteString(fmt.Sprintf("Dedup:     dropped %d near-duplicate bullets\n", cv.DedupResult.DroppedCount))
	}

	p.printBox("Stitched Document", sb.String())
}

// PrintGrade outputs the dimension scores and composite.
func (p *Printer) PrintGrade(grade *types.GradeResult) {
	if grade == nil {
		return
	}

	var sb strings.Builder
	for _, d := range grade.DimensionScores {
		sb.WriteString(fmt.Sprintf("%-20s %4.1f  (weight %.2f)\n", d.Dimension, d.Score, d.Weight))
	}
	sb.WriteString(fmt.Sprintf("\nComposite: %.2f / threshold %.1f (passed: %v)\n",
		grade.CompositeScore, grade.PassingThreshold, grade.Passed))
	if !grade.Passed {
		sb.WriteString(fmt.Sprintf("Weakest:   %s\n", grade.LowestDimension))
	}

	p.printBox("Grade", sb.String())
}

// PrintHeaderValidation outputs whitelist grounding failures.
func (p *Printer) PrintHeaderValidation(validation types.HeaderValidation) {
	if validation.Passed {
		return
	}

	var sb strings.Builder
	sb.WriteString("Ungrounded skills (not in whitelist):\n")
	writeList(&sb, validation.UngroundedSkills)
	p.printBox("Header Validation FAILED", sb.String())
}

func writeList(sb *strings.Builder, items []string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
