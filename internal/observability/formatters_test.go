package observability

import (
	"bytes"
	"testing"

	"github.com/jonathan/cv-tailor/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintJobContext(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobContext(&types.JobContext{
		RoleCategory:      "platform engineering",
		CompetencyWeights: types.CompetencyWeights{Delivery: 40, Process: 20, Architecture: 25, Leadership: 15},
		TopKeywords:       []string{"Kafka", "Terraform"},
	})

	out := buf.String()
	assert.Contains(t, out, "platform engineering")
	assert.Contains(t, out, "Kafka")
	assert.Contains(t, out, "Job Context")
}

func TestPrintRoleBullets_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rb := &types.RoleBullets{RoleID: "r1", Company: "Acme", Title: "Engineer"}
	for i := 0; i < 7; i++ {
		rb.Bullets = append(rb.Bullets, types.GeneratedBullet{Text: "a bullet"})
	}

	p.PrintRoleBullets(rb)
	assert.Contains(t, buf.String(), "... and 2 more")
	assert.Contains(t, buf.String(), "(7 bullets, 14 words)")
}

func TestPrintGrade_ShowsWeakestDimensionOnFailure(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGrade(&types.GradeResult{
		DimensionScores: []types.DimensionScore{
			{Dimension: "ats_optimization", Score: 4.0, Weight: 0.20},
		},
		PassingThreshold: 8.5,
		CompositeScore:   6.1,
		LowestDimension:  "ats_optimization",
	})

	out := buf.String()
	assert.Contains(t, out, "Weakest:   ats_optimization")
}

func TestPrintNilInputsAreSafe(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobContext(nil)
	p.PrintRoleBullets(nil)
	p.PrintStitched(nil)
	p.PrintGrade(nil)

	assert.Empty(t, buf.String())
}
