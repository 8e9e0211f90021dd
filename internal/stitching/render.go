package stitching

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// RenderText serializes a StitchedCV into the plain-text experience section
// consumed by the grader and the final document assembly.
func RenderText(cv *types.StitchedCV) string {
	if cv == nil {
		return ""
	}

	var b strings.Builder
	for i, role := range cv.Roles {
		if i > 0 {
			b.WriteString("\n")
		}
		header := role.Title
		if role.Company != "" {
			header = fmt.Sprintf("%s, %s", role.Title, role.Company)
		}
		if role.Period != "" {
			header = fmt.Sprintf("%s (%s)", header, role.Period)
		}
		b.WriteString(header + "\n")

		for _, bullet := range role.Bullets {
			b.WriteString("- " + bullet.Text + "\n")
		}
		if len(role.SkillLine) > 0 {
			b.WriteString("Skills: " + strings.Join(role.SkillLine, ", ") + "\n")
		}
	}
	return b.String()
}
