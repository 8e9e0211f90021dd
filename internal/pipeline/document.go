package pipeline

import (
	"strings"

	"github.com/jonathan/cv-tailor/internal/stitching"
	"github.com/jonathan/cv-tailor/internal/types"
)

// RenderDocument assembles the final plain-text CV: contact header, profile,
// experience section, then the grounded skills sections. A nil header still
// yields a usable document; only the profile and skills blocks are omitted.
func RenderDocument(candidate types.CandidateInfo, headerOut *types.HeaderOutput, stitched *types.StitchedCV) string {
	var b strings.Builder

	if candidate.Name != "" {
		b.WriteString(candidate.Name + "\n")
		var contact []string
		for _, part := range []string{candidate.Email, candidate.Phone, candidate.Location, candidate.LinkedIn} {
			if part != "" {
				contact = append(contact, part)
			}
		}
		if len(contact) > 0 {
			b.WriteString(strings.Join(contact, " | ") + "\n")
		}
		b.WriteString("\n")
	}

	if headerOut != nil && headerOut.Profile.Text != "" {
		b.WriteString("PROFILE\n")
		b.WriteString(headerOut.Profile.Text + "\n\n")
	}

	b.WriteString("EXPERIENCE\n")
	b.WriteString(stitching.RenderText(stitched))

	if headerOut != nil && len(headerOut.SkillsSections) > 0 {
		b.WriteString("\nSKILLS\n")
		for _, section := range headerOut.SkillsSections {
			var names []string
			for _, skill := range section.Skills {
				names = append(names, skill.Name)
			}
			b.WriteString(section.Category + ": " + strings.Join(names, ", ") + "\n")
		}
	}

	return b.String()
}
