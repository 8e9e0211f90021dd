package header

import (
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// maxEvidencePerSkill bounds the evidence citations carried per skill.
const maxEvidencePerSkill = 2

// buildSkillsSections assembles the technical and leadership skill sections
// from the stitched document. Every listed skill cites at least one evidence
// bullet and source role; skills with no evidence in the document are left
// out entirely. Whitelist grounding happens separately so that ungrounded
// skills still surface in the validation result.
func buildSkillsSections(stitched *types.StitchedCV, jobCtx *types.JobContext, whitelist []string) []types.SkillsSection {
	var technical, soft []string
	if jobCtx != nil {
		technical = jobCtx.TechnicalSkills
		soft = jobCtx.SoftSkills
	}
	// Role skill lines contribute candidates beyond what the JD names.
	for _, role := range stitched.Roles {
		technical = append(technical, role.SkillLine...)
	}

	var sections []types.SkillsSection
	if entries := evidencedSkills(technical, stitched); len(entries) > 0 {
		sections = append(sections, types.SkillsSection{Category: "Technical", Skills: entries})
	}
	if entries := evidencedSkills(soft, stitched); len(entries) > 0 {
		sections = append(sections, types.SkillsSection{Category: "Leadership & Collaboration", Skills: entries})
	}
	return sections
}

// evidencedSkills resolves each candidate skill to the bullets that mention
// it. Duplicates are collapsed case-insensitively, first spelling wins.
func evidencedSkills(candidates []string, stitched *types.StitchedCV) []types.SkillEntry {
	seen := make(map[string]bool)
	var entries []types.SkillEntry

	for _, skill := range candidates {
		skill = strings.TrimSpace(skill)
		key := strings.ToLower(skill)
		if skill == "" || seen[key] {
			continue
		}
		seen[key] = true

		entry := types.SkillEntry{Name: skill}
		for _, role := range stitched.Roles {
			for _, bullet := range role.Bullets {
				if len(entry.EvidenceBullets) >= maxEvidencePerSkill {
					break
				}
				if strings.Contains(strings.ToLower(bullet.Text), key) {
					entry.EvidenceBullets = append(entry.EvidenceBullets, bullet.Text)
					entry.SourceRoles = appendUnique(entry.SourceRoles, role.RoleID)
				}
			}
		}
		if len(entry.EvidenceBullets) > 0 {
			entries = append(entries, entry)
		}
	}
	return entries
}

// validateGrounding checks every listed skill against the whitelist. Any
// skill outside the whitelist fails the result; the section itself is not
// altered, so callers can still render or strip it.
func validateGrounding(sections []types.SkillsSection, whitelist []string) types.HeaderValidation {
	allowed := make(map[string]bool, len(whitelist))
	for _, skill := range whitelist {
		allowed[strings.ToLower(strings.TrimSpace(skill))] = true
	}

	validation := types.HeaderValidation{Passed: true}
	for _, section := range sections {
		for _, skill := range section.Skills {
			if allowed[strings.ToLower(skill.Name)] {
				validation.GroundedSkills = append(validation.GroundedSkills, skill.Name)
			} else {
				validation.UngroundedSkills = append(validation.UngroundedSkills, skill.Name)
				validation.Passed = false
			}
		}
	}
	return validation
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
