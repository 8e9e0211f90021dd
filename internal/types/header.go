package types

// ProfileSection is the generated professional summary at the top of the CV.
type ProfileSection struct {
	Text               string   `json:"text"`
	HighlightsUsed     []string `json:"highlights_used,omitempty"`
	KeywordsIntegrated []string `json:"keywords_integrated,omitempty"`
}

// SkillEntry is one whitelisted skill with its supporting evidence.
type SkillEntry struct {
	Name            string   `json:"name"`
	EvidenceBullets []string `json:"evidence_bullets,omitempty"`
	SourceRoles     []string `json:"source_roles,omitempty"`
}

// SkillsSection groups skills under a category heading.
type SkillsSection struct {
	Category string       `json:"category"`
	Skills   []SkillEntry `json:"skills"`
}

// HeaderValidation reports whitelist grounding of the composed skills.
type HeaderValidation struct {
	Passed           bool     `json:"passed"`
	GroundedSkills   []string `json:"grounded_skills,omitempty"`
	UngroundedSkills []string `json:"ungrounded_skills,omitempty"`
}

// HeaderOutput is the composed profile plus categorized skills sections.
type HeaderOutput struct {
	Profile          ProfileSection   `json:"profile"`
	SkillsSections   []SkillsSection  `json:"skills_sections"`
	ValidationResult HeaderValidation `json:"validation_result"`
}
