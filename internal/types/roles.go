package types

import (
	"github.com/go-playground/validator/v10"
)

// AchievementVariant is a pre-written, human-authored phrasing of an
// achievement. Selecting one instead of generating eliminates fabrication
// risk entirely.
type AchievementVariant struct {
	AchievementID string   `json:"achievement_id" validate:"required"`
	Text          string   `json:"text" validate:"required"`
	Keywords      []string `json:"keywords,omitempty"`
	Skills        []string `json:"skills,omitempty"`
	PainPoints    []string `json:"pain_points,omitempty"`
}

// RoleRecord is the immutable per-role source of truth. Achievements are the
// only permitted source of fact for anything generated about this role.
type RoleRecord struct {
	ID           string               `json:"id" validate:"required"`
	Company      string               `json:"company" validate:"required"`
	Title        string               `json:"title" validate:"required"`
	Period       string               `json:"period" validate:"required"`
	Location     string               `json:"location,omitempty"`
	Achievements []string             `json:"achievements" validate:"required,min=1,dive,required"`
	HardSkills   []string             `json:"hard_skills,omitempty"`
	SoftSkills   []string             `json:"soft_skills,omitempty"`
	Variants     []AchievementVariant `json:"variants,omitempty"`
}

// Validate validates the RoleRecord using the validator.
func (r *RoleRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// CandidateInfo holds contact details for the CV header.
type CandidateInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// CandidateProfile is the read-only bundle loaded once at run start.
type CandidateProfile struct {
	Candidate      CandidateInfo `json:"candidate"`
	Roles          []RoleRecord  `json:"roles" validate:"required,min=1"`
	SkillWhitelist []string      `json:"skill_whitelist"`
}
