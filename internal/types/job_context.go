// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CompetencyWeights distributes job emphasis across the four competency
// areas. Weights are percentages and must sum to 100.
type CompetencyWeights struct {
	Delivery     int `json:"delivery" validate:"gte=0,lte=100"`
	Process      int `json:"process" validate:"gte=0,lte=100"`
	Architecture int `json:"architecture" validate:"gte=0,lte=100"`
	Leadership   int `json:"leadership" validate:"gte=0,lte=100"`
}

// Sum returns the total of all competency weights.
func (w CompetencyWeights) Sum() int {
	return w.Delivery + w.Process + w.Architecture + w.Leadership
}

// JobContext is the read-only record supplied by the upstream JD-extraction
// stage. The pipeline never mutates it.
type JobContext struct {
	RoleCategory      string            `json:"role_category" validate:"required"`
	CompetencyWeights CompetencyWeights `json:"competency_weights"`
	TopKeywords       []string          `json:"top_keywords"`
	ImpliedPainPoints []string          `json:"implied_pain_points"`
	TechnicalSkills   []string          `json:"technical_skills"`
	SoftSkills        []string          `json:"soft_skills"`
}

// Validate checks the job context using the validator plus the weight-sum
// invariant, which tag-based validation cannot express.
func (j *JobContext) Validate() error {
	validate := validator.New()
	if err := validate.Struct(j); err != nil {
		return err
	}
	if sum := j.CompetencyWeights.Sum(); sum != 100 {
		return fmt.Errorf("competency weights must sum to 100, got %d", sum)
	}
	return nil
}

// CareerStage describes the seniority framing used in generation prompts.
type CareerStage string

// Career stage constants
const (
	StageJunior    CareerStage = "junior"
	StageMid       CareerStage = "mid"
	StageSenior    CareerStage = "senior"
	StageExecutive CareerStage = "executive"
)

// CareerGuidance carries seniority framing into bullet generation.
type CareerGuidance struct {
	Stage    CareerStage `json:"stage"`
	Emphasis string      `json:"emphasis,omitempty"` // e.g. "scope and ownership", "hands-on depth"
}
