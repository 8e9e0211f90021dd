package db

// Step names for pipeline artifacts. One artifact row per (run, step).
const (
	StepJobContext    = "job_context"
	StepRoleBullets   = "role_bullets" // suffixed with the role ID per role
	StepStitchedCV    = "stitched_cv"
	StepHeader        = "header"
	StepGrade         = "grade"
	StepImprovement   = "improvement"
	StepFinalDocument = "final_document"
)

// Artifact categories group steps by pipeline phase.
const (
	CategoryInput      = "input"
	CategoryGeneration = "generation"
	CategoryAssembly   = "assembly"
	CategoryQuality    = "quality"
)

// Run statuses for CompleteRun.
const (
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// RoleBulletsStep returns the artifact step name for one role's bullets.
func RoleBulletsStep(roleID string) string {
	return StepRoleBullets + ":" + roleID
}
