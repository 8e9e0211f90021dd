package types

// QAResult is the outcome of the rule-based hallucination check for one
// role's bullets. Derived once, read-only afterwards.
type QAResult struct {
	Passed          bool     `json:"passed"`
	FlaggedBullets  []string `json:"flagged_bullets,omitempty"`
	Issues          []string `json:"issues,omitempty"`
	VerifiedMetrics []string `json:"verified_metrics,omitempty"`
	Confidence      float64  `json:"confidence"` // clean bullets / total bullets, in [0,1]
}

// ATSResult reports keyword coverage of a role's bullets against the job's
// target keywords.
type ATSResult struct {
	KeywordsFound   []string `json:"keywords_found,omitempty"`
	KeywordsMissing []string `json:"keywords_missing,omitempty"`
	CoverageRatio   float64  `json:"coverage_ratio"`
	Suggestions     []string `json:"suggestions,omitempty"`
}

// STARResult reports narrative-structure completeness for a role's bullets.
type STARResult struct {
	Passed             bool     `json:"passed"`
	BulletsWithSTAR    int      `json:"bullets_with_star"`
	BulletsWithoutSTAR int      `json:"bullets_without_star"`
	MissingElements    []string `json:"missing_elements,omitempty"`
	StarCoverage       float64  `json:"star_coverage"` // in [0,1]
}

// ImprovementResult is the outcome of the single targeted improvement pass.
type ImprovementResult struct {
	Improved        bool     `json:"improved"`
	TargetDimension string   `json:"target_dimension,omitempty"`
	ChangesMade     []string `json:"changes_made,omitempty"`
	CVText          string   `json:"cv_text,omitempty"` // full replacement text
	OriginalScore   float64  `json:"original_score"`
}
