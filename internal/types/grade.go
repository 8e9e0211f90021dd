package types

// DimensionScore is a single graded quality dimension.
type DimensionScore struct {
	Dimension string  `json:"dimension"`
	Score     float64 `json:"score"` // 0-10
	Weight    float64 `json:"weight"`
	Rationale string  `json:"rationale,omitempty"`
}

// GradeResult is the weighted multi-dimension quality assessment of the
// assembled document.
type GradeResult struct {
	DimensionScores  []DimensionScore `json:"dimension_scores"`
	PassingThreshold float64          `json:"passing_threshold"`
	CompositeScore   float64          `json:"composite_score"`
	Passed           bool             `json:"passed"`
	LowestDimension  string           `json:"lowest_dimension"`
}

// LowestScore returns the score of the lowest dimension, or 0 when empty.
func (g *GradeResult) LowestScore() float64 {
	lowest := 0.0
	for _, d := range g.DimensionScores {
		if d.Dimension == g.LowestDimension {
			lowest = d.Score
		}
	}
	return lowest
}
