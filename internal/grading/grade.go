// Package grading scores an assembled document on five fixed quality
// dimensions and combines them into a weighted composite. Scoring is
// deterministic and rule-based so a grade never consumes a generation call
// and two runs over the same document always agree.
package grading

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/cv-tailor/internal/ats"
	"github.com/jonathan/cv-tailor/internal/qa"
	"github.com/jonathan/cv-tailor/internal/textutil"
	"github.com/jonathan/cv-tailor/internal/types"
)

// DefaultPassingThreshold is the composite score a document must reach.
const DefaultPassingThreshold = 8.5

// Dimension names, fixed across the system. The improver keys its prompt
// guidance off these exact strings.
const (
	DimATSOptimization    = "ats_optimization"
	DimImpactClarity      = "impact_clarity"
	DimJDAlignment        = "jd_alignment"
	DimExecutivePresence  = "executive_presence"
	DimAntiHallucination  = "anti_hallucination"
)

// dimensionWeights must sum to 1.0.
var dimensionWeights = map[string]float64{
	DimATSOptimization:   0.20,
	DimImpactClarity:     0.25,
	DimJDAlignment:       0.25,
	DimExecutivePresence: 0.15,
	DimAntiHallucination: 0.15,
}

// dimensionOrder fixes the reporting order.
var dimensionOrder = []string{
	DimATSOptimization,
	DimImpactClarity,
	DimJDAlignment,
	DimExecutivePresence,
	DimAntiHallucination,
}

// weakPhrases cost executive presence. Passive framing reads as lack of
// ownership regardless of the underlying work.
var weakPhrases = []string{
	"responsible for", "helped with", "helped to", "worked on",
	"participated in", "assisted with", "was involved in",
}

// strongOpeners is the ownership vocabulary rewarded at bullet starts.
var strongOpeners = []string{
	"facing", "to address", "given", "amid", "tasked with", "confronted with",
	"led", "drove", "architected", "built", "delivered", "launched",
	"transformed", "established", "owned", "spearheaded", "scaled",
	"reduced", "cut", "automated", "migrated", "rebuilt", "consolidated",
	"introduced", "shipped", "headed", "founded",
}

// Grade scores documentText against the job context and the raw achievement
// corpus with the default threshold.
func Grade(documentText string, jobCtx *types.JobContext, sourceCorpus []string) *types.GradeResult {
	return GradeWithThreshold(documentText, jobCtx, sourceCorpus, DefaultPassingThreshold)
}

// GradeWithThreshold scores documentText with an explicit passing threshold.
func GradeWithThreshold(documentText string, jobCtx *types.JobContext, sourceCorpus []string, threshold float64) *types.GradeResult {
	bullets := bulletLines(documentText)

	scores := map[string]types.DimensionScore{
		DimATSOptimization:   scoreATS(documentText, jobCtx),
		DimImpactClarity:     scoreImpactClarity(bullets),
		DimJDAlignment:       scoreJDAlignment(documentText, jobCtx),
		DimExecutivePresence: scoreExecutivePresence(documentText, bullets),
		DimAntiHallucination: scoreAntiHallucination(documentText, sourceCorpus),
	}

	result := &types.GradeResult{PassingThreshold: threshold}
	lowest := math.Inf(1)
	for _, name := range dimensionOrder {
		score := scores[name]
		score.Dimension = name
		score.Weight = dimensionWeights[name]
		result.DimensionScores = append(result.DimensionScores, score)
		result.CompositeScore += score.Score * score.Weight
		if score.Score < lowest {
			lowest = score.Score
			result.LowestDimension = name
		}
	}
	result.Passed = result.CompositeScore >= threshold

	return result
}

func scoreATS(documentText string, jobCtx *types.JobContext) types.DimensionScore {
	var keywords []string
	if jobCtx != nil {
		keywords = jobCtx.TopKeywords
	}
	coverage := ats.CheckDocument(documentText, keywords)
	return types.DimensionScore{
		Score: round1(coverage.CoverageRatio * 10),
		Rationale: fmt.Sprintf("%d of %d target keywords present",
			len(coverage.KeywordsFound), len(coverage.KeywordsFound)+len(coverage.KeywordsMissing)),
	}
}

// scoreImpactClarity rewards bullets that carry a verifiable quantitative
// claim. A document with no bullets at all scores zero.
func scoreImpactClarity(bullets []string) types.DimensionScore {
	if len(bullets) == 0 {
		return types.DimensionScore{Rationale: "no bullets found"}
	}
	quantified := 0
	for _, bullet := range bullets {
		if len(qa.ExtractTokens(bullet)) > 0 {
			quantified++
		}
	}
	ratio := float64(quantified) / float64(len(bullets))
	return types.DimensionScore{
		Score:     round1(ratio * 10),
		Rationale: fmt.Sprintf("%d of %d bullets carry a quantified result", quantified, len(bullets)),
	}
}

// scoreJDAlignment measures how much of the job's stated skill surface and
// pain points the document speaks to.
func scoreJDAlignment(documentText string, jobCtx *types.JobContext) types.DimensionScore {
	if jobCtx == nil {
		return types.DimensionScore{Score: 5, Rationale: "no job context supplied"}
	}

	targets := append(append([]string(nil), jobCtx.TechnicalSkills...), jobCtx.SoftSkills...)
	targets = append(targets, jobCtx.ImpliedPainPoints...)
	if len(targets) == 0 {
		return types.DimensionScore{Score: 5, Rationale: "job context names no skills or pain points"}
	}

	docLower := strings.ToLower(documentText)
	matched := 0
	for _, target := range targets {
		if alignmentMatch(docLower, target) {
			matched++
		}
	}
	ratio := float64(matched) / float64(len(targets))
	return types.DimensionScore{
		Score:     round1(ratio * 10),
		Rationale: fmt.Sprintf("addresses %d of %d JD skills and pain points", matched, len(targets)),
	}
}

// alignmentMatch accepts a direct mention or, for multi-word pain points,
// a majority of the constituent words.
func alignmentMatch(docLower, target string) bool {
	targetLower := strings.ToLower(strings.TrimSpace(target))
	if targetLower == "" {
		return false
	}
	if strings.Contains(docLower, targetLower) {
		return true
	}
	words := strings.Fields(targetLower)
	if len(words) < 2 {
		return false
	}
	hits := 0
	for _, word := range words {
		if len(word) > 3 && strings.Contains(docLower, word) {
			hits++
		}
	}
	return hits*2 > len(words)
}

// scoreExecutivePresence rewards ownership framing at bullet starts and
// penalizes passive phrasing anywhere in the document.
func scoreExecutivePresence(documentText string, bullets []string) types.DimensionScore {
	if len(bullets) == 0 {
		return types.DimensionScore{Rationale: "no bullets found"}
	}

	strong := 0
	for _, bullet := range bullets {
		if startsWithStrongOpener(bullet) {
			strong++
		}
	}
	score := float64(strong) / float64(len(bullets)) * 10

	docLower := strings.ToLower(documentText)
	penalties := 0
	for _, phrase := range weakPhrases {
		penalties += strings.Count(docLower, phrase)
	}
	score -= float64(penalties)
	if score < 0 {
		score = 0
	}

	rationale := fmt.Sprintf("%d of %d bullets open with ownership framing", strong, len(bullets))
	if penalties > 0 {
		rationale += fmt.Sprintf("; %d passive phrases penalized", penalties)
	}
	return types.DimensionScore{Score: round1(score), Rationale: rationale}
}

// scoreAntiHallucination checks every quantitative token in the document
// against the achievement corpus, reusing the fact checker's extraction and
// tolerance rules. A document with no claims cannot hallucinate.
func scoreAntiHallucination(documentText string, sourceCorpus []string) types.DimensionScore {
	docTokens := qa.ExtractTokens(documentText)
	if len(docTokens) == 0 {
		return types.DimensionScore{Score: 10, Rationale: "no quantitative claims to verify"}
	}

	corpusTokens := qa.ExtractTokens(strings.Join(sourceCorpus, "\n"))
	grounded := 0
	for _, token := range docTokens {
		if tokenGrounded(token, corpusTokens) {
			grounded++
		}
	}
	ratio := float64(grounded) / float64(len(docTokens))
	return types.DimensionScore{
		Score:     round1(ratio * 10),
		Rationale: fmt.Sprintf("%d of %d quantitative claims grounded in achievements", grounded, len(docTokens)),
	}
}

func tokenGrounded(token qa.Token, corpusTokens []qa.Token) bool {
	for _, src := range corpusTokens {
		if textutil.Normalize(token.Raw) == textutil.Normalize(src.Raw) {
			return true
		}
		if token.Numeric && src.Numeric && token.Kind == src.Kind &&
			relativeDifference(token.Value, src.Value) <= qa.DefaultTolerance {
			return true
		}
	}
	return false
}

func relativeDifference(a, b float64) float64 {
	larger := math.Max(math.Abs(a), math.Abs(b))
	if larger == 0 {
		return 0
	}
	return math.Abs(a-b) / larger
}

func startsWithStrongOpener(bullet string) bool {
	lower := strings.ToLower(strings.TrimSpace(bullet))
	for _, opener := range strongOpeners {
		if strings.HasPrefix(lower, opener+" ") || strings.HasPrefix(lower, opener+",") {
			return true
		}
	}
	return false
}

// bulletLines extracts the "- " bullet lines from a rendered document.
func bulletLines(documentText string) []string {
	var bullets []string
	for _, line := range strings.Split(documentText, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") {
			bullets = append(bullets, strings.TrimPrefix(line, "- "))
		}
	}
	return bullets
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
