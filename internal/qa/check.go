// Package qa fact-checks generated bullets against their role's raw
// achievements. Every quantitative claim in a bullet must trace to the
// source corpus, and leadership claims must be grounded in the bullet's
// declared source text. Checks are rule-based; no model calls are made.
package qa

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/cv-tailor/internal/textutil"
	"github.com/jonathan/cv-tailor/internal/types"
)

const (
	// DefaultTolerance is the relative difference allowed between a bullet
	// metric and a source metric before the bullet is flagged.
	DefaultTolerance = 0.15

	// DefaultMaxFlaggedRatio keeps the pass gate lenient. Small bullet
	// counts would otherwise fail on a single flag.
	DefaultMaxFlaggedRatio = 0.4

	// DefaultSimilarityThreshold governs the string-similarity fallback for
	// tokens that do not parse as numbers.
	DefaultSimilarityThreshold = 0.8
)

// leadershipGroups clusters ownership verbs with their synonyms. A bullet
// using any verb from a group must find some verb of the same group in its
// declared source text.
var leadershipGroups = [][]string{
	{"led", "headed", "directed", "spearheaded", "orchestrated"},
	{"managed", "oversaw", "supervised", "ran"},
	{"founded", "established", "launched", "started", "co-founded"},
	{"pioneered", "initiated", "championed"},
	{"owned", "drove"},
}

// Options tunes the checker. The zero value uses defaults.
type Options struct {
	Tolerance           float64
	MaxFlaggedRatio     float64
	SimilarityThreshold float64
}

func (o Options) withDefaults() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxFlaggedRatio <= 0 {
		o.MaxFlaggedRatio = DefaultMaxFlaggedRatio
	}
	if o.SimilarityThreshold <= 0 {
		o.SimilarityThreshold = DefaultSimilarityThreshold
	}
	return o
}

// Check verifies a role's bullets against the role record with defaults.
func Check(rb *types.RoleBullets, source *types.RoleRecord) *types.QAResult {
	return CheckWithOptions(rb, source, Options{})
}

// CheckWithOptions verifies a role's bullets against the role record.
// Flags never abort anything: the result is attached to the bullets for
// downstream filtering and the final quality report.
func CheckWithOptions(rb *types.RoleBullets, source *types.RoleRecord, opts Options) *types.QAResult {
	o := opts.withDefaults()
	result := &types.QAResult{Passed: true, Confidence: 1.0}
	if rb == nil || len(rb.Bullets) == 0 {
		return result
	}

	corpus := achievementCorpus(source)
	corpusTokens := ExtractTokens(corpus)

	flagged := 0
	metricViolation := false
	for i, bullet := range rb.Bullets {
		issues := checkBullet(bullet, corpusTokens, o)
		if violatesSourceMetric(bullet, corpusTokens, o) {
			issues = append(issues, fmt.Sprintf(
				"declared source metric %q not found in achievements", bullet.SourceMetric))
			metricViolation = true
		}
		if len(issues) == 0 {
			for _, token := range ExtractTokens(bullet.Text) {
				result.VerifiedMetrics = append(result.VerifiedMetrics, token.Raw)
			}
			continue
		}

		flagged++
		result.FlaggedBullets = append(result.FlaggedBullets, excerpt(bullet.Text))
		for _, issue := range issues {
			result.Issues = append(result.Issues, fmt.Sprintf("bullet %d: %s", i+1, issue))
		}
	}

	total := len(rb.Bullets)
	result.Confidence = float64(total-flagged) / float64(total)
	maxFlagged := int(math.Max(1, math.Ceil(float64(total)*o.MaxFlaggedRatio)))
	result.Passed = flagged <= maxFlagged && !metricViolation

	return result
}

// checkBullet returns the issues for one bullet: unverifiable quantitative
// tokens and ungrounded leadership claims.
func checkBullet(bullet types.GeneratedBullet, corpusTokens []Token, o Options) []string {
	var issues []string

	for _, token := range ExtractTokens(bullet.Text) {
		if !tokenGrounded(token, corpusTokens, o) {
			issues = append(issues, fmt.Sprintf("metric %q not supported by achievements", token.Raw))
		}
	}

	if group := leadershipGroupIn(bullet.Text); group != nil {
		if !containsAnyVerb(bullet.SourceText, group) {
			issues = append(issues, fmt.Sprintf(
				"leadership claim %q not supported by source text", firstVerbIn(bullet.Text, group)))
		}
	}

	return issues
}

// tokenGrounded matches a bullet token against the corpus: exact raw match,
// then numeric tolerance within the same kind, then string similarity for
// non-numeric tokens.
func tokenGrounded(token Token, corpusTokens []Token, o Options) bool {
	for _, src := range corpusTokens {
		if textutil.Normalize(token.Raw) == textutil.Normalize(src.Raw) {
			return true
		}
		if token.Numeric && src.Numeric && token.Kind == src.Kind &&
			withinTolerance(token.Value, src.Value, o.Tolerance) {
			return true
		}
		if !token.Numeric && textutil.Ratio(token.Raw, src.Raw) > o.SimilarityThreshold {
			return true
		}
	}
	return false
}

// violatesSourceMetric enforces the hard invariant on declared metrics: a
// bullet that names its source metric must have that metric present in the
// achievement corpus, and a violation fails the whole QAResult regardless
// of the lenient flag ratio.
func violatesSourceMetric(bullet types.GeneratedBullet, corpusTokens []Token, o Options) bool {
	if bullet.SourceMetric == "" {
		return false
	}
	for _, token := range ExtractTokens(bullet.SourceMetric) {
		if !tokenGrounded(token, corpusTokens, o) {
			return true
		}
	}
	return false
}

func withinTolerance(a, b, tolerance float64) bool {
	if a == b {
		return true
	}
	larger := math.Max(math.Abs(a), math.Abs(b))
	if larger == 0 {
		return true
	}
	return math.Abs(a-b)/larger <= tolerance
}

func achievementCorpus(source *types.RoleRecord) string {
	if source == nil {
		return ""
	}
	return strings.Join(source.Achievements, "\n")
}

// leadershipGroupIn returns the synonym group of the first leadership verb
// found in the text, or nil.
func leadershipGroupIn(text string) []string {
	lower := strings.ToLower(text)
	for _, group := range leadershipGroups {
		if containsAnyVerbLower(lower, group) {
			return group
		}
	}
	return nil
}

func containsAnyVerb(text string, group []string) bool {
	return containsAnyVerbLower(strings.ToLower(text), group)
}

func containsAnyVerbLower(lower string, group []string) bool {
	for _, word := range strings.Fields(lower) {
		word = strings.Trim(word, ".,!?;:()")
		for _, verb := range group {
			if word == verb {
				return true
			}
		}
	}
	return false
}

func firstVerbIn(text string, group []string) string {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:()")
		for _, verb := range group {
			if word == verb {
				return word
			}
		}
	}
	return ""
}

// excerpt truncates a bullet for the flagged list.
func excerpt(text string) string {
	const maxLen = 80
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}
