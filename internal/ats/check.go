// Package ats checks generated bullets for target keyword coverage. This
// models how applicant tracking systems screen documents: a keyword either
// appears in the text or the document loses that match.
package ats

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// MaxSuggestions caps the advisory re-integration hints.
const MaxSuggestions = 3

// Check matches each target keyword against the concatenated bullet texts,
// case-insensitive, with and without internal spaces so a compound term
// like "machine learning" also matches text that runs the words together.
// Keyword order is priority order; suggestions name the highest-priority
// missing keywords.
func Check(rb *types.RoleBullets, targetKeywords []string) *types.ATSResult {
	result := &types.ATSResult{}
	if len(targetKeywords) == 0 {
		result.CoverageRatio = 1.0
		return result
	}

	var texts []string
	if rb != nil {
		for _, bullet := range rb.Bullets {
			texts = append(texts, bullet.Text)
		}
	}
	haystack := strings.ToLower(strings.Join(texts, "\n"))
	haystackCompact := strings.ReplaceAll(haystack, " ", "")

	for _, keyword := range targetKeywords {
		if keywordPresent(haystack, haystackCompact, keyword) {
			result.KeywordsFound = append(result.KeywordsFound, keyword)
		} else {
			result.KeywordsMissing = append(result.KeywordsMissing, keyword)
		}
	}

	result.CoverageRatio = float64(len(result.KeywordsFound)) / float64(len(targetKeywords))

	for i, keyword := range result.KeywordsMissing {
		if i >= MaxSuggestions {
			break
		}
		result.Suggestions = append(result.Suggestions, fmt.Sprintf(
			"consider integrating %q into a bullet where the achievements support it", keyword))
	}

	return result
}

// CheckDocument runs the same keyword match against an assembled document.
// The grader reuses this for its ATS dimension.
func CheckDocument(documentText string, targetKeywords []string) *types.ATSResult {
	rb := &types.RoleBullets{Bullets: []types.GeneratedBullet{{Text: documentText}}}
	return Check(rb, targetKeywords)
}

func keywordPresent(haystack, haystackCompact, keyword string) bool {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return false
	}
	if strings.Contains(haystack, needle) {
		return true
	}
	compact := strings.ReplaceAll(needle, " ", "")
	return compact != needle && strings.Contains(haystackCompact, compact)
}
