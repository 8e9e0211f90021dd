// Package star validates narrative structure of generated bullets: a stated
// situation or challenge, an action naming a specific skill, and a
// quantified result.
package star

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// DefaultCoverageThreshold is the minimum fraction of bullets that must
// carry all three narrative elements.
const DefaultCoverageThreshold = 0.8

// situationOpeners is the fixed opener vocabulary for the situation check.
var situationOpeners = []string{
	"facing", "to address", "given", "amid", "when", "as", "with",
	"confronted with", "challenged by", "tasked with", "inheriting",
	"responding to", "after",
}

// actionVerbs is the heuristic action vocabulary (shared register with the
// leadership vocabulary in the qa package, but broader).
var actionVerbs = map[string]bool{
	"achieved": true, "architected": true, "automated": true, "built": true,
	"consolidated": true, "created": true, "delivered": true, "designed": true,
	"developed": true, "drove": true, "engineered": true, "established": true,
	"implemented": true, "improved": true, "increased": true, "introduced": true,
	"launched": true, "led": true, "migrated": true, "optimized": true,
	"rebuilt": true, "reduced": true, "refactored": true, "scaled": true,
	"shipped": true, "streamlined": true, "transformed": true,
}

// quantifiedResult matches percentages, currency amounts, Nx multipliers,
// and bare counts.
var quantifiedResult = regexp.MustCompile(`(?i)(\d+(\.\d+)?\s*%|[$€£]\s*\d[\d,.]*\s*[kmb]?|\b\d+(\.\d+)?x\b|\b\d[\d,.]*\b)`)

// Elements reports which narrative components a single bullet carries.
type Elements struct {
	Situation bool
	Action    bool
	Result    bool
}

// Complete reports whether all three elements are present.
func (e Elements) Complete() bool {
	return e.Situation && e.Action && e.Result
}

// Count returns how many elements are present.
func (e Elements) Count() int {
	n := 0
	if e.Situation {
		n++
	}
	if e.Action {
		n++
	}
	if e.Result {
		n++
	}
	return n
}

// Missing names the absent elements in fixed order.
func (e Elements) Missing() []string {
	var missing []string
	if !e.Situation {
		missing = append(missing, "situation")
	}
	if !e.Action {
		missing = append(missing, "action")
	}
	if !e.Result {
		missing = append(missing, "result")
	}
	return missing
}

// CheckBullet derives the narrative elements of one bullet. Explicit
// situation/action/result fields supplied by the generator are trusted
// without text-pattern re-derivation.
func CheckBullet(bullet types.GeneratedBullet, skillKeywords []string) Elements {
	if bullet.HasExplicitSTAR() {
		return Elements{Situation: true, Action: true, Result: true}
	}

	text := strings.TrimSpace(bullet.Text)
	textLower := strings.ToLower(text)

	return Elements{
		Situation: hasSituationOpener(textLower) || bullet.Situation != "",
		Action:    hasNamedAction(textLower, skillKeywords) || bullet.Action != "",
		Result:    quantifiedResult.MatchString(text) || bullet.Result != "",
	}
}

// Validate computes the STARResult for a role's bullet set against the
// default coverage threshold.
func Validate(rb *types.RoleBullets, skillKeywords []string) *types.STARResult {
	return ValidateWithThreshold(rb, skillKeywords, DefaultCoverageThreshold)
}

// ValidateWithThreshold computes the STARResult with an explicit threshold.
func ValidateWithThreshold(rb *types.RoleBullets, skillKeywords []string, threshold float64) *types.STARResult {
	result := &types.STARResult{}
	if rb == nil || len(rb.Bullets) == 0 {
		return result
	}

	for i, bullet := range rb.Bullets {
		elements := CheckBullet(bullet, skillKeywords)
		if elements.Complete() {
			result.BulletsWithSTAR++
			continue
		}
		result.BulletsWithoutSTAR++
		for _, missing := range elements.Missing() {
			result.MissingElements = append(result.MissingElements,
				fmt.Sprintf("bullet %d: missing %s", i+1, missing))
		}
	}

	total := len(rb.Bullets)
	result.StarCoverage = float64(result.BulletsWithSTAR) / float64(total)
	result.Passed = result.StarCoverage >= threshold

	return result
}

// hasSituationOpener checks the opener vocabulary at the start of the bullet.
func hasSituationOpener(textLower string) bool {
	for _, opener := range situationOpeners {
		if strings.HasPrefix(textLower, opener+" ") || strings.HasPrefix(textLower, opener+",") {
			return true
		}
	}
	return false
}

// hasNamedAction requires an action verb paired with a named skill or
// technology from the keyword list.
func hasNamedAction(textLower string, skillKeywords []string) bool {
	hasVerb := false
	for _, word := range strings.Fields(textLower) {
		word = strings.Trim(word, ".,!?;:")
		if actionVerbs[word] {
			hasVerb = true
			break
		}
	}
	if !hasVerb {
		return false
	}

	for _, skill := range skillKeywords {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill != "" && strings.Contains(textLower, skill) {
			return true
		}
	}
	return false
}
