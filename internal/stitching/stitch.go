// Package stitching merges per-role bullets into one document: roles stay in
// reverse-chronological order, near-duplicate bullets across roles are
// dropped, and an optional word budget trims the least-recent roles first.
package stitching

import (
	"strings"

	"github.com/jonathan/cv-tailor/internal/textutil"
	"github.com/jonathan/cv-tailor/internal/types"
)

const (
	// DefaultSimilarityThreshold marks two bullets from different roles as
	// duplicates of the same underlying fact.
	DefaultSimilarityThreshold = 0.85

	// MaxSkillsPerRole caps each role's skill line.
	MaxSkillsPerRole = 8
)

// Options tunes stitching. A nil WordBudget retains every bullet.
type Options struct {
	WordBudget          *int
	TargetKeywords      []string
	SimilarityThreshold float64
}

func (o Options) withDefaults() Options {
	if o.SimilarityThreshold <= 0 {
		o.SimilarityThreshold = DefaultSimilarityThreshold
	}
	return o
}

// Stitch assembles all role bullets into a StitchedCV. The input order is
// preserved and assumed reverse-chronological: index 0 is the most recent
// role. Records supply per-role skills for the skill lines and may be nil.
func Stitch(allBullets []*types.RoleBullets, records []*types.RoleRecord, opts Options) *types.StitchedCV {
	o := opts.withDefaults()

	cv := &types.StitchedCV{}
	for _, rb := range allBullets {
		if rb == nil {
			continue
		}
		role := types.StitchedRole{
			RoleID:    rb.RoleID,
			Company:   rb.Company,
			Title:     rb.Title,
			Period:    rb.Period,
			Bullets:   append([]types.GeneratedBullet(nil), rb.Bullets...),
			SkillLine: skillLine(findRecord(records, rb.RoleID), o.TargetKeywords),
			Degraded:  rb.Degraded,
			QAFlagged: rb.QAResult != nil && !rb.QAResult.Passed,
		}
		cv.Roles = append(cv.Roles, role)
	}

	cv.DedupResult = dedup(cv.Roles, o)
	if o.WordBudget != nil {
		trimToBudget(cv.Roles, *o.WordBudget)
	}

	for i := range cv.Roles {
		cv.Roles[i].WordCount = roleWordCount(cv.Roles[i])
		cv.TotalWordCount += cv.Roles[i].WordCount
		cv.TotalBulletCount += len(cv.Roles[i].Bullets)
	}

	return cv
}

// dedup compares every bullet pair across different roles. For a pair above
// the similarity threshold, the instance that integrates fewer target
// keywords is dropped; on a tie the less recent role loses its copy.
func dedup(roles []types.StitchedRole, o Options) types.DedupResult {
	result := types.DedupResult{}

	type ref struct{ role, bullet int }
	dropped := make(map[ref]bool)

	for i := range roles {
		for bi := range roles[i].Bullets {
			if dropped[ref{i, bi}] {
				continue
			}
			for j := i + 1; j < len(roles) && !dropped[ref{i, bi}]; j++ {
				for bj := range roles[j].Bullets {
					if dropped[ref{i, bi}] {
						break
					}
					if dropped[ref{j, bj}] {
						continue
					}
					a, b := roles[i].Bullets[bi], roles[j].Bullets[bj]
					similarity := textutil.Ratio(a.Text, b.Text)
					if similarity <= o.SimilarityThreshold {
						continue
					}

					keep, drop := i, j
					keepB := bi
					dropB := bj
					// Keyword relevance outranks recency only when strictly higher.
					if keywordRelevance(b.Text, o.TargetKeywords) > keywordRelevance(a.Text, o.TargetKeywords) {
						keep, drop = j, i
						keepB, dropB = bj, bi
					}

					dropped[ref{drop, dropB}] = true
					result.Pairs = append(result.Pairs, types.DuplicatePair{
						KeptRoleID:    roles[keep].RoleID,
						KeptText:      roles[keep].Bullets[keepB].Text,
						DroppedRoleID: roles[drop].RoleID,
						DroppedText:   roles[drop].Bullets[dropB].Text,
						Similarity:    similarity,
					})
				}
			}
		}
	}

	if len(dropped) == 0 {
		return result
	}

	result.DroppedCount = len(dropped)
	for i := range roles {
		kept := roles[i].Bullets[:0:0]
		for bi, bullet := range roles[i].Bullets {
			if !dropped[ref{i, bi}] {
				kept = append(kept, bullet)
			}
		}
		roles[i].Bullets = kept
	}
	return result
}

// trimToBudget removes bullets from the least-recent roles until the total
// word count fits. No role is ever trimmed below one bullet, so a tight
// budget can still be exceeded.
func trimToBudget(roles []types.StitchedRole, budget int) {
	total := 0
	for i := range roles {
		total += roleWordCount(roles[i])
	}

	for i := len(roles) - 1; i >= 0 && total > budget; i-- {
		for len(roles[i].Bullets) > 1 && total > budget {
			last := len(roles[i].Bullets) - 1
			total -= roles[i].Bullets[last].WordCount()
			roles[i].Bullets = roles[i].Bullets[:last]
		}
	}
}

// skillLine orders a role's skills with JD-matching skills first, then the
// remaining hard skills, then soft skills, capped at MaxSkillsPerRole.
func skillLine(record *types.RoleRecord, targetKeywords []string) []string {
	if record == nil {
		return nil
	}

	roleSkills := append(append([]string(nil), record.HardSkills...), record.SoftSkills...)

	var line []string
	seen := make(map[string]bool)
	add := func(skill string) {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" || seen[key] || len(line) >= MaxSkillsPerRole {
			return
		}
		seen[key] = true
		line = append(line, skill)
	}

	for _, skill := range roleSkills {
		if matchesKeyword(skill, targetKeywords) {
			add(skill)
		}
	}
	for _, skill := range roleSkills {
		add(skill)
	}
	return line
}

func matchesKeyword(skill string, targetKeywords []string) bool {
	skillLower := strings.ToLower(skill)
	for _, keyword := range targetKeywords {
		keywordLower := strings.ToLower(strings.TrimSpace(keyword))
		if keywordLower == "" {
			continue
		}
		if strings.Contains(skillLower, keywordLower) || strings.Contains(keywordLower, skillLower) {
			return true
		}
	}
	return false
}

func keywordRelevance(text string, targetKeywords []string) int {
	textLower := strings.ToLower(text)
	count := 0
	for _, keyword := range targetKeywords {
		keywordLower := strings.ToLower(strings.TrimSpace(keyword))
		if keywordLower != "" && strings.Contains(textLower, keywordLower) {
			count++
		}
	}
	return count
}

func roleWordCount(role types.StitchedRole) int {
	total := 0
	for _, bullet := range role.Bullets {
		total += bullet.WordCount()
	}
	return total
}

func findRecord(records []*types.RoleRecord, roleID string) *types.RoleRecord {
	for _, record := range records {
		if record != nil && record.ID == roleID {
			return record
		}
	}
	return nil
}
