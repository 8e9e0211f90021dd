package types

import "strings"

// GeneratedBullet is a single tailored achievement bullet. SourceText must
// trace back to one of the originating role's raw achievements; Text must not
// carry any metric absent from that role's achievement corpus.
type GeneratedBullet struct {
	Text               string `json:"text"`
	SourceText         string `json:"source_text"`
	SourceMetric       string `json:"source_metric,omitempty"`
	JDKeywordUsed      string `json:"jd_keyword_used,omitempty"`
	PainPointAddressed string `json:"pain_point_addressed,omitempty"`

	// Explicit narrative components, when the generator supplies them.
	// A bullet with all three is accepted without text-pattern re-derivation.
	Situation string `json:"situation,omitempty"`
	Action    string `json:"action,omitempty"`
	Result    string `json:"result,omitempty"`

	// AnnotationInfluence records which pre-existing annotation (variant id,
	// keyword tag) shaped this bullet, for traceability.
	AnnotationInfluence string `json:"annotation_influence,omitempty"`
}

// WordCount returns the number of whitespace-separated words in the bullet text.
func (b GeneratedBullet) WordCount() int {
	return len(strings.Fields(b.Text))
}

// HasExplicitSTAR reports whether the generator supplied all three narrative
// components directly.
func (b GeneratedBullet) HasExplicitSTAR() bool {
	return b.Situation != "" && b.Action != "" && b.Result != ""
}

// RoleBullets is the per-role output of generation or variant selection.
// Validators attach their results; nothing else mutates it, and retry rounds
// produce fresh snapshots rather than editing bullets in place.
type RoleBullets struct {
	RoleID             string            `json:"role_id"`
	Company            string            `json:"company"`
	Title              string            `json:"title"`
	Period             string            `json:"period"`
	Bullets            []GeneratedBullet `json:"bullets"`
	KeywordsIntegrated []string          `json:"keywords_integrated,omitempty"`

	// FromVariants marks bullet sets built from pre-written variants.
	FromVariants bool `json:"from_variants,omitempty"`
	// Degraded marks the raw-achievement fallback path after generation failure.
	Degraded bool `json:"degraded,omitempty"`
	// FailureReason records why generation degraded, for the caller to log.
	FailureReason string `json:"failure_reason,omitempty"`

	QAResult   *QAResult   `json:"qa_result,omitempty"`
	ATSResult  *ATSResult  `json:"ats_result,omitempty"`
	STARResult *STARResult `json:"star_result,omitempty"`
}

// WordCount returns the derived total word count across all bullets.
func (rb *RoleBullets) WordCount() int {
	total := 0
	for _, b := range rb.Bullets {
		total += b.WordCount()
	}
	return total
}

// CloneWithBullets returns a copy of rb carrying a replacement bullet slice.
// Attached validation results are not copied; they describe the old snapshot.
func (rb *RoleBullets) CloneWithBullets(bullets []GeneratedBullet) *RoleBullets {
	return &RoleBullets{
		RoleID:             rb.RoleID,
		Company:            rb.Company,
		Title:              rb.Title,
		Period:             rb.Period,
		Bullets:            bullets,
		KeywordsIntegrated: append([]string(nil), rb.KeywordsIntegrated...),
		FromVariants:       rb.FromVariants,
		Degraded:           rb.Degraded,
		FailureReason:      rb.FailureReason,
	}
}
