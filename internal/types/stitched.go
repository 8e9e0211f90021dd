package types

// DuplicatePair records two near-identical bullets found in different roles
// and which one was dropped.
type DuplicatePair struct {
	KeptRoleID    string  `json:"kept_role_id"`
	KeptText      string  `json:"kept_text"`
	DroppedRoleID string  `json:"dropped_role_id"`
	DroppedText   string  `json:"dropped_text"`
	Similarity    float64 `json:"similarity"`
}

// DedupResult summarizes cross-role deduplication.
type DedupResult struct {
	Pairs        []DuplicatePair `json:"pairs,omitempty"`
	DroppedCount int             `json:"dropped_count"`
}

// StitchedRole is one role's contribution to the assembled document.
type StitchedRole struct {
	RoleID    string            `json:"role_id"`
	Company   string            `json:"company"`
	Title     string            `json:"title"`
	Period    string            `json:"period"`
	Bullets   []GeneratedBullet `json:"bullets"`
	SkillLine []string          `json:"skill_line,omitempty"`
	WordCount int               `json:"word_count"`
	Degraded  bool              `json:"degraded,omitempty"`
	QAFlagged bool              `json:"qa_flagged,omitempty"`
}

// StitchedCV is the single merged document built once per run from all
// RoleBullets and immutable thereafter.
type StitchedCV struct {
	Roles            []StitchedRole `json:"roles"`
	TotalWordCount   int            `json:"total_word_count"`
	TotalBulletCount int            `json:"total_bullet_count"`
	DedupResult      DedupResult    `json:"dedup_result"`
}
