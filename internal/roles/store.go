package roles

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jonathan/cv-tailor/internal/types"
)

// profileFile is the manifest at the root of the data path. Role records may
// be inline or referenced by relative file path.
type profileFile struct {
	Candidate      types.CandidateInfo `json:"candidate"`
	Roles          []types.RoleRecord  `json:"roles,omitempty"`
	RoleFiles      []string            `json:"role_files,omitempty"`
	SkillWhitelist []string            `json:"skill_whitelist"`
}

// Load reads the candidate profile from dataPath/profile.json. Roles keep
// their manifest order (reverse-chronological by convention). Any missing or
// invalid role file is a fatal load error.
func Load(dataPath string) (*types.CandidateProfile, error) {
	manifestPath := filepath.Join(dataPath, "profile.json")

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, &LoadError{Path: manifestPath, Message: "failed to read profile manifest", Cause: err}
	}

	var manifest profileFile
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, &LoadError{Path: manifestPath, Message: "failed to parse profile manifest", Cause: err}
	}

	records := make([]types.RoleRecord, 0, len(manifest.Roles)+len(manifest.RoleFiles))
	records = append(records, manifest.Roles...)

	for _, rel := range manifest.RoleFiles {
		rolePath := filepath.Join(dataPath, rel)
		record, err := loadRoleFile(rolePath)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if len(records) == 0 {
		return nil, &LoadError{Path: manifestPath, Message: "profile manifest contains no roles"}
	}

	for i := range records {
		if err := records[i].Validate(); err != nil {
			return nil, &LoadError{
				Path:    manifestPath,
				Message: "invalid role record " + records[i].ID,
				Cause:   err,
			}
		}
	}

	return &types.CandidateProfile{
		Candidate:      manifest.Candidate,
		Roles:          records,
		SkillWhitelist: manifest.SkillWhitelist,
	}, nil
}

// loadRoleFile reads and parses a single referenced role record.
func loadRoleFile(path string) (*types.RoleRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read role file", Cause: err}
	}

	var record types.RoleRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to parse role file", Cause: err}
	}

	return &record, nil
}
