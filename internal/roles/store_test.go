package roles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_InlineRoles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "profile.json"), `{
		"candidate": {"name": "Jane Doe", "email": "jane@example.com"},
		"skill_whitelist": ["Go", "Kubernetes"],
		"roles": [
			{
				"id": "acme-sre",
				"company": "Acme",
				"title": "SRE",
				"period": "2021-2024",
				"achievements": ["Reduced incident rate by 75% through SRE practices"]
			}
		]
	}`)

	profile, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", profile.Candidate.Name)
	require.Len(t, profile.Roles, 1)
	assert.Equal(t, "acme-sre", profile.Roles[0].ID)
	assert.Equal(t, []string{"Go", "Kubernetes"}, profile.SkillWhitelist)
}

func TestLoad_ReferencedRoleFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "profile.json"), `{
		"candidate": {"name": "Jane Doe"},
		"role_files": ["roles/acme.json"]
	}`)
	writeFile(t, filepath.Join(dir, "roles", "acme.json"), `{
		"id": "acme-sre",
		"company": "Acme",
		"title": "SRE",
		"period": "2021-2024",
		"achievements": ["Cut deploy time from 45 minutes to 8 minutes"]
	}`)

	profile, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, profile.Roles, 1)
	assert.Equal(t, "Acme", profile.Roles[0].Company)
}

func TestLoad_MissingRoleFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "profile.json"), `{
		"candidate": {"name": "Jane Doe"},
		"role_files": ["roles/missing.json"]
	}`)

	_, err := Load(dir)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Path, "missing.json")
}

func TestLoad_InvalidRoleRecord(t *testing.T) {
	dir := t.TempDir()
	// Role without achievements fails validation.
	writeFile(t, filepath.Join(dir, "profile.json"), `{
		"candidate": {"name": "Jane Doe"},
		"roles": [{"id": "r1", "company": "Acme", "title": "SRE", "period": "2021", "achievements": []}]
	}`)

	_, err := Load(dir)
	require.Error(t, err)
}

func TestLoad_EmptyManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "profile.json"), `{"candidate": {"name": "Jane Doe"}}`)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no roles")
}

func TestLoad_MissingManifest(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
}
