package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"data_path": "/tmp",
		"target_bullets": 4,
		"word_budget": 600,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/tmp", cfg.DataPath)
	assert.Equal(t, 4, cfg.TargetBullets)
	assert.Equal(t, 600, cfg.WordBudget)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

	_, err = LoadConfig(tmpFile)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty config", Config{}, false},
		{"valid bullets", Config{TargetBullets: 6}, false},
		{"negative bullets", Config{TargetBullets: -1}, true},
		{"too many bullets", Config{TargetBullets: 11}, true},
		{"negative budget", Config{WordBudget: -10}, true},
		{"missing data path", Config{DataPath: "/no/such/dir"}, true},
		{"missing job context", Config{JobContext: "/no/such/file.json"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{DataPath: "/explicit", TargetBullets: 0}
	defaults := Config{DataPath: "/default", TargetBullets: 4, APIKey: "key"}

	merged := cfg.MergeWithDefaults(defaults)
	assert.Equal(t, "/explicit", merged.DataPath)
	assert.Equal(t, 4, merged.TargetBullets)
	assert.Equal(t, "key", merged.APIKey)
}
