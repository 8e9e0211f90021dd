package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("generation.json", "generate-bullets-intro")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.RoleTitle}}")
	assert.Contains(t, prompt, "ONLY permitted source of fact")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("generation.json", "no-such-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "anything")
	require.Error(t, err)
}

func TestFormat_ReplacesPlaceholders(t *testing.T) {
	out := Format("Role {{.RoleTitle}} at {{.Company}}", map[string]string{
		"RoleTitle": "Engineer",
		"Company":   "Acme",
	})
	assert.Equal(t, "Role Engineer at Acme", out)
}

func TestFormat_LeavesUnknownPlaceholders(t *testing.T) {
	out := Format("Hello {{.Name}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Hello {{.Name}}", out)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("generation.json", "definitely-missing")
	})
}
