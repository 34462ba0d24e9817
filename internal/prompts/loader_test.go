package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_AllAgentPromptKeys(t *testing.T) {
	keys := []string{
		"reasoning-system",
		"analyze-profile",
		"calculate-readiness",
		"skillgap-system",
		"analyze-gaps",
		"role-requirements",
		"prioritize-gaps",
		"planner-system",
		"create-roadmap",
		"suggest-projects",
		"feedback-system",
		"analyze-rejection",
		"analyze-interview",
		"detect-patterns",
		"analyze-progress",
		"weekly-report",
		"chat-system",
	}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			prompt, err := Get(key)
			require.NoError(t, err)
			assert.NotEmpty(t, prompt)
		})
	}
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("no-such-prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-prompt")
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("no-such-prompt")
	})
	assert.NotPanics(t, func() {
		MustGet("chat-system")
	})
}

func TestFormat(t *testing.T) {
	template := "Analyze {{.Name}} for the {{.Role}} role. {{.Name}} again."
	got := Format(template, map[string]string{"Name": "Ada", "Role": "Backend Developer"})
	assert.Equal(t, "Analyze Ada for the Backend Developer role. Ada again.", got)
}

func TestFormat_UnknownPlaceholderLeftAlone(t *testing.T) {
	got := Format("Hello {{.Missing}}", map[string]string{"Name": "Ada"})
	assert.Equal(t, "Hello {{.Missing}}", got)
}
