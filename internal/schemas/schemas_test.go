package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AllSchemasCompile(t *testing.T) {
	names := []string{
		ProfileAnalysis,
		Readiness,
		GapAnalysis,
		RoleRequirements,
		GapPriorities,
		Roadmap,
		Projects,
		RejectionAnalysis,
		InterviewAnalysis,
		FeedbackPatterns,
		ProgressAnalysis,
		WeeklyReport,
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			// An empty payload exercises compilation; every schema has at
			// least one required field so it must come back invalid.
			err := Validate(name, map[string]any{})
			assert.Error(t, err)
		})
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("no_such_schema", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidate_ProfileAnalysis(t *testing.T) {
	good := map[string]any{
		"analysis": map[string]any{"readiness_score": float64(70), "extra": "fields are fine"},
	}
	assert.NoError(t, Validate(ProfileAnalysis, good))

	missingScore := map[string]any{"analysis": map[string]any{}}
	assert.Error(t, Validate(ProfileAnalysis, missingScore))

	wrongType := map[string]any{"analysis": map[string]any{"readiness_score": "seventy"}}
	assert.Error(t, Validate(ProfileAnalysis, wrongType))
}

func TestValidate_GapAnalysis(t *testing.T) {
	good := map[string]any{
		"skill_gaps": []any{map[string]any{"skill_name": "Docker"}},
	}
	assert.NoError(t, Validate(GapAnalysis, good))

	emptyList := map[string]any{"skill_gaps": []any{}}
	assert.NoError(t, Validate(GapAnalysis, emptyList), "no gaps is a valid analysis")

	namelessEntry := map[string]any{"skill_gaps": []any{map[string]any{"priority": "high"}}}
	assert.Error(t, Validate(GapAnalysis, namelessEntry))
}

func TestValidate_GapPriorities(t *testing.T) {
	good := map[string]any{
		"prioritized_gaps": []any{map[string]any{"skill_name": "Docker", "rank": float64(1)}},
	}
	assert.NoError(t, Validate(GapPriorities, good))

	namelessEntry := map[string]any{"prioritized_gaps": []any{map[string]any{"rank": float64(1)}}}
	assert.Error(t, Validate(GapPriorities, namelessEntry))
}

func TestValidate_WeeklyReport(t *testing.T) {
	good := map[string]any{
		"report_title": "Week 3 Progress Report",
		"week_summary": "Solid momentum this week.",
	}
	assert.NoError(t, Validate(WeeklyReport, good))

	assert.Error(t, Validate(WeeklyReport, map[string]any{
		"report_title": "Week 3 Progress Report",
	}), "week_summary is required")
}

func TestValidate_Roadmap(t *testing.T) {
	good := map[string]any{
		"roadmap": map[string]any{"weekly_plans": []any{}},
	}
	assert.NoError(t, Validate(Roadmap, good))

	assert.Error(t, Validate(Roadmap, map[string]any{"roadmap": map[string]any{}}))
}

func TestValidate_RejectionAnalysis(t *testing.T) {
	good := map[string]any{
		"rejection_analysis": map[string]any{"likely_reasons": []any{"timing"}},
		"action_items":       []any{},
	}
	assert.NoError(t, Validate(RejectionAnalysis, good))

	assert.Error(t, Validate(RejectionAnalysis, map[string]any{
		"rejection_analysis": map[string]any{},
	}), "action_items is required")
}

func TestValidate_CachedSchemaReuse(t *testing.T) {
	payload := map[string]any{"projects": []any{}}
	require.NoError(t, Validate(Projects, payload))
	require.NoError(t, Validate(Projects, payload))
}
