package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-agent/internal/llm"
	"github.com/jonathan/career-agent/internal/types"
)

// fakeLLM returns a scripted payload, or errors when err is set. It records
// whether it was called at all.
type fakeLLM struct {
	payload map[string]any
	err     error
	called  bool
	prompt  string
}

func (f *fakeLLM) CallJSON(_ context.Context, prompt, _ string, _ llm.Options) (map[string]any, error) {
	f.called = true
	f.prompt = prompt
	return f.payload, f.err
}

func exhausted() *fakeLLM {
	return &fakeLLM{err: llm.ErrExhausted}
}

func TestFormatSkills(t *testing.T) {
	assert.Equal(t, "No skills listed", formatSkills(nil))

	skills := []types.Skill{
		{Name: "Go", Level: "advanced", YearsExperience: 3},
		{Name: "SQL", Level: "intermediate"},
	}
	got := formatSkills(skills)
	assert.Equal(t, "- Go: advanced (3 years)\n- SQL: intermediate", got)
}

func TestDecodeGaps(t *testing.T) {
	payload := map[string]any{
		"skill_gaps": []any{
			map[string]any{"skill_name": "Docker", "priority": "high", "current_level": "none", "required_level": "intermediate"},
			map[string]any{"skill_name": "AWS", "priority": "medium"},
		},
	}

	gaps := DecodeGaps(payload)
	require.Len(t, gaps, 2)
	assert.Equal(t, "Docker", gaps[0].SkillName)
	assert.Equal(t, "high", gaps[0].Priority)
	assert.Equal(t, "intermediate", gaps[0].RequiredLevel)
	assert.Equal(t, "AWS", gaps[1].SkillName)

	assert.Nil(t, DecodeGaps(map[string]any{}))
	assert.Nil(t, DecodeGaps(map[string]any{"skill_gaps": "not a list"}))
}

func TestDecodeWeeklyPlans(t *testing.T) {
	payload := map[string]any{
		"roadmap": map[string]any{
			"weekly_plans": []any{
				map[string]any{
					"week_number": 1,
					"title":       "Learn Docker",
					"tasks":       []any{map[string]any{"title": "Intro course", "completed": false}},
					"milestones":  []any{"Container running locally"},
				},
			},
		},
	}

	plans := DecodeWeeklyPlans(payload)
	require.Len(t, plans, 1)
	assert.Equal(t, 1, plans[0].WeekNumber)
	assert.Equal(t, "Learn Docker", plans[0].Title)
	require.Len(t, plans[0].Tasks, 1)
	assert.Equal(t, "Intro course", plans[0].Tasks[0].Title)

	assert.Nil(t, DecodeWeeklyPlans(map[string]any{"roadmap": "nope"}))
	assert.Nil(t, DecodeWeeklyPlans(map[string]any{}))
}

func TestDecodeActionItems(t *testing.T) {
	payload := map[string]any{
		"action_items": []any{
			map[string]any{"action": "Practice system design", "priority": "high", "timeline": "2 weeks"},
		},
	}

	items := DecodeActionItems(payload)
	require.Len(t, items, 1)
	assert.Equal(t, "Practice system design", items[0].Action)
	assert.Equal(t, "high", items[0].Priority)

	assert.Nil(t, DecodeActionItems(map[string]any{}))
}

func TestReadinessScore(t *testing.T) {
	score, ok := ReadinessScore(map[string]any{
		"analysis": map[string]any{"readiness_score": float64(72)},
	})
	assert.True(t, ok)
	assert.Equal(t, 72, score)

	_, ok = ReadinessScore(map[string]any{"analysis": map[string]any{}})
	assert.False(t, ok)

	_, ok = ReadinessScore(map[string]any{})
	assert.False(t, ok)
}
