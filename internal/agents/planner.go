package agents

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/career-agent/internal/llm"
	"github.com/jonathan/career-agent/internal/prompts"
	"github.com/jonathan/career-agent/internal/schemas"
	"github.com/jonathan/career-agent/internal/types"
)

// fallbackWeeks caps the length of a statically generated roadmap.
const fallbackWeeks = 4

// PlannerAgent turns skill gaps into week-by-week learning roadmaps.
type PlannerAgent struct {
	llm LLM
	log *zap.Logger
}

func NewPlannerAgent(client LLM, log *zap.Logger) *PlannerAgent {
	return &PlannerAgent{llm: client, log: log}
}

// CreateRoadmap builds a weekly learning plan closing the given gaps. The
// fallback assigns one gap per week in the order given, highest priority
// first being the caller's responsibility, capped at four weeks.
func (a *PlannerAgent) CreateRoadmap(ctx context.Context, gaps []types.SkillGap, targetRole, timeline string) types.AgentResult {
	if timeline == "" {
		timeline = "3 months"
	}

	prompt := prompts.Format(prompts.MustGet("create-roadmap"), map[string]string{
		"TargetRole": orUnknown(targetRole),
		"Timeline":   timeline,
		"Gaps":       formatGaps(gaps),
	})
	system := prompts.MustGet("planner-system")

	payload, ok := callStructured(ctx, a.llm, a.log, string(types.AgentPlanner), schemas.Roadmap, prompt, system, llm.DefaultOptions())
	if !ok {
		return types.AgentResult{
			Agent:   types.AgentPlanner,
			Status:  types.StatusFallback,
			Payload: fallbackRoadmap(gaps, targetRole, timeline),
		}
	}
	return types.AgentResult{Agent: types.AgentPlanner, Status: types.StatusSuccess, Payload: payload}
}

// SuggestProjects proposes portfolio projects practicing the given skills.
func (a *PlannerAgent) SuggestProjects(ctx context.Context, skills []types.Skill, level string) types.AgentResult {
	if level == "" {
		level = "junior"
	}

	prompt := prompts.Format(prompts.MustGet("suggest-projects"), map[string]string{
		"Level":  level,
		"Skills": formatSkills(skills),
	})
	system := prompts.MustGet("planner-system")

	payload, ok := callStructured(ctx, a.llm, a.log, string(types.AgentPlanner), schemas.Projects, prompt, system, llm.DefaultOptions())
	if !ok {
		return types.AgentResult{
			Agent:  types.AgentPlanner,
			Status: types.StatusFallback,
			Payload: map[string]any{
				"projects": []any{
					map[string]any{
						"name":               "Personal portfolio site",
						"description":        "Build and deploy a site showcasing your work, with a writeup per project.",
						"skills_practiced":   []any{"Git", "Deployment"},
						"estimated_duration": "1-2 weeks",
					},
					map[string]any{
						"name":               "CRUD application with authentication",
						"description":        "A small full-stack app with user accounts, a database and tests.",
						"skills_practiced":   []any{"SQL", "REST APIs", "Testing"},
						"estimated_duration": "2-3 weeks",
					},
				},
			},
		}
	}
	return types.AgentResult{Agent: types.AgentPlanner, Status: types.StatusSuccess, Payload: payload}
}

func formatGaps(gaps []types.SkillGap) string {
	if len(gaps) == 0 {
		return "No specific gaps identified"
	}

	out := ""
	for i, gap := range gaps {
		if i > 0 {
			out += "\n"
		}
		out += fmt.Sprintf("- %s (priority: %s, current: %s, required: %s)",
			gap.SkillName, gap.Priority, gap.CurrentLevel, gap.RequiredLevel)
	}
	return out
}

func fallbackRoadmap(gaps []types.SkillGap, targetRole, timeline string) map[string]any {
	weeks := len(gaps)
	if weeks > fallbackWeeks {
		weeks = fallbackWeeks
	}

	weekly := []any{}
	if weeks == 0 {
		weekly = append(weekly, map[string]any{
			"week_number": 1,
			"title":       "Foundations review",
			"description": "Consolidate existing skills and identify concrete gaps to close.",
			"tasks": []any{
				map[string]any{"title": "List target roles and collect three real job postings", "completed": false},
				map[string]any{"title": "Compare posted requirements against your current skills", "completed": false},
			},
			"milestones": []any{"A written list of skill gaps to work on"},
		})
	}

	for i := 0; i < weeks; i++ {
		gap := gaps[i]
		weekly = append(weekly, map[string]any{
			"week_number": i + 1,
			"title":       fmt.Sprintf("Learn %s", gap.SkillName),
			"description": fmt.Sprintf("Reach a working %s level in %s.", orDefault(gap.RequiredLevel, "intermediate"), gap.SkillName),
			"tasks": []any{
				map[string]any{"title": fmt.Sprintf("Complete an introductory course or tutorial on %s", gap.SkillName), "completed": false},
				map[string]any{"title": fmt.Sprintf("Build a small exercise project using %s", gap.SkillName), "completed": false},
				map[string]any{"title": fmt.Sprintf("Write notes on how %s applies to the %s role", gap.SkillName, orUnknown(targetRole)), "completed": false},
			},
			"milestones": []any{fmt.Sprintf("Can demonstrate %s in an interview", gap.SkillName)},
		})
	}

	return map[string]any{
		"roadmap": map[string]any{
			"target_role":  orUnknown(targetRole),
			"timeline":     timeline,
			"weekly_plans": weekly,
			"summary":      "Generated plan covering the highest-priority gaps one week at a time.",
		},
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
