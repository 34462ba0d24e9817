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

// ProfileInput is the candidate context the reasoning agent works from.
type ProfileInput struct {
	Name         string
	CurrentLevel string
	CareerGoal   string
	TargetRole   string
	Skills       []types.Skill
}

// ReasoningAgent assesses overall job readiness from a candidate profile.
type ReasoningAgent struct {
	llm LLM
	log *zap.Logger
}

func NewReasoningAgent(client LLM, log *zap.Logger) *ReasoningAgent {
	return &ReasoningAgent{llm: client, log: log}
}

// AnalyzeProfile scores readiness for the target role and lists strengths,
// weaknesses and recommendations. When no model answer is usable it falls
// back to a skill-count heuristic with the same payload shape.
func (a *ReasoningAgent) AnalyzeProfile(ctx context.Context, in ProfileInput) types.AgentResult {
	prompt := prompts.Format(prompts.MustGet("analyze-profile"), map[string]string{
		"Name":         orUnknown(in.Name),
		"CurrentLevel": orUnknown(in.CurrentLevel),
		"CareerGoal":   orUnknown(in.CareerGoal),
		"TargetRole":   orUnknown(in.TargetRole),
		"Skills":       formatSkills(in.Skills),
	})
	system := prompts.MustGet("reasoning-system")

	payload, ok := callStructured(ctx, a.llm, a.log, string(types.AgentReasoning), schemas.ProfileAnalysis, prompt, system, llm.DefaultOptions())
	if !ok {
		return types.AgentResult{
			Agent:   types.AgentReasoning,
			Status:  types.StatusFallback,
			Payload: a.fallbackProfile(in),
		}
	}
	return types.AgentResult{Agent: types.AgentReasoning, Status: types.StatusSuccess, Payload: payload}
}

// CalculateReadiness estimates readiness for a role from the skill list
// alone, without the full profile.
func (a *ReasoningAgent) CalculateReadiness(ctx context.Context, skills []types.Skill, targetRole string) types.AgentResult {
	prompt := prompts.Format(prompts.MustGet("calculate-readiness"), map[string]string{
		"TargetRole": orUnknown(targetRole),
		"Skills":     formatSkills(skills),
	})
	system := prompts.MustGet("reasoning-system")

	payload, ok := callStructured(ctx, a.llm, a.log, string(types.AgentReasoning), schemas.Readiness, prompt, system, llm.DefaultOptions())
	if !ok {
		score := heuristicScore(skills)
		return types.AgentResult{
			Agent:  types.AgentReasoning,
			Status: types.StatusFallback,
			Payload: map[string]any{
				"readiness": map[string]any{
					"score":            score,
					"level":            readinessLevel(score),
					"missing_critical": []any{},
					"summary":          fmt.Sprintf("Estimated from %d listed skills; add more skills for a better estimate.", len(skills)),
				},
			},
		}
	}
	return types.AgentResult{Agent: types.AgentReasoning, Status: types.StatusSuccess, Payload: payload}
}

func (a *ReasoningAgent) fallbackProfile(in ProfileInput) map[string]any {
	score := heuristicScore(in.Skills)

	strengths := []any{}
	for _, skill := range in.Skills {
		if skill.Level == "advanced" || skill.Level == "expert" {
			strengths = append(strengths, skill.Name)
		}
	}

	return map[string]any{
		"analysis": map[string]any{
			"readiness_score": score,
			"strengths":       strengths,
			"weaknesses":      []any{},
			"summary": fmt.Sprintf("Heuristic assessment based on %d listed skills for the %s role. Run a full analysis once a model is reachable.",
				len(in.Skills), orUnknown(in.TargetRole)),
		},
		"recommendations": []any{
			"Add more skills to your profile for a sharper assessment",
			"Set a primary goal with a clear target role",
		},
	}
}

// heuristicScore is the deterministic stand-in for a model readiness score:
// a floor of 30 plus 5 per listed skill, capped at 80 so a fallback never
// claims full readiness.
func heuristicScore(skills []types.Skill) int {
	score := 30 + 5*len(skills)
	if score > 80 {
		score = 80
	}
	return score
}

func readinessLevel(score int) string {
	switch {
	case score >= 75:
		return "ready"
	case score >= 50:
		return "getting_close"
	default:
		return "not_ready"
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
