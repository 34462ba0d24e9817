// Package agents contains the invokers that turn caller inputs into model
// prompts and map structured model output, or a static fallback, into typed
// results. Every operation returns a structurally valid payload even when no
// model is reachable, so downstream code never special-cases "no model".
package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/career-agent/internal/llm"
	"github.com/jonathan/career-agent/internal/schemas"
	"github.com/jonathan/career-agent/internal/types"
)

// LLM is the gateway surface agents depend on.
type LLM interface {
	CallJSON(ctx context.Context, prompt, system string, opts llm.Options) (map[string]any, error)
}

// callStructured runs one structured gateway call and shape-checks the
// payload. It returns (nil, false) whenever the caller should substitute the
// static fallback: gateway exhaustion, an empty payload, or a payload
// missing the fields downstream code reads.
func callStructured(ctx context.Context, client LLM, log *zap.Logger, agent, schema, prompt, system string, opts llm.Options) (map[string]any, bool) {
	payload, err := client.CallJSON(ctx, prompt, system, opts)
	if err != nil || len(payload) == 0 {
		log.Warn("agent falling back", zap.String("agent", agent), zap.Error(err))
		return nil, false
	}
	if err := schemas.Validate(schema, payload); err != nil {
		log.Warn("agent payload failed shape check", zap.String("agent", agent), zap.Error(err))
		return nil, false
	}
	return payload, true
}

// formatSkills renders a skill list for prompt interpolation.
func formatSkills(skills []types.Skill) string {
	if len(skills) == 0 {
		return "No skills listed"
	}

	lines := make([]string, 0, len(skills))
	for _, skill := range skills {
		line := fmt.Sprintf("- %s: %s", skill.Name, skill.Level)
		if skill.YearsExperience > 0 {
			line += fmt.Sprintf(" (%d years)", skill.YearsExperience)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// DecodeGaps extracts the skill_gaps list from a gap-analysis payload into
// typed records via a JSON round trip. Entries that do not decode are
// dropped rather than failing the whole list.
func DecodeGaps(payload map[string]any) []types.SkillGap {
	raw, ok := payload["skill_gaps"]
	if !ok {
		return nil
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil
	}

	var gaps []types.SkillGap
	if err := json.Unmarshal(encoded, &gaps); err != nil {
		return nil
	}
	return gaps
}

// DecodeWeeklyPlans extracts roadmap.weekly_plans from a roadmap payload.
func DecodeWeeklyPlans(payload map[string]any) []types.Plan {
	roadmap, ok := payload["roadmap"].(map[string]any)
	if !ok {
		return nil
	}

	encoded, err := json.Marshal(roadmap["weekly_plans"])
	if err != nil {
		return nil
	}

	var plans []types.Plan
	if err := json.Unmarshal(encoded, &plans); err != nil {
		return nil
	}
	return plans
}

// DecodeActionItems extracts action_items from a rejection-analysis payload.
func DecodeActionItems(payload map[string]any) []types.ActionItem {
	encoded, err := json.Marshal(payload["action_items"])
	if err != nil {
		return nil
	}

	var items []types.ActionItem
	if err := json.Unmarshal(encoded, &items); err != nil {
		return nil
	}
	return items
}

// ReadinessScore pulls the numeric readiness score out of a profile-analysis
// payload. The second return is false when the payload has none.
func ReadinessScore(payload map[string]any) (int, bool) {
	analysis, ok := payload["analysis"].(map[string]any)
	if !ok {
		return 0, false
	}
	score, ok := analysis["readiness_score"].(float64)
	if !ok {
		return 0, false
	}
	return int(score), true
}
