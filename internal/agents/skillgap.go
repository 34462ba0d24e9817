package agents

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/career-agent/internal/llm"
	"github.com/jonathan/career-agent/internal/prompts"
	"github.com/jonathan/career-agent/internal/schemas"
	"github.com/jonathan/career-agent/internal/types"
)

// roleProfile is the locally known requirement set for one role.
type roleProfile struct {
	required   []string
	preferred  []string
	softSkills []string
}

// knownRoles backs gap analysis when no model is reachable and answers
// RoleRequirements for common roles without a model call at all.
var knownRoles = map[string]roleProfile{
	"Full Stack Developer": {
		required:   []string{"JavaScript", "React", "Node.js", "SQL", "Git", "REST APIs", "HTML/CSS"},
		preferred:  []string{"TypeScript", "Docker", "AWS", "MongoDB", "GraphQL", "CI/CD"},
		softSkills: []string{"Problem Solving", "Communication", "Team Collaboration"},
	},
	"Frontend Developer": {
		required:   []string{"JavaScript", "React", "HTML/CSS", "Git", "Responsive Design"},
		preferred:  []string{"TypeScript", "Vue.js", "Testing", "Webpack", "Figma"},
		softSkills: []string{"Attention to Detail", "Communication", "Creativity"},
	},
	"Backend Developer": {
		required:   []string{"Python", "Node.js", "SQL", "REST APIs", "Git"},
		preferred:  []string{"Docker", "AWS", "Redis", "Microservices", "GraphQL"},
		softSkills: []string{"Problem Solving", "System Thinking", "Documentation"},
	},
	"Data Scientist": {
		required:   []string{"Python", "SQL", "Statistics", "Machine Learning", "Pandas", "NumPy"},
		preferred:  []string{"TensorFlow", "PyTorch", "Spark", "Tableau", "Deep Learning"},
		softSkills: []string{"Analytical Thinking", "Communication", "Curiosity"},
	},
	"Software Engineer": {
		required:   []string{"Programming", "Data Structures", "Algorithms", "Git", "Problem Solving"},
		preferred:  []string{"System Design", "Cloud", "CI/CD", "Testing", "Agile"},
		softSkills: []string{"Communication", "Teamwork", "Critical Thinking"},
	},
}

// defaultRole is the profile used when a target role matches nothing known.
const defaultRole = "Software Engineer"

// SkillGapAgent compares a user's skills against role requirements.
type SkillGapAgent struct {
	llm LLM
	log *zap.Logger
}

func NewSkillGapAgent(client LLM, log *zap.Logger) *SkillGapAgent {
	return &SkillGapAgent{llm: client, log: log}
}

// AnalyzeGaps produces a full gap analysis for the target role. The fallback
// diffs the skills against the locally known role profile: a required skill
// missing from the list is a high-priority gap, a preferred one a medium
// gap. Matching is exact on the lowercased name, so "python" satisfies a
// "Python" requirement but "py" does not.
func (a *SkillGapAgent) AnalyzeGaps(ctx context.Context, skills []types.Skill, targetRole string) types.AgentResult {
	prompt := prompts.Format(prompts.MustGet("analyze-gaps"), map[string]string{
		"TargetRole": orUnknown(targetRole),
		"Skills":     formatSkills(skills),
	})
	system := prompts.MustGet("skillgap-system")

	payload, ok := callStructured(ctx, a.llm, a.log, string(types.AgentSkillGap), schemas.GapAnalysis, prompt, system, llm.DefaultOptions())
	if !ok {
		return types.AgentResult{
			Agent:   types.AgentSkillGap,
			Status:  types.StatusFallback,
			Payload: fallbackGapAnalysis(skills, targetRole),
		}
	}
	return types.AgentResult{Agent: types.AgentSkillGap, Status: types.StatusSuccess, Payload: payload}
}

// CompareWithJob matches the user's skills against a concrete requirement
// list. It is pure: no model call, substring matching in either direction so
// "REST" matches a "REST APIs" requirement.
func (a *SkillGapAgent) CompareWithJob(skills []types.Skill, requirements []string) types.AgentResult {
	names := make([]string, 0, len(skills))
	for _, skill := range skills {
		names = append(names, strings.ToLower(skill.Name))
	}

	matching := []any{}
	missing := []any{}
	for _, req := range requirements {
		reqLower := strings.ToLower(req)
		matched := false
		for _, name := range names {
			if name != "" && (strings.Contains(name, reqLower) || strings.Contains(reqLower, name)) {
				matched = true
				break
			}
		}
		if matched {
			matching = append(matching, req)
		} else {
			missing = append(missing, req)
		}
	}

	matchPercentage := 0
	if len(requirements) > 0 {
		matchPercentage = int(math.Round(float64(len(matching)) / float64(len(requirements)) * 100))
	}

	return types.AgentResult{
		Agent:  types.AgentSkillGap,
		Status: types.StatusSuccess,
		Payload: map[string]any{
			"matching_skills":  matching,
			"missing_skills":   missing,
			"match_percentage": matchPercentage,
			"total_required":   len(requirements),
			"skills_matched":   len(matching),
			"skills_missing":   len(missing),
		},
	}
}

// RoleRequirements answers from the local role table when the role name
// matches a known role in either direction, and asks the model only for
// unknown roles. Model failure falls back to the default profile.
func (a *SkillGapAgent) RoleRequirements(ctx context.Context, role string) types.AgentResult {
	if name, profile, ok := lookupRole(role); ok {
		return types.AgentResult{
			Agent:   types.AgentSkillGap,
			Status:  types.StatusSuccess,
			Payload: rolePayload(name, profile),
		}
	}

	prompt := prompts.Format(prompts.MustGet("role-requirements"), map[string]string{
		"Role": role,
	})
	system := prompts.MustGet("skillgap-system")

	payload, ok := callStructured(ctx, a.llm, a.log, string(types.AgentSkillGap), schemas.RoleRequirements, prompt, system, llm.DefaultOptions())
	if !ok {
		return types.AgentResult{
			Agent:   types.AgentSkillGap,
			Status:  types.StatusFallback,
			Payload: rolePayload(defaultRole, knownRoles[defaultRole]),
		}
	}
	return types.AgentResult{Agent: types.AgentSkillGap, Status: types.StatusSuccess, Payload: payload}
}

// PrioritizeGaps orders known gaps into a learning sequence for the career
// goal. Empty input is a no_data result. The fallback ranks by the stored gap
// priority, high tier first, keeping input order within a tier.
func (a *SkillGapAgent) PrioritizeGaps(ctx context.Context, gaps []types.SkillGap, careerGoal string) types.AgentResult {
	if len(gaps) == 0 {
		return types.AgentResult{
			Agent:   types.AgentSkillGap,
			Status:  types.StatusNoData,
			Payload: map[string]any{"message": "No skill gaps to prioritize"},
		}
	}

	prompt := prompts.Format(prompts.MustGet("prioritize-gaps"), map[string]string{
		"CareerGoal": orUnknown(careerGoal),
		"Gaps":       formatGaps(gaps),
	})
	system := prompts.MustGet("skillgap-system")

	payload, ok := callStructured(ctx, a.llm, a.log, string(types.AgentSkillGap), schemas.GapPriorities, prompt, system, llm.DefaultOptions())
	if !ok {
		return types.AgentResult{
			Agent:   types.AgentSkillGap,
			Status:  types.StatusFallback,
			Payload: fallbackPriorities(gaps),
		}
	}
	return types.AgentResult{Agent: types.AgentSkillGap, Status: types.StatusSuccess, Payload: payload}
}

func fallbackPriorities(gaps []types.SkillGap) map[string]any {
	ranked := []any{}
	phases := []any{}

	for _, tier := range []string{"high", "medium", "low"} {
		skills := []any{}
		for _, gap := range gaps {
			if priorityTier(gap.Priority) != tier {
				continue
			}
			ranked = append(ranked, map[string]any{
				"rank":            len(ranked) + 1,
				"skill_name":      gap.SkillName,
				"priority":        tier,
				"reason":          "Ordered by recorded gap priority",
				"dependencies":    []any{},
				"time_investment": "2-4 weeks",
			})
			skills = append(skills, gap.SkillName)
		}
		if len(skills) == 0 {
			continue
		}
		phases = append(phases, map[string]any{
			"phase":    len(phases) + 1,
			"name":     fmt.Sprintf("%s priority skills", strings.ToUpper(tier[:1])+tier[1:]),
			"skills":   skills,
			"duration": fmt.Sprintf("%d weeks", len(skills)*2),
		})
	}

	return map[string]any{
		"prioritized_gaps":  ranked,
		"learning_phases":   phases,
		"parallel_learning": []any{},
		"recommendation":    "Close the high-priority gaps first; preferred skills can wait until the core requirements are covered.",
	}
}

// priorityTier normalizes a stored gap priority into the three fallback
// tiers. Unrecognized values rank as medium.
func priorityTier(priority string) string {
	switch strings.ToLower(priority) {
	case "high", "critical":
		return "high"
	case "low":
		return "low"
	default:
		return "medium"
	}
}

// lookupRole finds a known role whose name contains, or is contained in,
// the requested role, case-insensitively.
func lookupRole(role string) (string, roleProfile, bool) {
	roleLower := strings.ToLower(strings.TrimSpace(role))
	if roleLower == "" {
		return "", roleProfile{}, false
	}
	for name, profile := range knownRoles {
		nameLower := strings.ToLower(name)
		if strings.Contains(nameLower, roleLower) || strings.Contains(roleLower, nameLower) {
			return name, profile, true
		}
	}
	return "", roleProfile{}, false
}

func rolePayload(name string, profile roleProfile) map[string]any {
	return map[string]any{
		"role":        name,
		"required":    toAnySlice(profile.required),
		"preferred":   toAnySlice(profile.preferred),
		"soft_skills": toAnySlice(profile.softSkills),
		"experience":  "Varies by company and seniority",
	}
}

func fallbackGapAnalysis(skills []types.Skill, targetRole string) map[string]any {
	name, profile, ok := lookupRole(targetRole)
	if !ok {
		name, profile = defaultRole, knownRoles[defaultRole]
	}

	have := make(map[string]bool, len(skills))
	for _, skill := range skills {
		have[strings.ToLower(skill.Name)] = true
	}

	gaps := []any{}
	matching := []any{}
	highPriority := 0

	for _, req := range profile.required {
		if have[strings.ToLower(req)] {
			matching = append(matching, map[string]any{"skill_name": req, "status": "meets"})
			continue
		}
		highPriority++
		gaps = append(gaps, map[string]any{
			"skill_name":              req,
			"current_level":           "none",
			"required_level":          "intermediate",
			"priority":                "high",
			"importance":              "Core requirement for role",
			"estimated_learning_time": "2-4 weeks",
		})
	}
	for _, pref := range profile.preferred {
		if have[strings.ToLower(pref)] {
			continue
		}
		gaps = append(gaps, map[string]any{
			"skill_name":              pref,
			"current_level":           "none",
			"required_level":          "beginner",
			"priority":                "medium",
			"importance":              "Preferred skill for role",
			"estimated_learning_time": "1-2 weeks",
		})
	}

	readiness := 50
	if len(matching)+len(gaps) > 0 {
		readiness = int(math.Round(float64(len(matching)) / float64(len(matching)+len(gaps)) * 100))
	}

	criticalPath := []any{}
	for _, gap := range gaps {
		entry := gap.(map[string]any)
		if entry["priority"] == "high" && len(criticalPath) < 3 {
			criticalPath = append(criticalPath, entry["skill_name"])
		}
	}

	return map[string]any{
		"target_role":     name,
		"skill_gaps":      gaps,
		"matching_skills": matching,
		"gap_summary": map[string]any{
			"total_gaps":      len(gaps),
			"high_priority":   highPriority,
			"medium_priority": len(gaps) - highPriority,
			"low_priority":    0,
		},
		"readiness_percentage": readiness,
		"critical_path":        criticalPath,
		"overall_assessment":   "Analysis based on standard role requirements.",
	}
}

func toAnySlice(items []string) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
