package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/career-agent/internal/llm"
	"github.com/jonathan/career-agent/internal/prompts"
	"github.com/jonathan/career-agent/internal/schemas"
	"github.com/jonathan/career-agent/internal/types"
)

// patternHistoryLimit bounds how many feedback entries go into a pattern
// prompt.
const patternHistoryLimit = 10

// coachTemperature is slightly higher than the structured-analysis default
// so feedback responses read less canned.
const coachTemperature float32 = 0.4

// reportTemperature loosens generation further for the weekly report, which
// is narrative rather than analytical.
const reportTemperature float32 = 0.5

// ReportInput summarizes one week of activity for report generation.
type ReportInput struct {
	Name           string
	TargetRole     string
	CurrentWeek    int
	TasksCompleted []string
	Applications   int
	Challenges     string
}

// FeedbackAgent analyzes rejections, interview feedback, and progress.
type FeedbackAgent struct {
	llm LLM
	log *zap.Logger
}

func NewFeedbackAgent(client LLM, log *zap.Logger) *FeedbackAgent {
	return &FeedbackAgent{llm: client, log: log}
}

func coachOptions() llm.Options {
	opts := llm.DefaultOptions()
	opts.Temperature = coachTemperature
	return opts
}

// AnalyzeRejection extracts likely reasons and action items from a
// rejection. The fallback gives generic but still structured advice.
func (a *FeedbackAgent) AnalyzeRejection(ctx context.Context, in types.FeedbackInput) types.AgentResult {
	prompt := prompts.Format(prompts.MustGet("analyze-rejection"), map[string]string{
		"Company":       orUnknown(in.Company),
		"Role":          orUnknown(in.Role),
		"Stage":         orUnknown(in.Stage),
		"Message":       orDefault(in.Message, "No specific feedback"),
		"InterviewType": orUnknown(in.InterviewType),
		"UserSkills":    orDefault(in.UserSkills, "Not provided"),
	})
	system := prompts.MustGet("feedback-system")

	payload, ok := callStructured(ctx, a.llm, a.log, string(types.AgentFeedback), schemas.RejectionAnalysis, prompt, system, coachOptions())
	if !ok {
		return types.AgentResult{
			Agent:  types.AgentFeedback,
			Status: types.StatusFallback,
			Payload: map[string]any{
				"rejection_analysis": map[string]any{
					"likely_reasons":        []any{"Competition was strong", "Skill mismatch possible"},
					"skill_gaps_identified": []any{"Further assessment needed"},
					"company_fit_analysis":  "Not enough information to assess fit",
				},
				"action_items": []any{
					map[string]any{"action": "Review job requirements", "priority": "high", "timeline": "This week", "expected_outcome": "Clearer picture of the gap"},
					map[string]any{"action": "Practice technical skills", "priority": "high", "timeline": "Ongoing", "expected_outcome": "Stronger interview performance"},
				},
				"roadmap_updates": []any{},
				"skills_to_focus": []any{"Technical fundamentals", "Communication"},
				"encouragement":   "Every rejection is a step closer to the right opportunity. Keep learning and improving!",
				"next_steps":      []any{"Continue learning", "Apply to similar roles", "Seek feedback"},
			},
		}
	}
	return types.AgentResult{Agent: types.AgentFeedback, Status: types.StatusSuccess, Payload: payload}
}

// AnalyzeInterview pulls takeaways and practice recommendations out of
// interview feedback.
func (a *FeedbackAgent) AnalyzeInterview(ctx context.Context, in types.FeedbackInput) types.AgentResult {
	prompt := prompts.Format(prompts.MustGet("analyze-interview"), map[string]string{
		"Company":       orUnknown(in.Company),
		"Role":          orUnknown(in.Role),
		"InterviewType": orUnknown(in.InterviewType),
		"Message":       orDefault(in.Message, "No specific feedback"),
	})
	system := prompts.MustGet("feedback-system")

	payload, ok := callStructured(ctx, a.llm, a.log, string(types.AgentFeedback), schemas.InterviewAnalysis, prompt, system, coachOptions())
	if !ok {
		return types.AgentResult{
			Agent:  types.AgentFeedback,
			Status: types.StatusFallback,
			Payload: map[string]any{
				"key_insights":             []any{"Interview practice compounds; review this one while it is fresh"},
				"strengths_demonstrated":   []any{"Reached the interview stage"},
				"improvement_areas":        []any{map[string]any{"area": "Interview preparation", "how_to_improve": "Do a structured mock interview for this role"}},
				"practice_recommendations": []any{"Rehearse answers to the questions you found hardest"},
				"next_interview_tips":      []any{"Write down questions asked while you still remember them"},
			},
		}
	}
	return types.AgentResult{Agent: types.AgentFeedback, Status: types.StatusSuccess, Payload: payload}
}

// DetectPatterns looks for recurring themes across the feedback history.
// Empty history is a no_data result, not an error.
func (a *FeedbackAgent) DetectPatterns(ctx context.Context, history []types.Feedback) types.AgentResult {
	if len(history) == 0 {
		return types.AgentResult{
			Agent:   types.AgentFeedback,
			Status:  types.StatusNoData,
			Payload: map[string]any{"message": "No feedback history to analyze"},
		}
	}

	prompt := prompts.Format(prompts.MustGet("detect-patterns"), map[string]string{
		"History": formatHistory(history),
	})
	system := prompts.MustGet("feedback-system")

	payload, ok := callStructured(ctx, a.llm, a.log, string(types.AgentFeedback), schemas.FeedbackPatterns, prompt, system, coachOptions())
	if !ok {
		return types.AgentResult{
			Agent:  types.AgentFeedback,
			Status: types.StatusFallback,
			Payload: map[string]any{
				"recurring_themes": []any{
					map[string]any{"theme": "Competitive market", "frequency": "Common", "severity": "significant"},
				},
				"skill_gaps_pattern":    []any{"Technical depth"},
				"strength_patterns":     []any{"Persistence", "Learning attitude"},
				"root_causes":           []any{},
				"priority_improvements": []any{"Focus on core skills", "Practice interviewing"},
				"summary":               "Based on limited data. Continue tracking for better insights.",
			},
		}
	}
	return types.AgentResult{Agent: types.AgentFeedback, Status: types.StatusSuccess, Payload: payload}
}

// AnalyzeProgress assesses learning momentum from completion stats. The
// fallback classifies pace purely on the completion rate: 70 and up is
// on_track, 40 to 69 needs_attention, below that behind.
func (a *FeedbackAgent) AnalyzeProgress(ctx context.Context, stats types.Stats) types.AgentResult {
	prompt := prompts.Format(prompts.MustGet("analyze-progress"), map[string]string{
		"CompletedTasks": fmt.Sprintf("%d", stats.CompletedTasks),
		"TotalTasks":     fmt.Sprintf("%d", stats.TotalTasks),
		"CompletionRate": fmt.Sprintf("%d", stats.CompletionRate),
	})
	system := prompts.MustGet("feedback-system")

	payload, ok := callStructured(ctx, a.llm, a.log, string(types.AgentFeedback), schemas.ProgressAnalysis, prompt, system, coachOptions())
	if !ok {
		status := "behind"
		switch {
		case stats.CompletionRate >= 70:
			status = "on_track"
		case stats.CompletionRate >= 40:
			status = "needs_attention"
		}
		return types.AgentResult{
			Agent:  types.AgentFeedback,
			Status: types.StatusFallback,
			Payload: map[string]any{
				"progress_assessment": map[string]any{
					"overall_status":           status,
					"completion_rate_analysis": fmt.Sprintf("%d%% completion rate", stats.CompletionRate),
					"pace_analysis":            "Steady progress",
				},
				"achievements":     []any{"Making progress on learning goals"},
				"areas_of_concern": []any{},
				"momentum_tips":    []any{"Stay consistent", "Celebrate small wins"},
				"next_week_focus":  []any{"Continue current tasks", "Review completed work"},
			},
		}
	}
	return types.AgentResult{Agent: types.AgentFeedback, Status: types.StatusSuccess, Payload: payload}
}

// GenerateWeeklyReport writes a narrative progress report from one week of
// activity. The fallback reuses the completed task titles as the week's
// accomplishments.
func (a *FeedbackAgent) GenerateWeeklyReport(ctx context.Context, in ReportInput) types.AgentResult {
	if in.CurrentWeek < 1 {
		in.CurrentWeek = 1
	}

	prompt := prompts.Format(prompts.MustGet("weekly-report"), map[string]string{
		"Name":           orDefault(in.Name, "User"),
		"TargetRole":     orDefault(in.TargetRole, "Not set"),
		"CurrentWeek":    fmt.Sprintf("%d", in.CurrentWeek),
		"TasksCompleted": formatTasks(in.TasksCompleted),
		"Applications":   fmt.Sprintf("%d", in.Applications),
		"Challenges":     orDefault(in.Challenges, "None reported"),
	})
	system := prompts.MustGet("feedback-system")

	opts := llm.DefaultOptions()
	opts.Temperature = reportTemperature

	payload, ok := callStructured(ctx, a.llm, a.log, string(types.AgentFeedback), schemas.WeeklyReport, prompt, system, opts)
	if !ok {
		return types.AgentResult{
			Agent:   types.AgentFeedback,
			Status:  types.StatusFallback,
			Payload: fallbackReport(in),
		}
	}
	return types.AgentResult{Agent: types.AgentFeedback, Status: types.StatusSuccess, Payload: payload}
}

func fallbackReport(in ReportInput) map[string]any {
	accomplishments := toAnySlice(in.TasksCompleted)
	if len(accomplishments) == 0 {
		accomplishments = []any{"Continued learning"}
	}

	return map[string]any{
		"report_title":        fmt.Sprintf("Week %d Progress Report", in.CurrentWeek),
		"week_summary":        "Keep up the good work on your career journey!",
		"key_accomplishments": accomplishments,
		"readiness_change":    map[string]any{"trend": "improving"},
		"insights":            []any{"Consistent effort leads to results"},
		"next_week_preview": map[string]any{
			"focus_areas":     []any{"Continue current path"},
			"goals":           []any{"Complete weekly tasks"},
			"recommendations": []any{"Stay focused and motivated"},
		},
		"motivation_message": "You're making progress every day. Keep going!",
		"agent_thoughts":     "Steady progress is the key to success.",
	}
}

func formatTasks(tasks []string) string {
	if len(tasks) == 0 {
		return "None"
	}

	lines := make([]string, len(tasks))
	for i, task := range tasks {
		lines[i] = "- " + task
	}
	return strings.Join(lines, "\n")
}

func formatHistory(history []types.Feedback) string {
	if len(history) > patternHistoryLimit {
		history = history[:patternHistoryLimit]
	}

	var b strings.Builder
	for i, fb := range history {
		analysis := "N/A"
		if len(fb.Analysis) > 0 {
			if encoded, err := json.Marshal(fb.Analysis); err == nil {
				analysis = string(encoded)
			}
		}
		fmt.Fprintf(&b, "%d. %s - %s\n   Message: %s\n   Analysis: %s\n",
			i+1, orUnknown(fb.Source), orUnknown(fb.Company), orDefault(fb.Message, "N/A"), analysis)
	}
	return b.String()
}
