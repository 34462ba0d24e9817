// Package decision picks the single next recommended action for a user.
package decision

import (
	"github.com/jonathan/career-agent/internal/types"
)

// Thresholds for the skill-count and progress rules.
const (
	minSkills         = 3
	minTasksForReview = 5
	reviewRatePercent = 50
)

// Decide evaluates the decision ladder against a snapshot and returns
// exactly one recommended action. It is a pure function: first matching rule
// wins, later rules are skipped, and each rule assumes every prior rule's
// condition is false, so the order is load-bearing.
func Decide(snapshot *types.Snapshot) types.Decision {
	if snapshot.PrimaryGoal == nil {
		return types.Decision{
			Action:   types.ActionSetGoal,
			Priority: types.PriorityCritical,
			Message:  "Set your career goal to get personalized guidance",
		}
	}

	if len(snapshot.Skills) < minSkills {
		return types.Decision{
			Action:   types.ActionAddSkills,
			Priority: types.PriorityHigh,
			Message:  "Add more skills to your profile for accurate analysis",
		}
	}

	if len(snapshot.SkillGaps) == 0 {
		return types.Decision{
			Action:      types.ActionAnalyzeGaps,
			Priority:    types.PriorityHigh,
			Message:     "Let's analyze your skill gaps for your target role",
			AgentToCall: types.AgentSkillGap,
		}
	}

	if len(snapshot.Plans) == 0 {
		return types.Decision{
			Action:      types.ActionCreatePlan,
			Priority:    types.PriorityHigh,
			Message:     "Time to create your personalized learning roadmap",
			AgentToCall: types.AgentPlanner,
		}
	}

	if snapshot.Stats.TotalTasks >= minTasksForReview && snapshot.Stats.CompletionRate < reviewRatePercent {
		return types.Decision{
			Action:      types.ActionReviewProgress,
			Priority:    types.PriorityMedium,
			Message:     "Let's review your progress and adjust the plan if needed",
			AgentToCall: types.AgentFeedback,
		}
	}

	return types.Decision{
		Action:   types.ActionContinueLearning,
		Priority: types.PriorityNormal,
		Message:  "Keep up the great work! Focus on your current tasks.",
	}
}
