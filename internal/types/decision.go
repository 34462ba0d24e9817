package types

// Action identifies the single recommended next step for a user.
type Action string

// Actions the decision engine can recommend.
const (
	ActionSetGoal          Action = "set_goal"
	ActionAddSkills        Action = "add_skills"
	ActionAnalyzeGaps      Action = "analyze_gaps"
	ActionCreatePlan       Action = "create_plan"
	ActionReviewProgress   Action = "review_progress"
	ActionContinueLearning Action = "continue_learning"
)

// DecisionPriority ranks how urgently the recommended action should happen.
type DecisionPriority string

// Decision priorities, most urgent first.
const (
	PriorityCritical DecisionPriority = "critical"
	PriorityHigh     DecisionPriority = "high"
	PriorityMedium   DecisionPriority = "medium"
	PriorityNormal   DecisionPriority = "normal"
)

// AgentName identifies an agent invoker a decision can delegate to.
type AgentName string

// Agents a decision may delegate to. AgentNone means no delegation.
const (
	AgentNone      AgentName = ""
	AgentReasoning AgentName = "reasoning_agent"
	AgentSkillGap  AgentName = "skill_gap_agent"
	AgentPlanner   AgentName = "planner_agent"
	AgentFeedback  AgentName = "feedback_agent"
)

// Decision is the outcome of evaluating the decision ladder against one
// snapshot: exactly one action, no ranking of alternatives.
type Decision struct {
	Action      Action           `json:"action"`
	Priority    DecisionPriority `json:"priority"`
	Message     string           `json:"message"`
	AgentToCall AgentName        `json:"agent_to_call,omitempty"`
}
