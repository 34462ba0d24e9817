// Package types provides type definitions for structured data used throughout the career-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents a user's identity and career readiness state.
type Profile struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	CareerGoal     string    `json:"career_goal,omitempty"`
	CurrentLevel   string    `json:"current_level,omitempty"`
	ReadinessScore int       `json:"readiness_score"`
	CreatedAt      time.Time `json:"created_at"`
}

// Skill represents one recorded skill with a proficiency level.
// Skills are unique by name per user.
type Skill struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Name            string    `json:"skill_name"`
	Level           string    `json:"level"` // beginner, intermediate, advanced, expert
	Category        string    `json:"category,omitempty"`
	YearsExperience int       `json:"years_experience,omitempty"`
}

// GoalPriority is the priority tier of a career goal.
type GoalPriority string

// Goal priority tiers, highest first.
const (
	GoalPriorityHigh   GoalPriority = "high"
	GoalPriorityMedium GoalPriority = "medium"
	GoalPriorityLow    GoalPriority = "low"
)

// Goal represents an active career goal.
type Goal struct {
	ID         uuid.UUID    `json:"id"`
	UserID     uuid.UUID    `json:"user_id"`
	TargetRole string       `json:"target_role"`
	Timeline   string       `json:"timeline,omitempty"` // e.g. "3 months"
	Priority   GoalPriority `json:"priority"`
	Status     string       `json:"status"` // active, completed, abandoned
}

// SkillGap represents a missing or underdeveloped skill relative to a goal.
type SkillGap struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	GoalID        uuid.UUID `json:"goal_id"`
	SkillName     string    `json:"skill_name"`
	CurrentLevel  string    `json:"current_level"`  // none, beginner, intermediate, advanced
	RequiredLevel string    `json:"required_level"` // beginner, intermediate, advanced, expert
	Priority      string    `json:"priority"`       // high, medium, low
}

// Task is a single item within a weekly plan.
type Task struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Plan represents one week of a learning roadmap.
type Plan struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	GoalID      uuid.UUID `json:"goal_id"`
	WeekNumber  int       `json:"week_number"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Tasks       []Task    `json:"tasks"`
	Milestones  []string  `json:"milestones,omitempty"`
	Status      string    `json:"status"` // pending, in_progress, completed
}

// ActionItem is a concrete follow-up produced by feedback analysis.
type ActionItem struct {
	Action          string `json:"action"`
	Priority        string `json:"priority"`
	Timeline        string `json:"timeline,omitempty"`
	ExpectedOutcome string `json:"expected_outcome,omitempty"`
}

// Feedback represents one stored feedback record with its attached analysis.
type Feedback struct {
	ID          uuid.UUID      `json:"id"`
	UserID      uuid.UUID      `json:"user_id"`
	Source      string         `json:"source"` // rejection, interview, self
	Company     string         `json:"company,omitempty"`
	Role        string         `json:"role,omitempty"`
	Message     string         `json:"message"`
	Sentiment   string         `json:"sentiment,omitempty"`
	Analysis    map[string]any `json:"analysis,omitempty"`
	ActionItems []ActionItem   `json:"action_items,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Application represents a job application and its current status.
type Application struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Company   string    `json:"company"`
	Role      string    `json:"role"`
	Status    string    `json:"status"` // applied, interviewing, rejected, offered, withdrawn
	CreatedAt time.Time `json:"created_at"`
}

// Stats holds summary statistics derived from a snapshot.
type Stats struct {
	TotalPlans         int `json:"total_plans"`
	TotalTasks         int `json:"total_tasks"`
	CompletedTasks     int `json:"completed_tasks"`
	CompletionRate     int `json:"completion_rate"` // rounded percentage, 0 when no tasks
	TotalApplications  int `json:"total_applications"`
	ActiveApplications int `json:"active_applications"`
	FeedbackCount      int `json:"feedback_count"`
}

// Snapshot aggregates one user's persisted state for a single workflow
// invocation. It is built fresh on every orchestrator call and never mutated
// afterwards. Fields whose underlying read failed are left empty and recorded
// in Unavailable (field name to failure reason), so callers can distinguish
// "genuinely empty" from "read failed".
type Snapshot struct {
	UserID         uuid.UUID         `json:"user_id"`
	Profile        *Profile          `json:"profile,omitempty"`
	Skills         []Skill           `json:"skills"`
	Goals          []Goal            `json:"goals"`
	PrimaryGoal    *Goal             `json:"primary_goal,omitempty"`
	SkillGaps      []SkillGap        `json:"skill_gaps"`
	Plans          []Plan            `json:"plans"`
	RecentFeedback []Feedback        `json:"recent_feedback"`
	Applications   []Application     `json:"applications"`
	Stats          Stats             `json:"stats"`
	Unavailable    map[string]string `json:"unavailable,omitempty"`
}

// Memory represents a verbatim memory record written by a workflow.
type Memory struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Content   string         `json:"content"`
	Type      string         `json:"type"` // reasoning, feedback, interaction
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ChatMessage is one turn of a stored coaching conversation.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"` // user, assistant
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Opportunity represents a job opportunity that users can be matched against.
type Opportunity struct {
	ID           uuid.UUID `json:"id"`
	Company      string    `json:"company"`
	Role         string    `json:"role"`
	Requirements []string  `json:"requirements"`
	Deadline     time.Time `json:"deadline,omitempty"`
	IsActive     bool      `json:"is_active"`
}
