// Package observer assembles the read-only aggregate of one user's persisted
// state for a single workflow invocation.
package observer

import (
	"context"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/career-agent/internal/types"
)

// recentFeedbackLimit bounds how much feedback history a snapshot carries.
const recentFeedbackLimit = 5

// Reader is the persistence surface the observer reads from. Passing
// uuid.Nil as goalID means "not scoped to a goal".
type Reader interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
	ListSkills(ctx context.Context, userID uuid.UUID) ([]types.Skill, error)
	ListGoals(ctx context.Context, userID uuid.UUID) ([]types.Goal, error)
	GetPrimaryGoal(ctx context.Context, userID uuid.UUID) (*types.Goal, error)
	ListSkillGaps(ctx context.Context, userID, goalID uuid.UUID) ([]types.SkillGap, error)
	ListPlans(ctx context.Context, userID, goalID uuid.UUID) ([]types.Plan, error)
	ListFeedback(ctx context.Context, userID uuid.UUID, limit int) ([]types.Feedback, error)
	ListApplications(ctx context.Context, userID uuid.UUID) ([]types.Application, error)
}

// Observer builds snapshots from a persistence reader.
type Observer struct {
	reader Reader
	log    *zap.Logger
}

// New constructs an Observer.
func New(reader Reader, log *zap.Logger) *Observer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Observer{reader: reader, log: log}
}

// Observe reads the user's persisted state into one aggregate snapshot.
// Aggregation is best-effort, not all-or-nothing: a failed read leaves its
// field empty and records the reason under the field's name in
// Snapshot.Unavailable. The snapshot is rebuilt fresh on every call.
func (o *Observer) Observe(ctx context.Context, userID uuid.UUID) *types.Snapshot {
	snapshot := &types.Snapshot{
		UserID:      userID,
		Unavailable: map[string]string{},
	}

	profile, err := o.reader.GetProfile(ctx, userID)
	if err != nil {
		o.markUnavailable(snapshot, "profile", err)
	} else {
		snapshot.Profile = profile
	}

	skills, err := o.reader.ListSkills(ctx, userID)
	if err != nil {
		o.markUnavailable(snapshot, "skills", err)
	} else {
		snapshot.Skills = skills
	}

	goals, err := o.reader.ListGoals(ctx, userID)
	if err != nil {
		o.markUnavailable(snapshot, "goals", err)
	} else {
		snapshot.Goals = goals
	}

	primaryGoal, err := o.reader.GetPrimaryGoal(ctx, userID)
	if err != nil {
		o.markUnavailable(snapshot, "primary_goal", err)
	} else {
		snapshot.PrimaryGoal = primaryGoal
	}

	goalID := uuid.Nil
	if snapshot.PrimaryGoal != nil {
		goalID = snapshot.PrimaryGoal.ID
	}

	gaps, err := o.reader.ListSkillGaps(ctx, userID, goalID)
	if err != nil {
		o.markUnavailable(snapshot, "skill_gaps", err)
	} else {
		snapshot.SkillGaps = gaps
	}

	plans, err := o.reader.ListPlans(ctx, userID, goalID)
	if err != nil {
		o.markUnavailable(snapshot, "plans", err)
	} else {
		snapshot.Plans = plans
	}

	feedback, err := o.reader.ListFeedback(ctx, userID, recentFeedbackLimit)
	if err != nil {
		o.markUnavailable(snapshot, "recent_feedback", err)
	} else {
		snapshot.RecentFeedback = feedback
	}

	applications, err := o.reader.ListApplications(ctx, userID)
	if err != nil {
		o.markUnavailable(snapshot, "applications", err)
	} else {
		snapshot.Applications = applications
	}

	snapshot.Stats = computeStats(snapshot.Plans, snapshot.Applications, snapshot.RecentFeedback)
	return snapshot
}

func (o *Observer) markUnavailable(snapshot *types.Snapshot, field string, err error) {
	snapshot.Unavailable[field] = err.Error()
	o.log.Warn("snapshot field unavailable",
		zap.Stringer("user_id", snapshot.UserID),
		zap.String("field", field),
		zap.Error(err))
}

// computeStats derives summary statistics from the snapshot's collections.
// CompletionRate is a rounded percentage and is 0 when there are no tasks.
func computeStats(plans []types.Plan, applications []types.Application, feedback []types.Feedback) types.Stats {
	stats := types.Stats{
		TotalPlans:        len(plans),
		TotalApplications: len(applications),
		FeedbackCount:     len(feedback),
	}

	for _, plan := range plans {
		stats.TotalTasks += len(plan.Tasks)
		for _, task := range plan.Tasks {
			if task.Completed {
				stats.CompletedTasks++
			}
		}
	}

	if stats.TotalTasks > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100))
	}

	for _, app := range applications {
		if app.Status == "applied" || app.Status == "interviewing" {
			stats.ActiveApplications++
		}
	}

	return stats
}
