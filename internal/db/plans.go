package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/career-agent/internal/types"
)

// ListPlans retrieves weekly plans in week order. Passing uuid.Nil as goalID
// returns plans across all goals.
func (db *DB) ListPlans(ctx context.Context, userID, goalID uuid.UUID) ([]types.Plan, error) {
	query := `SELECT id, user_id, COALESCE(goal_id, '00000000-0000-0000-0000-000000000000'),
		        week_number, title, COALESCE(description, ''), tasks, milestones, status
		 FROM plans WHERE user_id = $1`
	args := []any{userID}
	if goalID != uuid.Nil {
		query += ` AND goal_id = $2`
		args = append(args, goalID)
	}
	query += ` ORDER BY week_number`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []types.Plan
	for rows.Next() {
		var plan types.Plan
		var tasksJSON, milestonesJSON []byte
		if err := rows.Scan(&plan.ID, &plan.UserID, &plan.GoalID, &plan.WeekNumber,
			&plan.Title, &plan.Description, &tasksJSON, &milestonesJSON, &plan.Status); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		if err := json.Unmarshal(tasksJSON, &plan.Tasks); err != nil {
			return nil, fmt.Errorf("failed to decode plan tasks: %w", err)
		}
		if err := json.Unmarshal(milestonesJSON, &plan.Milestones); err != nil {
			return nil, fmt.Errorf("failed to decode plan milestones: %w", err)
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// SavePlan upserts one weekly plan, keyed by user, goal and week number.
func (db *DB) SavePlan(ctx context.Context, userID, goalID uuid.UUID, plan types.Plan) error {
	tasks := plan.Tasks
	if tasks == nil {
		tasks = []types.Task{}
	}
	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to marshal plan tasks: %w", err)
	}
	milestones := plan.Milestones
	if milestones == nil {
		milestones = []string{}
	}
	milestonesJSON, err := json.Marshal(milestones)
	if err != nil {
		return fmt.Errorf("failed to marshal plan milestones: %w", err)
	}

	var goal any
	if goalID != uuid.Nil {
		goal = goalID
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO plans (user_id, goal_id, week_number, title, description, tasks, milestones, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (user_id, goal_id, week_number) DO UPDATE SET
		     title = $4, description = $5, tasks = $6, milestones = $7, status = $8`,
		userID, goal, plan.WeekNumber, plan.Title, plan.Description,
		tasksJSON, milestonesJSON, defaultString(plan.Status, "pending"),
	)
	if err != nil {
		return fmt.Errorf("failed to save plan week %d: %w", plan.WeekNumber, err)
	}
	return nil
}
