package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-agent/internal/types"
)

// priorityOrder ranks goal and gap priorities high before medium before low.
const priorityOrder = `CASE priority
    WHEN 'high' THEN 0
    WHEN 'medium' THEN 1
    ELSE 2
END`

// ListGoals retrieves a user's active goals.
func (db *DB) ListGoals(ctx context.Context, userID uuid.UUID) ([]types.Goal, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, target_role, COALESCE(timeline, ''), priority, status
		 FROM goals WHERE user_id = $1 AND status = 'active'
		 ORDER BY `+priorityOrder,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []types.Goal
	for rows.Next() {
		var goal types.Goal
		if err := rows.Scan(&goal.ID, &goal.UserID, &goal.TargetRole, &goal.Timeline,
			&goal.Priority, &goal.Status); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// GetPrimaryGoal retrieves the highest-priority active goal, or nil when the
// user has none.
func (db *DB) GetPrimaryGoal(ctx context.Context, userID uuid.UUID) (*types.Goal, error) {
	var goal types.Goal
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, target_role, COALESCE(timeline, ''), priority, status
		 FROM goals WHERE user_id = $1 AND status = 'active'
		 ORDER BY `+priorityOrder+`
		 LIMIT 1`,
		userID,
	).Scan(&goal.ID, &goal.UserID, &goal.TargetRole, &goal.Timeline, &goal.Priority, &goal.Status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get primary goal: %w", err)
	}
	return &goal, nil
}
