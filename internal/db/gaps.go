package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/career-agent/internal/types"
)

// ListSkillGaps retrieves skill gaps ordered by priority. Passing uuid.Nil
// as goalID returns gaps across all goals.
func (db *DB) ListSkillGaps(ctx context.Context, userID, goalID uuid.UUID) ([]types.SkillGap, error) {
	query := `SELECT id, user_id, goal_id, skill_name, current_level, required_level, priority
		 FROM skill_gaps WHERE user_id = $1`
	args := []any{userID}
	if goalID != uuid.Nil {
		query += ` AND goal_id = $2`
		args = append(args, goalID)
	}
	query += ` ORDER BY ` + priorityOrder

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list skill gaps: %w", err)
	}
	defer rows.Close()

	var gaps []types.SkillGap
	for rows.Next() {
		var gap types.SkillGap
		if err := rows.Scan(&gap.ID, &gap.UserID, &gap.GoalID, &gap.SkillName,
			&gap.CurrentLevel, &gap.RequiredLevel, &gap.Priority); err != nil {
			return nil, fmt.Errorf("failed to scan skill gap: %w", err)
		}
		gaps = append(gaps, gap)
	}
	return gaps, rows.Err()
}

// ReplaceSkillGaps swaps out the stored gaps for one goal in a single
// transaction: delete everything for the goal, then insert the new set.
func (db *DB) ReplaceSkillGaps(ctx context.Context, userID, goalID uuid.UUID, gaps []types.SkillGap) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM skill_gaps WHERE user_id = $1 AND goal_id = $2`,
		userID, goalID,
	); err != nil {
		return fmt.Errorf("failed to clear skill gaps: %w", err)
	}

	for _, gap := range gaps {
		if _, err := tx.Exec(ctx,
			`INSERT INTO skill_gaps (user_id, goal_id, skill_name, current_level, required_level, priority)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			userID, goalID, gap.SkillName,
			defaultString(gap.CurrentLevel, "none"),
			defaultString(gap.RequiredLevel, "intermediate"),
			defaultString(gap.Priority, "medium"),
		); err != nil {
			return fmt.Errorf("failed to insert skill gap %s: %w", gap.SkillName, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit skill gaps: %w", err)
	}
	return nil
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
