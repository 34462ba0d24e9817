package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/career-agent/internal/types"
)

// ListSkills retrieves a user's skills, strongest proficiency first.
func (db *DB) ListSkills(ctx context.Context, userID uuid.UUID) ([]types.Skill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, skill_name, level, category, years_experience
		 FROM skills WHERE user_id = $1
		 ORDER BY CASE level
		     WHEN 'expert' THEN 0
		     WHEN 'advanced' THEN 1
		     WHEN 'intermediate' THEN 2
		     ELSE 3
		 END, skill_name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	var skills []types.Skill
	for rows.Next() {
		var skill types.Skill
		if err := rows.Scan(&skill.ID, &skill.UserID, &skill.Name, &skill.Level,
			&skill.Category, &skill.YearsExperience); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, skill)
	}
	return skills, rows.Err()
}
