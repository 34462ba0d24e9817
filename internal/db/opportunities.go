package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/career-agent/internal/types"
)

// opportunityLimit caps how many open opportunities a listing returns.
const opportunityLimit = 20

// ListOpportunities retrieves active opportunities, nearest deadline first.
func (db *DB) ListOpportunities(ctx context.Context) ([]types.Opportunity, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, company, role, requirements, deadline, is_active
		 FROM opportunities WHERE is_active = TRUE
		 ORDER BY deadline ASC NULLS LAST LIMIT $1`,
		opportunityLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer rows.Close()

	var opportunities []types.Opportunity
	for rows.Next() {
		var opp types.Opportunity
		var requirementsJSON []byte
		var deadline *time.Time
		if err := rows.Scan(&opp.ID, &opp.Company, &opp.Role, &requirementsJSON,
			&deadline, &opp.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		if err := json.Unmarshal(requirementsJSON, &opp.Requirements); err != nil {
			return nil, fmt.Errorf("failed to decode opportunity requirements: %w", err)
		}
		if deadline != nil {
			opp.Deadline = *deadline
		}
		opportunities = append(opportunities, opp)
	}
	return opportunities, rows.Err()
}
