package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/career-agent/internal/types"
)

// ListFeedback retrieves the most recent feedback entries, newest first.
func (db *DB) ListFeedback(ctx context.Context, userID uuid.UUID, limit int) ([]types.Feedback, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, source, COALESCE(company, ''), COALESCE(role, ''),
		        message, sentiment, analysis, action_items, created_at
		 FROM feedback WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var entries []types.Feedback
	for rows.Next() {
		var fb types.Feedback
		var analysisJSON, itemsJSON []byte
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.Source, &fb.Company, &fb.Role,
			&fb.Message, &fb.Sentiment, &analysisJSON, &itemsJSON, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		if len(analysisJSON) > 0 {
			if err := json.Unmarshal(analysisJSON, &fb.Analysis); err != nil {
				return nil, fmt.Errorf("failed to decode feedback analysis: %w", err)
			}
		}
		if len(itemsJSON) > 0 {
			if err := json.Unmarshal(itemsJSON, &fb.ActionItems); err != nil {
				return nil, fmt.Errorf("failed to decode feedback action items: %w", err)
			}
		}
		entries = append(entries, fb)
	}
	return entries, rows.Err()
}

// SaveFeedback inserts one feedback record with its attached analysis.
func (db *DB) SaveFeedback(ctx context.Context, userID uuid.UUID, fb types.Feedback) error {
	var analysisJSON []byte
	if fb.Analysis != nil {
		encoded, err := json.Marshal(fb.Analysis)
		if err != nil {
			return fmt.Errorf("failed to marshal feedback analysis: %w", err)
		}
		analysisJSON = encoded
	}

	items := fb.ActionItems
	if items == nil {
		items = []types.ActionItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback action items: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO feedback (user_id, source, company, role, message, sentiment, analysis, action_items)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		userID, fb.Source, fb.Company, fb.Role, fb.Message,
		defaultString(fb.Sentiment, "neutral"), analysisJSON, itemsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// ListApplications retrieves a user's job applications, newest first.
func (db *DB) ListApplications(ctx context.Context, userID uuid.UUID) ([]types.Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, company, role, status, created_at
		 FROM applications WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var applications []types.Application
	for rows.Next() {
		var app types.Application
		if err := rows.Scan(&app.ID, &app.UserID, &app.Company, &app.Role,
			&app.Status, &app.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}
