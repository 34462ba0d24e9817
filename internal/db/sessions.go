package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/career-agent/internal/types"
)

// SaveMemory stores one verbatim memory record.
func (db *DB) SaveMemory(ctx context.Context, userID uuid.UUID, content, memType string, metadata map[string]any) error {
	var metadataJSON []byte
	if metadata != nil {
		encoded, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal memory metadata: %w", err)
		}
		metadataJSON = encoded
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO memories (user_id, content, type, metadata)
		 VALUES ($1, $2, $3, $4)`,
		userID, content, memType, metadataJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save memory: %w", err)
	}
	return nil
}

// ListMemories retrieves memory records, newest first. Passing an empty
// memType returns records of every type.
func (db *DB) ListMemories(ctx context.Context, userID uuid.UUID, memType string, limit int) ([]types.Memory, error) {
	query := `SELECT id, user_id, content, type, metadata, created_at
		 FROM memories WHERE user_id = $1`
	args := []any{userID}
	if memType != "" {
		query += ` AND type = $2`
		args = append(args, memType)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list memories: %w", err)
	}
	defer rows.Close()

	var memories []types.Memory
	for rows.Next() {
		var memory types.Memory
		var metadataJSON []byte
		if err := rows.Scan(&memory.ID, &memory.UserID, &memory.Content, &memory.Type,
			&metadataJSON, &memory.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan memory: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &memory.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode memory metadata: %w", err)
			}
		}
		memories = append(memories, memory)
	}
	return memories, rows.Err()
}

// CreateAgentSession inserts a processing session record and returns its ID.
func (db *DB) CreateAgentSession(ctx context.Context, userID uuid.UUID, sessionType string, input map[string]any) (uuid.UUID, error) {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal session input: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO agent_sessions (user_id, session_type, input_data, status)
		 VALUES ($1, $2, $3, 'processing')
		 RETURNING id`,
		userID, sessionType, inputJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create agent session: %w", err)
	}
	return id, nil
}

// UpdateAgentSession records a session's outcome and completion time.
func (db *DB) UpdateAgentSession(ctx context.Context, sessionID uuid.UUID, result map[string]any, thoughts, status string) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal session result: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE agent_sessions
		 SET output_data = $1, agent_thoughts = $2, status = $3, completed_at = NOW()
		 WHERE id = $4`,
		resultJSON, thoughts, status, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update agent session: %w", err)
	}
	return nil
}
