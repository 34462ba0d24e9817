package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/career-agent/internal/types"
)

// SaveChatMessage appends one conversation turn.
func (db *DB) SaveChatMessage(ctx context.Context, userID uuid.UUID, role, content string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO chat_messages (user_id, role, content) VALUES ($1, $2, $3)`,
		userID, role, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	return nil
}

// ListChatMessages retrieves the last limit turns in conversation order,
// oldest first.
func (db *DB) ListChatMessages(ctx context.Context, userID uuid.UUID, limit int) ([]types.ChatMessage, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, role, content, created_at FROM (
		     SELECT id, user_id, role, content, created_at
		     FROM chat_messages WHERE user_id = $1
		     ORDER BY created_at DESC LIMIT $2
		 ) recent ORDER BY created_at ASC`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	var messages []types.ChatMessage
	for rows.Next() {
		var msg types.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// ClearChatMessages deletes a user's stored conversation.
func (db *DB) ClearChatMessages(ctx context.Context, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM chat_messages WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear chat messages: %w", err)
	}
	return nil
}
