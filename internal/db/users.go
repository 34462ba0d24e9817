package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-agent/internal/types"
)

// User is a full user row including credentials. Never serialized to JSON
// with the hash attached.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUser inserts a new user with a pre-hashed password.
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash string) (*User, error) {
	user := User{Name: name, Email: email, PasswordHash: passwordHash}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		name, email, passwordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user with credentials for login verification.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// GetProfile retrieves the career profile for a user.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	var profile types.Profile
	var careerGoal, currentLevel *string

	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, career_goal, current_level, readiness_score, created_at
		 FROM users WHERE id = $1`,
		userID,
	).Scan(&profile.ID, &profile.Name, &profile.Email, &careerGoal, &currentLevel,
		&profile.ReadinessScore, &profile.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if careerGoal != nil {
		profile.CareerGoal = *careerGoal
	}
	if currentLevel != nil {
		profile.CurrentLevel = *currentLevel
	}
	return &profile, nil
}

// UpdateReadinessScore stores the latest readiness score on the user row.
func (db *DB) UpdateReadinessScore(ctx context.Context, userID uuid.UUID, score int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET readiness_score = $1 WHERE id = $2`,
		score, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update readiness score: %w", err)
	}
	return nil
}
