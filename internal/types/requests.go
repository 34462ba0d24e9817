package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateUserRequest represents the request to register a new user.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthUser represents a user profile for auth API responses.
type AuthUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse represents the login/register response with the signed token.
type LoginResponse struct {
	User  *AuthUser `json:"user"`
	Token string    `json:"token"`
}

// FeedbackInput carries caller-supplied feedback details into the feedback
// workflow. Source selects the analysis branch (rejection vs. interview).
type FeedbackInput struct {
	Source        string `json:"source" validate:"required"`
	Company       string `json:"company,omitempty"`
	Role          string `json:"role,omitempty"`
	Stage         string `json:"stage,omitempty"`
	Message       string `json:"message" validate:"required"`
	InterviewType string `json:"interview_type,omitempty"`
	UserSkills    string `json:"user_skills,omitempty"`
}

// ChatRequest is one user turn sent to the coaching chat endpoint.
type ChatRequest struct {
	UserID  uuid.UUID `json:"user_id" validate:"required"`
	Message string    `json:"message" validate:"required"`
}

// Validate validates the CreateUserRequest using the validator.
func (r *CreateUserRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the FeedbackInput using the validator.
func (r *FeedbackInput) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	return validator.New().Struct(r)
}
