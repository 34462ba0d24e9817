package server

import (
	"context"
	"fmt"

	"github.com/jonathan/career-agent/internal/config"
	"github.com/jonathan/career-agent/internal/db"
	"github.com/jonathan/career-agent/internal/types"
)

// UserStore is the persistence surface the user service needs.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
}

// UserService handles registration and login against the user store.
type UserService struct {
	store     UserStore
	passwords *config.PasswordConfig
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, passwords *config.PasswordConfig) *UserService {
	return &UserService{store: store, passwords: passwords}
}

// Register creates a new user with a hashed password.
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.AuthUser, error) {
	existing, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, req.Name, req.Email, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toAuthUser(user), nil
}

// Login verifies credentials and returns the matching user.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.AuthUser, error) {
	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !s.passwords.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return toAuthUser(user), nil
}

func toAuthUser(user *db.User) *types.AuthUser {
	return &types.AuthUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
