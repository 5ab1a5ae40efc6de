// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"savvy/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateUserInput lists the profile fields a user may change. Nil leaves the field as is.
type UpdateUserInput struct {
	Name *string
}

// --- Output DTOs ---

// TokenPairOutput returns freshly issued tokens.
type TokenPairOutput struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	RegisterUser(ctx context.Context, input RegisterUserInput) (*entity.User, error)
	Login(ctx context.Context, input LoginInput) (*TokenPairOutput, error)
	// RefreshTokens issues a new pair for a user resolved from a refresh token.
	RefreshTokens(ctx context.Context, user *entity.User) (*TokenPairOutput, error)
	UpdateUser(ctx context.Context, userID int64, current *entity.User, input UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, userID int64, current *entity.User) error
	EmailInUse(ctx context.Context, email string) (bool, error)
}
