// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"savvy/internal/domain/entity"
	"savvy/internal/errors"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrCategoryQuotaExceeded is returned when the conditional counter
	// increment matched no row.
	ErrCategoryQuotaExceeded = errors.New("category quota exceeded")
)

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail reports whether an account already uses email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create persists a new user and fills in its ID. A taken email yields
	// domainerrors.ErrEmailInUse.
	Create(ctx context.Context, user *entity.User) error

	// UpdateProfile writes the self-service fields (name, updated_at) only.
	UpdateProfile(ctx context.Context, user *entity.User) error

	Delete(ctx context.Context, id int64) error

	// IncrementCategoriesCount atomically bumps the counter only while it is
	// below maxPerUser and returns the new value. It returns
	// ErrCategoryQuotaExceeded when the guard rejects the update.
	IncrementCategoriesCount(ctx context.Context, id int64, maxPerUser int) (int, error)

	// DecrementCategoriesCount lowers the counter, never below zero, and
	// returns the new value.
	DecrementCategoriesCount(ctx context.Context, id int64) (int, error)
}
