// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"context"
	"time"

	"savvy/internal/domain/service"
	"savvy/internal/errors"
)

// User is the account that owns categories and records.
type User struct {
	ID              int64     // Assigned by the store on creation.
	Name            string    // Display name.
	Email           string    // Login identifier, unique and case-sensitive as stored.
	PasswordHash    string    // Encoded hash. Never holds plaintext.
	CategoriesCount int       // Number of categories this user owns.
	CreatedAt       time.Time // Set once on creation.
	UpdatedAt       time.Time // Refreshed by every mutating update.
}

// NewUser builds an unsaved user and hashes the password on assignment.
func NewUser(ctx context.Context, hasher service.PasswordHasher, name, email, password string, now time.Time) (*User, error) {
	user := &User{
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.SetPassword(ctx, hasher, password); err != nil {
		return nil, err
	}

	return user, nil
}

// SetPassword is the only write path for the password.
func (u *User) SetPassword(ctx context.Context, hasher service.PasswordHasher, plaintext string) error {
	hash, err := hasher.Hash(ctx, plaintext)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}
	u.PasswordHash = hash

	return nil
}

// CheckPassword reports whether plaintext matches the stored hash.
func (u *User) CheckPassword(ctx context.Context, hasher service.PasswordHasher, plaintext string) bool {
	return hasher.Check(ctx, plaintext, u.PasswordHash)
}

// UserUpdate lists the fields a user may change on their own profile.
// A nil field is left untouched.
type UserUpdate struct {
	Name *string
}

// ApplyUpdate writes the declared fields and reports whether anything changed.
func (u *User) ApplyUpdate(update UserUpdate, now time.Time) bool {
	changed := false
	if update.Name != nil && *update.Name != u.Name {
		u.Name = *update.Name
		changed = true
	}
	if changed {
		u.UpdatedAt = now
	}

	return changed
}

// CanAddCategory reports whether the owned category counter is under max.
func (u *User) CanAddCategory(maxPerUser int) bool {
	return u.CategoriesCount < maxPerUser
}
