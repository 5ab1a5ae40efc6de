// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "context"

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm, keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. Two calls with
	// the same input yield different strings.
	Hash(ctx context.Context, password string) (string, error)

	// Check reports whether password matches hash. Malformed or foreign
	// hashes are a mismatch, never an error.
	Check(ctx context.Context, password, hash string) bool
}
