package service

import (
	"strconv"

	"savvy/internal/errors"
)

// Token kinds carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claim names.
const (
	ClaimSubject   = "sub"
	ClaimType      = "type"
	ClaimExpiresAt = "exp"
	ClaimIssuedAt  = "iat"
)

// Claims is the open claim set of a token. Callers supply at least a subject.
type Claims map[string]any

// SubjectClaims builds the minimal claim set for a user id.
func SubjectClaims(userID int64) Claims {
	return Claims{ClaimSubject: strconv.FormatInt(userID, 10)}
}

// Type returns the token kind, or "" when absent.
func (c Claims) Type() string {
	t, _ := c[ClaimType].(string)

	return t
}

// UserID parses the subject claim as a user id.
func (c Claims) UserID() (int64, error) {
	sub, ok := c[ClaimSubject].(string)
	if !ok || sub == "" {
		return 0, errors.New("subject claim is missing")
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "subject claim is not a user id")
	}

	return id, nil
}

// TokenService issues and verifies signed, time-limited bearer tokens.
type TokenService interface {
	// CreateAccessToken signs claims as a short-lived access token.
	CreateAccessToken(claims Claims) (string, error)

	// CreateRefreshToken signs claims as a long-lived refresh token.
	CreateRefreshToken(claims Claims) (string, error)

	// VerifyToken checks signature and expiry. It does not check the token type.
	VerifyToken(token string) (Claims, error)
}
