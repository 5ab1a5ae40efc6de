package usecase

import (
	"context"

	"savvy/internal/domain/entity"
)

// IdentityUsecase turns a verified bearer token into the persisted user it
// names. Callers get live state such as the category counter, never the
// values captured in the claims.
type IdentityUsecase interface {
	// ResolveAccessToken accepts access tokens only.
	ResolveAccessToken(ctx context.Context, token string) (*entity.User, error)

	// ResolveRefreshToken accepts refresh tokens only.
	ResolveRefreshToken(ctx context.Context, token string) (*entity.User, error)
}
