package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"savvy/config"
	deliverycontext "savvy/internal/delivery/context"
	"savvy/internal/domain/entity"
	domainerrors "savvy/internal/domain/errors"
	"savvy/internal/errors"
	"savvy/internal/infra/metrics"
	"savvy/internal/usecase"
)

// AuthMiddleware resolves the caller from a bearer token and stores the
// persisted user on the echo context.
type AuthMiddleware struct {
	identity          usecase.IdentityUsecase
	metrics           *metrics.Metrics
	accessExtractors  []TokenExtractor
	refreshExtractors []TokenExtractor
}

type AuthMiddlewareParams struct {
	fx.In

	Identity usecase.IdentityUsecase
	Config   *config.Config
	Metrics  *metrics.Metrics `optional:"true"`
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	sec := params.Config.Security

	return &AuthMiddleware{
		identity: params.Identity,
		metrics:  params.Metrics,
		accessExtractors: []TokenExtractor{
			FromHeader(echo.HeaderAuthorization),
			FromCookie(sec.AccessTokenCookie),
		},
		refreshExtractors: []TokenExtractor{
			FromHeader(sec.RefreshTokenHeader),
		},
	}
}

// Authenticate requires a valid access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(m.accessExtractors, m.identity.ResolveAccessToken, next)
}

// RequireRefreshToken requires a valid refresh token.
func (m *AuthMiddleware) RequireRefreshToken(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(m.refreshExtractors, m.identity.ResolveRefreshToken, next)
}

type resolveFunc func(ctx context.Context, token string) (*entity.User, error)

func (m *AuthMiddleware) require(extractors []TokenExtractor, resolve resolveFunc, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := ExtractBearer(c, extractors...)
		if !ok {
			m.metrics.AuthFailure(metrics.ReasonNotAuthenticated)

			return errors.WithStack(domainerrors.ErrNotAuthenticated)
		}

		user, err := resolve(c.Request().Context(), token)
		if err != nil {
			return err
		}

		deliverycontext.SetCurrentUser(c, user)

		return next(c)
	}
}

// CurrentUser returns the user stored by Authenticate or RequireRefreshToken.
func CurrentUser(c echo.Context) (*entity.User, error) {
	user, ok := deliverycontext.GetCurrentUser(c)
	if !ok {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	return user, nil
}
