package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"savvy/internal/domain/entity"
	domainerrors "savvy/internal/domain/errors"
	"savvy/internal/domain/repository"
	"savvy/internal/domain/service"
	"savvy/internal/errors"
	logs "savvy/internal/infra/log"
	"savvy/internal/infra/metrics"
	"savvy/internal/usecase"
)

type identityService struct {
	userRepo     repository.UserRepository
	tokenService service.TokenService
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

type IdentityServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	TokenService service.TokenService
	Metrics      *metrics.Metrics `optional:"true"`
	Logger       *slog.Logger
}

func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	return &identityService{
		userRepo:     params.UserRepo,
		tokenService: params.TokenService,
		metrics:      params.Metrics,
		logger:       params.Logger,
	}
}

func (srv *identityService) ResolveAccessToken(ctx context.Context, token string) (*entity.User, error) {
	return srv.resolve(ctx, token, service.TokenTypeAccess)
}

func (srv *identityService) ResolveRefreshToken(ctx context.Context, token string) (*entity.User, error) {
	return srv.resolve(ctx, token, service.TokenTypeRefresh)
}

// resolve verifies the token, checks its kind and loads the subject from the store.
func (srv *identityService) resolve(ctx context.Context, token, tokenType string) (*entity.User, error) {
	claims, err := srv.tokenService.VerifyToken(token)
	if err != nil {
		return nil, srv.reject(ctx, metrics.ReasonInvalidToken, err)
	}

	if claims.Type() != tokenType {
		return nil, srv.reject(ctx, metrics.ReasonWrongTokenType, errors.WithStack(domainerrors.ErrInvalidTokenType))
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, srv.reject(ctx, metrics.ReasonInvalidToken, errors.Wrap(domainerrors.ErrInvalidCredentials, err.Error()))
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, srv.reject(ctx, metrics.ReasonUnknownUser, errors.WithStack(domainerrors.ErrInvalidUser))
		}

		return nil, errors.Wrap(err, "failed to load token subject")
	}

	return user, nil
}

func (srv *identityService) reject(ctx context.Context, reason string, err error) error {
	srv.metrics.AuthFailure(reason)
	logs.FromContext(ctx, srv.logger).Debug("Token rejected", slog.String("reason", reason))

	return err
}
