// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

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

const bearerTokenType = "Bearer"

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	metrics      *metrics.Metrics
	logger       *slog.Logger
	now          func() time.Time
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Metrics      *metrics.Metrics `optional:"true"`
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		metrics:      params.Metrics,
		logger:       params.Logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return logs.FromContext(ctx, srv.logger)
}

// RegisterUser creates an account. The password is hashed before it reaches the store.
func (srv *userService) RegisterUser(ctx context.Context, input usecase.RegisterUserInput) (*entity.User, error) {
	inUse, err := srv.EmailInUse(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, errors.WithStack(domainerrors.ErrEmailInUse)
	}

	user, err := entity.NewUser(ctx, srv.hasher, input.Name, input.Email, input.Password, srv.now())
	if err != nil {
		return nil, errors.Wrap(err, "failed to build user during registration")
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user during registration")
	}
	srv.log(ctx).Info("User registered", slog.Int64("userID", user.ID))

	return user, nil
}

// Login checks the credentials and issues a token pair. Unknown email and
// wrong password are indistinguishable to the caller.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.TokenPairOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.metrics.AuthFailure(metrics.ReasonUnknownUser)
			srv.log(ctx).Debug("Login rejected", slog.String("reason", metrics.ReasonUnknownUser))

			return nil, errors.WithStack(domainerrors.ErrIncorrectCredentials)
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !user.CheckPassword(ctx, srv.hasher, input.Password) {
		srv.metrics.AuthFailure(metrics.ReasonBadPassword)
		srv.log(ctx).Debug("Login rejected", slog.Int64("userID", user.ID), slog.String("reason", metrics.ReasonBadPassword))

		return nil, errors.WithStack(domainerrors.ErrIncorrectCredentials)
	}

	return srv.issueTokens(user)
}

func (srv *userService) RefreshTokens(_ context.Context, user *entity.User) (*usecase.TokenPairOutput, error) {
	return srv.issueTokens(user)
}

// UpdateUser applies a self-service profile update. Only the owner may update.
func (srv *userService) UpdateUser(ctx context.Context, userID int64, current *entity.User, input usecase.UpdateUserInput) (*entity.User, error) {
	if current == nil || current.ID != userID {
		return nil, errors.WithStack(domainerrors.ErrUserUpdateDenied)
	}

	updated := *current
	if !updated.ApplyUpdate(entity.UserUpdate{Name: input.Name}, srv.now()) {
		return &updated, nil
	}

	if err := srv.userRepo.UpdateProfile(ctx, &updated); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	return &updated, nil
}

// DeleteUser removes the account. Owned categories and records go with it.
func (srv *userService) DeleteUser(ctx context.Context, userID int64, current *entity.User) error {
	if current == nil || current.ID != userID {
		return errors.WithStack(domainerrors.ErrUserDeleteDenied)
	}

	if err := srv.userRepo.Delete(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	srv.log(ctx).Info("User deleted", slog.Int64("userID", userID))

	return nil
}

func (srv *userService) EmailInUse(ctx context.Context, email string) (bool, error) {
	inUse, err := srv.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, errors.Wrap(err, "failed to check email")
	}

	return inUse, nil
}

func (srv *userService) issueTokens(user *entity.User) (*usecase.TokenPairOutput, error) {
	claims := service.SubjectClaims(user.ID)

	accessToken, err := srv.tokenService.CreateAccessToken(claims)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create access token")
	}

	refreshToken, err := srv.tokenService.CreateRefreshToken(claims)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create refresh token")
	}

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    bearerTokenType,
	}, nil
}
