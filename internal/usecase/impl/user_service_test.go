package impl_test

import (
	"context"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainerrors "savvy/internal/domain/errors"
	"savvy/internal/domain/service"
	"savvy/internal/errors"
	"savvy/internal/infra/metrics"
	"savvy/internal/testutil"
	"savvy/internal/usecase"
	"savvy/internal/usecase/impl"
)

func TestUserService_RegisterHashesPassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	user := e.register(t, "jane@example.com")

	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "Pass12345", user.PasswordHash)
	assert.Contains(t, user.PasswordHash, "$argon2id$")
	assert.Equal(t, 0, user.CategoriesCount)

	stored, err := e.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, stored.PasswordHash)
	assert.True(t, e.hasher.Check(ctx, "Pass12345", stored.PasswordHash))
}

func TestUserService_RegisterRejectsTakenEmail(t *testing.T) {
	e := newEnv(t)
	e.register(t, "jane@example.com")

	_, err := e.userSvc.RegisterUser(context.Background(), usecase.RegisterUserInput{
		Name: "Other", Email: "jane@example.com", Password: "Pass12345",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrEmailInUse))

	inUse, err := e.userSvc.EmailInUse(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.True(t, inUse)
}

func TestUserService_LoginIssuesTypedTokens(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.register(t, "jane@example.com")

	pair, err := e.userSvc.Login(ctx, usecase.LoginInput{Email: "jane@example.com", Password: "Pass12345"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)

	access, err := e.tokens.VerifyToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, service.TokenTypeAccess, access.Type())

	refresh, err := e.tokens.VerifyToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, service.TokenTypeRefresh, refresh.Type())

	id, err := refresh.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestUserService_LoginFailuresLookAlike(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.register(t, "jane@example.com")

	_, wrongPassword := e.userSvc.Login(ctx, usecase.LoginInput{Email: "jane@example.com", Password: "nope"})
	_, unknownEmail := e.userSvc.Login(ctx, usecase.LoginInput{Email: "ghost@example.com", Password: "Pass12345"})

	assert.True(t, errors.Is(wrongPassword, domainerrors.ErrIncorrectCredentials))
	assert.True(t, errors.Is(unknownEmail, domainerrors.ErrIncorrectCredentials))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	// One series per reason: unknown_user and bad_password.
	assert.Equal(t, 2, prom.CollectAndCount(e.metrics.Registry(), "savvy_auth_failures_total"))
}

func TestUserService_RefreshTokens(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.register(t, "jane@example.com")

	pair, err := e.userSvc.RefreshTokens(ctx, user)
	require.NoError(t, err)

	resolved, err := e.identitySvc.ResolveAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestUserService_UpdateUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	jane := e.register(t, "jane@example.com")
	john := e.register(t, "john@example.com")
	name := "Janet"

	t.Run("owner updates name", func(t *testing.T) {
		updated, err := e.userSvc.UpdateUser(ctx, jane.ID, jane, usecase.UpdateUserInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Janet", updated.Name)
		assert.Equal(t, "Test User", jane.Name, "caller's copy is untouched")

		stored, err := e.users.FindByID(ctx, jane.ID)
		require.NoError(t, err)
		assert.Equal(t, "Janet", stored.Name)
		assert.Equal(t, jane.Email, stored.Email)
		assert.Equal(t, jane.PasswordHash, stored.PasswordHash)
	})

	t.Run("other user is denied", func(t *testing.T) {
		_, err := e.userSvc.UpdateUser(ctx, jane.ID, john, usecase.UpdateUserInput{Name: &name})
		assert.True(t, errors.Is(err, domainerrors.ErrUserUpdateDenied))
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		updated, err := e.userSvc.UpdateUser(ctx, john.ID, john, usecase.UpdateUserInput{})
		require.NoError(t, err)
		assert.Equal(t, john.Name, updated.Name)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	jane := e.register(t, "jane@example.com")
	john := e.register(t, "john@example.com")

	err := e.userSvc.DeleteUser(ctx, jane.ID, john)
	assert.True(t, errors.Is(err, domainerrors.ErrUserDeleteDenied))

	require.NoError(t, e.userSvc.DeleteUser(ctx, jane.ID, jane))

	inUse, err := e.userSvc.EmailInUse(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.False(t, inUse)
}

func TestUserService_HasherFailure(t *testing.T) {
	e := newEnv(t)
	hasher := new(mockPasswordHasher)
	hasher.On("Hash", mock.Anything, "Pass12345").Return("", errors.WithStack(domainerrors.ErrPasswordHashFailed))

	svc := impl.NewUserService(impl.UserServiceParams{
		UserRepo:     e.users,
		Hasher:       hasher,
		TokenService: e.tokens,
		Logger:       testutil.Logger(),
	})

	_, err := svc.RegisterUser(context.Background(), usecase.RegisterUserInput{
		Name: "Jane", Email: "jane@example.com", Password: "Pass12345",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))

	inUse, err := e.userSvc.EmailInUse(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.False(t, inUse, "nothing is stored when hashing fails")
	hasher.AssertExpectations(t)
}

func TestUserService_TokenEncodeFailure(t *testing.T) {
	e := newEnv(t)
	e.register(t, "jane@example.com")

	tokens := new(mockTokenService)
	tokens.On("CreateAccessToken", mock.Anything).Return("", errors.WithStack(domainerrors.ErrTokenEncodeFailed))

	svc := impl.NewUserService(impl.UserServiceParams{
		UserRepo:     e.users,
		Hasher:       e.hasher,
		TokenService: tokens,
		Metrics:      metrics.New(),
		Logger:       testutil.Logger(),
	})

	_, err := svc.Login(context.Background(), usecase.LoginInput{Email: "jane@example.com", Password: "Pass12345"})
	assert.True(t, errors.Is(err, domainerrors.ErrTokenEncodeFailed))
	tokens.AssertNotCalled(t, "CreateRefreshToken", mock.Anything)
}
