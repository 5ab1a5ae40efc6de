package impl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"savvy/config"
	"savvy/internal/domain/entity"
	"savvy/internal/domain/repository"
	"savvy/internal/domain/service"
	"savvy/internal/infra/auth"
	"savvy/internal/infra/metrics"
	"savvy/internal/infra/persistence/database"
	"savvy/internal/testutil"
	"savvy/internal/usecase"
	"savvy/internal/usecase/impl"
)

// env wires every service against a private SQLite database.
type env struct {
	cfg        *config.Config
	metrics    *metrics.Metrics
	users      repository.UserRepository
	categories repository.CategoryRepository
	records    repository.RecordRepository
	hasher     service.PasswordHasher
	tokens     service.TokenService

	userSvc     usecase.UserUsecase
	identitySvc usecase.IdentityUsecase
	categorySvc usecase.CategoryUsecase
	recordSvc   usecase.RecordUsecase
}

func newEnv(t *testing.T) *env {
	t.Helper()

	cfg := testutil.NewConfig()
	db := testutil.NewDB(t, cfg)
	logger := testutil.Logger()

	tokens, err := auth.NewJWTService(cfg, logger)
	require.NoError(t, err)

	e := &env{
		cfg:        cfg,
		metrics:    metrics.New(),
		users:      database.NewUserRepository(db),
		categories: database.NewCategoryRepository(db),
		records:    database.NewRecordRepository(db),
		hasher:     auth.NewArgon2Hasher(cfg, logger),
		tokens:     tokens,
	}

	e.userSvc = impl.NewUserService(impl.UserServiceParams{
		UserRepo:     e.users,
		Hasher:       e.hasher,
		TokenService: e.tokens,
		Metrics:      e.metrics,
		Logger:       logger,
	})
	e.identitySvc = impl.NewIdentityService(impl.IdentityServiceParams{
		UserRepo:     e.users,
		TokenService: e.tokens,
		Metrics:      e.metrics,
		Logger:       logger,
	})
	e.categorySvc = impl.NewCategoryService(impl.CategoryServiceParams{
		TxManager:    database.NewTransactionManager(db),
		CategoryRepo: e.categories,
		Config:       cfg,
		Metrics:      e.metrics,
		Logger:       logger,
	})
	e.recordSvc = impl.NewRecordService(impl.RecordServiceParams{
		RecordRepo:   e.records,
		CategoryRepo: e.categories,
		Metrics:      e.metrics,
		Logger:       logger,
	})

	return e
}

func (e *env) register(t *testing.T, email string) *entity.User {
	t.Helper()

	user, err := e.userSvc.RegisterUser(context.Background(), usecase.RegisterUserInput{
		Name:     "Test User",
		Email:    email,
		Password: "Pass12345",
	})
	require.NoError(t, err)

	return user
}

func (e *env) publicCategory(t *testing.T, name string) *entity.Category {
	t.Helper()

	category := &entity.Category{Name: name}
	require.NoError(t, e.categories.Create(context.Background(), category))

	return category
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) CreateAccessToken(claims service.Claims) (string, error) {
	args := m.Called(claims)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) CreateRefreshToken(claims service.Claims) (string, error) {
	args := m.Called(claims)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) VerifyToken(token string) (service.Claims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(service.Claims)

	return claims, args.Error(1)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(ctx context.Context, password, hash string) bool {
	args := m.Called(ctx, password, hash)

	return args.Bool(0)
}
