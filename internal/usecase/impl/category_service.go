package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"savvy/config"
	"savvy/internal/domain/entity"
	domainerrors "savvy/internal/domain/errors"
	"savvy/internal/domain/repository"
	"savvy/internal/errors"
	logs "savvy/internal/infra/log"
	"savvy/internal/infra/metrics"
	"savvy/internal/usecase"
)

type categoryService struct {
	txManager    repository.TransactionManager
	categoryRepo repository.CategoryRepository
	maxPerUser   int
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

type CategoryServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CategoryRepo repository.CategoryRepository
	Config       *config.Config
	Metrics      *metrics.Metrics `optional:"true"`
	Logger       *slog.Logger
}

func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		txManager:    params.TxManager,
		categoryRepo: params.CategoryRepo,
		maxPerUser:   params.Config.Categories.MaxPerUser,
		metrics:      params.Metrics,
		logger:       params.Logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return logs.FromContext(ctx, srv.logger)
}

// CreateCategory stores a category owned by user. The counter increment and
// the insert commit together; the increment re-checks the quota in SQL so
// concurrent requests cannot overshoot it. On success user.CategoriesCount
// reflects the stored value.
func (srv *categoryService) CreateCategory(ctx context.Context, user *entity.User, input usecase.CreateCategoryInput) (*entity.Category, error) {
	if !user.CanAddCategory(srv.maxPerUser) {
		return nil, errors.WithStack(domainerrors.ErrMaxCategoriesReached)
	}

	category := entity.NewCategory(user.ID, input.Name, input.Description)

	var count int
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		var err error
		count, err = factory.NewUserRepository().IncrementCategoriesCount(ctx, user.ID, srv.maxPerUser)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryQuotaExceeded) {
				return errors.WithStack(domainerrors.ErrMaxCategoriesReached)
			}

			return err
		}

		return factory.NewCategoryRepository().Create(ctx, category)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	user.CategoriesCount = count
	srv.metrics.CategoryCreated()
	srv.log(ctx).Info("Category created",
		slog.Int64("userID", user.ID),
		slog.Int64("categoryID", category.ID),
		slog.Int("categoriesCount", count),
	)

	return category, nil
}

func (srv *categoryService) ListCategories(ctx context.Context, user *entity.User) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.FindVisibleToUser(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// DeleteCategory removes a category owned by user. Missing, public and
// foreign categories all report not found and leave the counter alone.
func (srv *categoryService) DeleteCategory(ctx context.Context, user *entity.User, categoryID int64) (*entity.Category, error) {
	var (
		category *entity.Category
		count    int
	)

	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		categoryRepo := factory.NewCategoryRepository()

		var err error
		category, err = categoryRepo.FindByID(ctx, categoryID)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return errors.WithStack(domainerrors.ErrCategoryNotFound)
			}

			return err
		}
		if !category.OwnedBy(user.ID) {
			return errors.WithStack(domainerrors.ErrCategoryNotFound)
		}

		if count, err = factory.NewUserRepository().DecrementCategoriesCount(ctx, user.ID); err != nil {
			return err
		}

		return categoryRepo.Delete(ctx, categoryID)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete category")
	}

	user.CategoriesCount = count
	srv.log(ctx).Info("Category deleted", slog.Int64("userID", user.ID), slog.Int64("categoryID", categoryID))

	return category, nil
}
