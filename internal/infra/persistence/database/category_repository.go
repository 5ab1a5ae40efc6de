package database

import (
	"context"

	"gorm.io/gorm"

	"savvy/internal/domain/entity"
	domainerrors "savvy/internal/domain/errors"
	"savvy/internal/domain/repository"
	"savvy/internal/errors"
	"savvy/internal/infra/persistence/model"
)

type categoryRepository struct {
	crud crudRepository[model.CategoryModel]
}

func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{
		crud: newCRUD[model.CategoryModel](db),
	}
}

func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)

	if err := repo.crud.create(ctx, categoryM); err != nil {
		if isForeignKeyConstraintViolation(err) {
			return errors.Wrap(repository.ErrUserNotFound, "category owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create category")
	}

	category.ID = categoryM.ID

	return nil
}

func (repo *categoryRepository) FindByID(ctx context.Context, id int64) (*entity.Category, error) {
	categoryM, err := repo.crud.first(ctx, byID(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by id")
	}

	return toCategoryDomain(categoryM), nil
}

// FindVisibleToUser returns public categories and the ones owned by userID.
func (repo *categoryRepository) FindVisibleToUser(ctx context.Context, userID int64) ([]*entity.Category, error) {
	categoryMs, err := repo.crud.find(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id IS NULL OR owner_id = ?", userID).Order("id")
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(categoryMs))
	for _, categoryM := range categoryMs {
		categories = append(categories, toCategoryDomain(categoryM))
	}

	return categories, nil
}

func (repo *categoryRepository) Delete(ctx context.Context, id int64) error {
	rows, err := repo.crud.deleteByID(ctx, id)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete category")
	}
	if rows == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	if data == nil {
		return nil
	}

	return &entity.Category{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		OwnerID:     data.OwnerID,
	}
}

func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	if data == nil {
		return nil
	}

	return &model.CategoryModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		OwnerID:     data.OwnerID,
	}
}
