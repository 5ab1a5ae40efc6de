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

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db   *gorm.DB
	crud crudRepository[model.UserModel]
}

// NewUserRepository returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db:   db,
		crud: newCRUD[model.UserModel](db),
	}
}

func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	userM, err := repo.crud.first(ctx, byID(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(userM), nil
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	userM, err := repo.crud.first(ctx, byEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(userM), nil
}

func (repo *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := repo.crud.exists(ctx, byEmail(email))
	if err != nil {
		return false, errors.Wrap(err, "failed to check email")
	}

	return exists, nil
}

// Create persists a new user and copies the generated ID back.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.crud.create(ctx, userM); err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailInUse.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CategoriesCount = userM.CategoriesCount
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// UpdateProfile writes name and updated_at only. The password and the
// category counter are never part of a profile update.
func (repo *userRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"name":       user.Name,
			"updated_at": user.UpdatedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func (repo *userRepository) Delete(ctx context.Context, id int64) error {
	rows, err := repo.crud.deleteByID(ctx, id)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete user")
	}
	if rows == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// IncrementCategoriesCount guards the quota in the UPDATE itself so two
// concurrent requests cannot both pass a stale read of the counter.
func (repo *userRepository) IncrementCategoriesCount(ctx context.Context, id int64, maxPerUser int) (int, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ? AND categories_count < ?", id, maxPerUser).
		UpdateColumn("categories_count", gorm.Expr("categories_count + ?", 1))
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to increment categories count")
	}
	if result.RowsAffected == 0 {
		return 0, errors.WithStack(repository.ErrCategoryQuotaExceeded)
	}

	return repo.categoriesCount(ctx, id)
}

func (repo *userRepository) DecrementCategoriesCount(ctx context.Context, id int64) (int, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ? AND categories_count > 0", id).
		UpdateColumn("categories_count", gorm.Expr("categories_count - ?", 1))
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to decrement categories count")
	}

	return repo.categoriesCount(ctx, id)
}

func (repo *userRepository) categoriesCount(ctx context.Context, id int64) (int, error) {
	var counts []int
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Pluck("categories_count", &counts).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to read categories count")
	}
	if len(counts) == 0 {
		return 0, repository.ErrUserNotFound
	}

	return counts[0], nil
}

func byEmail(email string) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("email = ?", email)
	}
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:              data.ID,
		Name:            data.Name,
		Email:           data.Email,
		PasswordHash:    data.Password,
		CategoriesCount: data.CategoriesCount,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:              data.ID,
		Name:            data.Name,
		Email:           data.Email,
		Password:        data.PasswordHash,
		CategoriesCount: data.CategoriesCount,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
