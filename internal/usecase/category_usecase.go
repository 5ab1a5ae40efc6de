package usecase

import (
	"context"

	"savvy/internal/domain/entity"
)

type CreateCategoryInput struct {
	Name        string
	Description *string
}

// CategoryUsecase enforces the per-user quota and owner-only deletion.
type CategoryUsecase interface {
	CreateCategory(ctx context.Context, user *entity.User, input CreateCategoryInput) (*entity.Category, error)
	ListCategories(ctx context.Context, user *entity.User) ([]*entity.Category, error)
	DeleteCategory(ctx context.Context, user *entity.User, categoryID int64) (*entity.Category, error)
}
