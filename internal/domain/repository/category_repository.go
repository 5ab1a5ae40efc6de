package repository

import (
	"context"

	"savvy/internal/domain/entity"
	"savvy/internal/errors"
)

var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository holds no ownership rules. Visibility filtering is
// exposed as a query, the decision stays with the caller.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error

	FindByID(ctx context.Context, id int64) (*entity.Category, error)

	// FindVisibleToUser returns public categories plus those owned by userID, ordered by id.
	FindVisibleToUser(ctx context.Context, userID int64) ([]*entity.Category, error)

	Delete(ctx context.Context, id int64) error
}
