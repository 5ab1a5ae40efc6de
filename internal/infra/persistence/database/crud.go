package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// scope narrows a query, in the shape gorm's Scopes expects.
type scope = func(*gorm.DB) *gorm.DB

// crudRepository holds the persistence operations shared by every model.
// It carries no ownership rules.
type crudRepository[M any] struct {
	db *gorm.DB
}

func newCRUD[M any](db *gorm.DB) crudRepository[M] {
	return crudRepository[M]{db: db}
}

// create inserts m without touching associations and fills generated fields.
func (r crudRepository[M]) create(ctx context.Context, m *M) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error
}

// first returns gorm.ErrRecordNotFound when nothing matches.
func (r crudRepository[M]) first(ctx context.Context, scopes ...scope) (*M, error) {
	m := new(M)
	if err := r.db.WithContext(ctx).Scopes(scopes...).First(m).Error; err != nil {
		return nil, err
	}

	return m, nil
}

func (r crudRepository[M]) find(ctx context.Context, scopes ...scope) ([]*M, error) {
	var ms []*M
	if err := r.db.WithContext(ctx).Scopes(scopes...).Find(&ms).Error; err != nil {
		return nil, err
	}

	return ms, nil
}

func (r crudRepository[M]) exists(ctx context.Context, scopes ...scope) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(M)).Scopes(scopes...).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// deleteByID reports how many rows were removed.
func (r crudRepository[M]) deleteByID(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(new(M), id)

	return result.RowsAffected, result.Error
}

func byID(id int64) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}
