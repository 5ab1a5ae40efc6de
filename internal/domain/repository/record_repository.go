package repository

import (
	"context"

	"savvy/internal/domain/entity"
	"savvy/internal/errors"
)

var ErrRecordNotFound = errors.New("record not found")

type RecordRepository interface {
	// Create persists the record and fills in its ID.
	Create(ctx context.Context, record *entity.Record) error

	// FindByID returns the record with its category loaded.
	FindByID(ctx context.Context, id int64) (*entity.Record, error)

	// FindByOwner returns every record of userID with categories loaded.
	FindByOwner(ctx context.Context, userID int64, sort entity.RecordSort) ([]*entity.Record, error)

	Delete(ctx context.Context, id int64) error
}
