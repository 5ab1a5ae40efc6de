package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"savvy/internal/domain/entity"
	domainerrors "savvy/internal/domain/errors"
	"savvy/internal/domain/repository"
	"savvy/internal/errors"
	"savvy/internal/infra/persistence/model"
)

// recordSortColumns whitelists the columns a listing may be ordered by.
var recordSortColumns = map[string]string{
	entity.RecordSortDate:   "date",
	entity.RecordSortAmount: "amount",
}

type recordRepository struct {
	crud crudRepository[model.RecordModel]
}

func NewRecordRepository(db *gorm.DB) repository.RecordRepository {
	return &recordRepository{
		crud: newCRUD[model.RecordModel](db),
	}
}

func (repo *recordRepository) Create(ctx context.Context, record *entity.Record) error {
	recordM := fromRecordDomain(record)

	if err := repo.crud.create(ctx, recordM); err != nil {
		switch {
		case isCheckConstraintViolation(err):
			return errors.WithStack(domainerrors.ErrInvalidAmount)
		case isForeignKeyConstraintViolation(err):
			return errors.WithStack(domainerrors.ErrCategoryNotFound)
		default:
			return domainerrors.NewDatabaseExecuteError(err, "failed to create record")
		}
	}

	record.ID = recordM.ID

	return nil
}

func (repo *recordRepository) FindByID(ctx context.Context, id int64) (*entity.Record, error) {
	recordM, err := repo.crud.first(ctx, withCategory, byID(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRecordNotFound
		}

		return nil, errors.Wrap(err, "failed to find record by id")
	}

	return toRecordDomain(recordM), nil
}

// FindByOwner orders by the requested column, then by id descending so
// equal values list the newest insert first.
func (repo *recordRepository) FindByOwner(ctx context.Context, userID int64, sort entity.RecordSort) ([]*entity.Record, error) {
	column, ok := recordSortColumns[sort.Field]
	if !ok {
		return nil, errors.WithStack(domainerrors.ErrInvalidSort.WithDetails(sort.Field))
	}

	recordMs, err := repo.crud.find(ctx, withCategory, func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", userID).
			Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: sort.Descending}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true})
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list records")
	}

	records := make([]*entity.Record, 0, len(recordMs))
	for _, recordM := range recordMs {
		records = append(records, toRecordDomain(recordM))
	}

	return records, nil
}

func (repo *recordRepository) Delete(ctx context.Context, id int64) error {
	rows, err := repo.crud.deleteByID(ctx, id)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete record")
	}
	if rows == 0 {
		return repository.ErrRecordNotFound
	}

	return nil
}

func withCategory(db *gorm.DB) *gorm.DB {
	return db.Preload("Category")
}

// --- Mapper Functions ---

func toRecordDomain(data *model.RecordModel) *entity.Record {
	if data == nil {
		return nil
	}

	return &entity.Record{
		ID:          data.ID,
		Amount:      data.Amount,
		Description: data.Description,
		Date:        data.Date,
		OwnerID:     data.OwnerID,
		CategoryID:  data.CategoryID,
		Category:    toCategoryDomain(data.Category),
	}
}

func fromRecordDomain(data *entity.Record) *model.RecordModel {
	if data == nil {
		return nil
	}

	return &model.RecordModel{
		ID:          data.ID,
		Amount:      data.Amount,
		Description: data.Description,
		Date:        data.Date,
		OwnerID:     data.OwnerID,
		CategoryID:  data.CategoryID,
	}
}
