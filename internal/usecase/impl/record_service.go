package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"savvy/internal/domain/entity"
	domainerrors "savvy/internal/domain/errors"
	"savvy/internal/domain/repository"
	"savvy/internal/errors"
	logs "savvy/internal/infra/log"
	"savvy/internal/infra/metrics"
	"savvy/internal/usecase"
)

type recordService struct {
	recordRepo   repository.RecordRepository
	categoryRepo repository.CategoryRepository
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

type RecordServiceParams struct {
	fx.In

	RecordRepo   repository.RecordRepository
	CategoryRepo repository.CategoryRepository
	Metrics      *metrics.Metrics `optional:"true"`
	Logger       *slog.Logger
}

func NewRecordService(params RecordServiceParams) usecase.RecordUsecase {
	return &recordService{
		recordRepo:   params.RecordRepo,
		categoryRepo: params.CategoryRepo,
		metrics:      params.Metrics,
		logger:       params.Logger,
	}
}

// CreateRecord stores a record against a category that is public or owned by user.
func (srv *recordService) CreateRecord(ctx context.Context, user *entity.User, input usecase.CreateRecordInput) (*entity.Record, error) {
	category, err := srv.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, errors.WithStack(domainerrors.ErrCategoryNotFound)
		}

		return nil, errors.Wrap(err, "failed to load record category")
	}

	record, err := entity.NewRecord(user.ID, category, input.Amount, input.Description, input.Date)
	if err != nil {
		return nil, err
	}

	if err := srv.recordRepo.Create(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to create record")
	}

	srv.metrics.RecordCreated()
	logs.FromContext(ctx, srv.logger).Debug("Record created", slog.Int64("userID", user.ID), slog.Int64("recordID", record.ID))

	return record, nil
}

func (srv *recordService) ListRecords(ctx context.Context, user *entity.User, sort string) ([]*entity.Record, error) {
	order, err := entity.ParseRecordSort(sort)
	if err != nil {
		return nil, err
	}

	records, err := srv.recordRepo.FindByOwner(ctx, user.ID, order)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list records")
	}

	return records, nil
}

// DeleteRecord removes a record owned by user and returns it.
func (srv *recordService) DeleteRecord(ctx context.Context, user *entity.User, recordID int64) (*entity.Record, error) {
	record, err := srv.recordRepo.FindByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, errors.WithStack(domainerrors.ErrRecordNotFound)
		}

		return nil, errors.Wrap(err, "failed to load record")
	}

	if record.OwnerID != user.ID {
		return nil, errors.WithStack(domainerrors.ErrRecordDeleteDenied)
	}

	if err := srv.recordRepo.Delete(ctx, recordID); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, errors.WithStack(domainerrors.ErrRecordNotFound)
		}

		return nil, errors.Wrap(err, "failed to delete record")
	}

	return record, nil
}
