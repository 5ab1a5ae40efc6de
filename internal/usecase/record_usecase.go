package usecase

import (
	"context"
	"time"

	"savvy/internal/domain/entity"
)

type CreateRecordInput struct {
	Amount      int64
	Description string
	Date        time.Time
	CategoryID  int64
}

// RecordUsecase manages the transactions a user records against visible categories.
type RecordUsecase interface {
	CreateRecord(ctx context.Context, user *entity.User, input CreateRecordInput) (*entity.Record, error)
	// ListRecords accepts "", "date", "-date", "amount" or "-amount".
	ListRecords(ctx context.Context, user *entity.User, sort string) ([]*entity.Record, error)
	DeleteRecord(ctx context.Context, user *entity.User, recordID int64) (*entity.Record, error)
}
