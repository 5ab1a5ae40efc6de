package entity

import (
	"time"

	domainerrors "savvy/internal/domain/errors"
	"savvy/internal/errors"
)

// Record is a single spending transaction. Records are immutable once stored.
type Record struct {
	ID          int64
	Amount      int64
	Description string
	Date        time.Time
	OwnerID     int64
	CategoryID  int64
	Category    *Category // Loaded with the record.
}

// NewRecord builds an unsaved record attached to a category visible to the owner.
func NewRecord(ownerID int64, category *Category, amount int64, description string, date time.Time) (*Record, error) {
	if amount <= 0 {
		return nil, errors.WithStack(domainerrors.ErrInvalidAmount)
	}
	if category == nil || !category.VisibleTo(ownerID) {
		return nil, errors.WithStack(domainerrors.ErrCategoryNotFound)
	}

	return &Record{
		Amount:      amount,
		Description: description,
		Date:        date,
		OwnerID:     ownerID,
		CategoryID:  category.ID,
		Category:    category,
	}, nil
}

// RecordSort is the ordering applied when listing records.
type RecordSort struct {
	Field      string // "date" or "amount"
	Descending bool
}

// DefaultRecordSort lists the newest records first.
var DefaultRecordSort = RecordSort{Field: RecordSortDate, Descending: true}

const (
	RecordSortDate   = "date"
	RecordSortAmount = "amount"
)

// ParseRecordSort accepts "", "date", "-date", "amount" and "-amount".
// A leading minus sorts descending.
func ParseRecordSort(raw string) (RecordSort, error) {
	if raw == "" {
		return DefaultRecordSort, nil
	}

	sort := RecordSort{Field: raw}
	if raw[0] == '-' {
		sort = RecordSort{Field: raw[1:], Descending: true}
	}

	switch sort.Field {
	case RecordSortDate, RecordSortAmount:
		return sort, nil
	default:
		return RecordSort{}, errors.WithStack(domainerrors.ErrInvalidSort.WithDetails(raw))
	}
}
