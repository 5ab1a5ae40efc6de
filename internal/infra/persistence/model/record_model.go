package model

import "time"

// RecordModel mirrors the 'records' table.
type RecordModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Amount      int64     `gorm:"not null;check:chk_records_amount,amount > 0"`
	Description string    `gorm:"type:varchar(30);not null"`
	Date        time.Time `gorm:"not null;index"`
	OwnerID     int64     `gorm:"not null;index"`
	CategoryID  int64     `gorm:"not null;index"`

	Owner    *UserModel     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (RecordModel) TableName() string {
	return "records"
}

// All lists the models in dependency order for migrations.
func All() []any {
	return []any{
		&UserModel{},
		&CategoryModel{},
		&RecordModel{},
	}
}
