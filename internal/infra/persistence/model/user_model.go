package model

import "time"

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	Name            string `gorm:"type:varchar(100);not null"`
	Email           string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password        string `gorm:"type:varchar(255);not null"`
	CategoriesCount int    `gorm:"not null;default:0;check:chk_users_categories_count,categories_count >= 0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
