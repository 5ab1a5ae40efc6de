package model

// CategoryModel mirrors the 'categories' table. A NULL owner_id marks a
// public category. Owned categories go away with their owner.
type CategoryModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"type:varchar(16);not null"`
	Description *string `gorm:"type:varchar(50)"`
	OwnerID     *int64  `gorm:"index"`

	Owner *UserModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}
