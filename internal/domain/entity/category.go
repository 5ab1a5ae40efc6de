package entity

// Category is a spending bucket. A nil OwnerID marks a public category
// shared by every user.
type Category struct {
	ID          int64
	Name        string
	Description *string
	OwnerID     *int64
}

// NewCategory builds an unsaved category owned by ownerID.
func NewCategory(ownerID int64, name string, description *string) *Category {
	return &Category{
		Name:        name,
		Description: description,
		OwnerID:     &ownerID,
	}
}

func (c *Category) IsPublic() bool {
	return c.OwnerID == nil
}

// OwnedBy is false for public categories.
func (c *Category) OwnedBy(userID int64) bool {
	return c.OwnerID != nil && *c.OwnerID == userID
}

// VisibleTo reports whether userID may list or reference the category.
func (c *Category) VisibleTo(userID int64) bool {
	return c.IsPublic() || c.OwnedBy(userID)
}
