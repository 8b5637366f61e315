package models

import "time"

// Category groups products for browsing. Products reference a category through
// Product.CategoryID; deleting a category sets those references to NULL rather
// than deleting the products.
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"uniqueIndex;type:varchar(100)"`
	Products  []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt time.Time `json:"created_at"`
}
