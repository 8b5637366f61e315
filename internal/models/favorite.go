package models

import "time"

// Favorite is a user's bookmark of a product. The composite unique index
// guarantees at most one row per (user, product) pair.
type Favorite struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);uniqueIndex:idx_favorites_user_product"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);uniqueIndex:idx_favorites_user_product"`
	Product   Product   `json:"product" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"created_at"`
}
