package models

import "time"

// Review is a user's rating of a product. The service layer allows at most one
// review per (user, product) pair.
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);index"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Product   Product   `json:"product" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"created_at"`
}
