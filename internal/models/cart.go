package models

import "time"

// Cart is a user's mutable staging area of selected products. NumItems,
// CartTotal, Tax and OrderTotal are derived fields; they are written only by
// the cart recompute step and must never be edited directly.
type Cart struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string     `json:"user_id" gorm:"type:varchar(36);uniqueIndex"`
	NumItems   int        `json:"num_items"`
	CartTotal  int        `json:"cart_total"`
	Shipping   int        `json:"shipping"`
	Tax        int        `json:"tax"`
	OrderTotal int        `json:"order_total"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CartItem is a single product line in a cart. At most one row exists per
// (cart, product) pair; adding the same product again increments Amount.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID    string    `json:"cart_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_items_cart_product"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_items_cart_product"`
	Amount    int       `json:"amount"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
	Product   Product   `json:"product" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"created_at"`
}
