package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Delivery types accepted at checkout.
const (
	DeliveryShip    = "ship"
	DeliveryInstore = "instore"
)

// ShippingAddress is the structured delivery address captured at checkout,
// stored as JSON text in a single column.
type ShippingAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	State     string `json:"state"`
	Address   string `json:"address"`
}

// Value implements driver.Valuer.
func (a ShippingAddress) Value() (driver.Value, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to encode shipping address: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (a *ShippingAddress) Scan(src interface{}) error {
	*a = ShippingAddress{}
	if src == nil {
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ShippingAddress", src)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, a)
}

// Order is an immutable snapshot of a cart taken at checkout. Subtotal holds
// the pre-shipping total so shipping can be re-applied without compounding:
// OrderTotal is always Subtotal + Tax + Shipping.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"user_id" gorm:"type:varchar(36);index"`
	Products        int             `json:"products"`
	Subtotal        int             `json:"subtotal"`
	OrderTotal      int             `json:"order_total"`
	Tax             int             `json:"tax"`
	Shipping        int             `json:"shipping"`
	Email           string          `json:"email"`
	DeliveryType    string          `json:"delivery_type"`
	ShippingMethod  string          `json:"shipping_method"`
	ShippingDetails ShippingAddress `json:"shipping_details" gorm:"type:text"`
	IsPaid          bool            `json:"is_paid" gorm:"index"`
	Items           []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OrderItem is a line of an order, copied verbatim from a cart item at
// checkout. Immutable once created.
type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"order_id" gorm:"type:varchar(36);index"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36)"`
	Quantity  int     `json:"quantity"`
	Color     string  `json:"color"`
	Size      string  `json:"size"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID"`
}
