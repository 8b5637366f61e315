package repositories

import (
	"storefront/internal/models"
)

// CartRepository defines the interface for cart and cart item data access.
type CartRepository interface {
	// GetByUser returns the user's cart with its items and their products,
	// items ordered by creation time ascending.
	GetByUser(userID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	FindItem(cartID, productID string) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	SaveItem(item *models.CartItem) error
	// UpdateItemFields applies a partial update to an item; the predicate is
	// scoped to the owning cart so another cart's item cannot be touched.
	UpdateItemFields(cartID, itemID string, fields map[string]interface{}) error
	DeleteItem(cartID, itemID string) error
	ItemsWithProducts(cartID string) ([]models.CartItem, error)
	// SaveTotals persists only the derived aggregate fields of the cart.
	SaveTotals(cart *models.Cart) error
	ClearItems(cartID string) error
}
