package repositories

import (
	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// CreateWithItems persists an order and its items atomically.
	CreateWithItems(order *models.Order) error
	DeleteUnpaidByUser(userID string) error
	GetByID(id string) (*models.Order, error)
	GetWithItems(id string) (*models.Order, error)
	ListByUser(userID string) ([]models.Order, error)
	ListAll() ([]models.Order, error)
	// UpdateShipping persists the shipping decision and the recomputed total.
	UpdateShipping(order *models.Order) error
	MarkPaid(id string) error
}
