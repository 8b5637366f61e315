package repositories

import (
	"storefront/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	List() ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	GetWithProducts(id string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	// Delete removes the category and clears the category reference of every
	// product that pointed at it, in one transaction.
	Delete(id string) error
}
