package repositories

import (
	"storefront/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	ListFeatured() ([]models.Product, error)
	// List returns a page of products whose name or company contains the
	// search term (case-insensitive), newest first, plus the total match count.
	List(search string, offset, limit int) ([]models.Product, int64, error)
	ListAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	UpdateImage(id, imageURL string) error
	Delete(id string) error
}
