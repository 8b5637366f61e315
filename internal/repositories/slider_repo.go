package repositories

import (
	"storefront/internal/models"
)

// SliderRepository defines the interface for slider data access.
type SliderRepository interface {
	List() ([]models.Slider, error)
	GetByID(id string) (*models.Slider, error)
	Create(slider *models.Slider) error
	Update(slider *models.Slider) error
	Delete(id string) error
}
