package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSliderRepository is a GORM implementation of SliderRepository.
type GORMSliderRepository struct {
	db *gorm.DB
}

// NewGORMSliderRepository creates a new instance of GORMSliderRepository.
func NewGORMSliderRepository(db *gorm.DB) *GORMSliderRepository {
	return &GORMSliderRepository{
		db: db,
	}
}

// List retrieves all sliders, newest first.
func (r *GORMSliderRepository) List() ([]models.Slider, error) {
	var sliders []models.Slider
	if err := r.db.Order("created_at DESC").Find(&sliders).Error; err != nil {
		return nil, fmt.Errorf("failed to list sliders: %w", err)
	}
	return sliders, nil
}

// GetByID retrieves a single slider by its ID.
func (r *GORMSliderRepository) GetByID(id string) (*models.Slider, error) {
	var slider models.Slider
	if err := r.db.First(&slider, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("slider %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get slider %s: %w", id, err)
	}
	return &slider, nil
}

// Create creates a new slider.
func (r *GORMSliderRepository) Create(slider *models.Slider) error {
	if slider.ID == "" {
		slider.ID = uuid.New().String()
	}
	if err := r.db.Create(slider).Error; err != nil {
		return fmt.Errorf("failed to create slider: %w", err)
	}
	return nil
}

// Update updates an existing slider. Save would insert when the row is
// missing, so update explicitly by id and check the affected count.
func (r *GORMSliderRepository) Update(slider *models.Slider) error {
	res := r.db.Model(&models.Slider{}).
		Where("id = ?", slider.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(slider)
	if res.Error != nil {
		return fmt.Errorf("failed to update slider: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("slider %s: %w", slider.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a slider by its ID.
func (r *GORMSliderRepository) Delete(id string) error {
	res := r.db.Delete(&models.Slider{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete slider: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("slider %s: %w", id, ErrNotFound)
	}
	return nil
}
