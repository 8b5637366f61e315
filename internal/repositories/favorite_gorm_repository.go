package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMFavoriteRepository is a GORM implementation of FavoriteRepository.
type GORMFavoriteRepository struct {
	db *gorm.DB
}

// NewGORMFavoriteRepository creates a new instance of GORMFavoriteRepository.
func NewGORMFavoriteRepository(db *gorm.DB) *GORMFavoriteRepository {
	return &GORMFavoriteRepository{
		db: db,
	}
}

// Toggle flips the favorite state for (userID, productID) inside one
// transaction, so two concurrent toggles cannot both create a row.
func (r *GORMFavoriteRepository) Toggle(userID, productID string) (bool, error) {
	var added bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var favorite models.Favorite
		err := tx.Where("user_id = ? AND product_id = ?", userID, productID).
			First(&favorite).Error
		switch {
		case err == nil:
			added = false
			return tx.Delete(&favorite).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			added = true
			return tx.Create(&models.Favorite{
				ID:        uuid.New().String(),
				UserID:    userID,
				ProductID: productID,
			}).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	return added, nil
}

// FindID returns the favorite ID for (userID, productID), or the empty string
// when the product is not favorited.
func (r *GORMFavoriteRepository) FindID(userID, productID string) (string, error) {
	var favorite models.Favorite
	err := r.db.Select("id").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to find favorite: %w", err)
	}
	return favorite.ID, nil
}

// ListByUser retrieves all favorites of a user with their products.
func (r *GORMFavoriteRepository) ListByUser(userID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.Preload("Product").
		Where("user_id = ?", userID).
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}
