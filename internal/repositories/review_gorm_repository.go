package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// Create creates a new review.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// ListByProduct retrieves all reviews of a product, newest first.
func (r *GORMReviewRepository) ListByProduct(productID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for product %s: %w", productID, err)
	}
	return reviews, nil
}

// ListByUser retrieves all reviews written by a user with their products.
func (r *GORMReviewRepository) ListByUser(userID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("Product").
		Where("user_id = ?", userID).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for user %s: %w", userID, err)
	}
	return reviews, nil
}

// DeleteOwned deletes a review scoped to its owner. A review belonging to
// another user is reported as not found, never deleted.
func (r *GORMReviewRepository) DeleteOwned(userID, reviewID string) error {
	res := r.db.Where("id = ? AND user_id = ?", reviewID, userID).
		Delete(&models.Review{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
	}
	return nil
}

// FindExisting returns the review a user already wrote for a product, or nil.
func (r *GORMReviewRepository) FindExisting(userID, productID string) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find existing review: %w", err)
	}
	return &review, nil
}

// Aggregate computes the average rating and review count of a product. A
// product with no reviews yields a zero aggregate, not an error.
func (r *GORMReviewRepository) Aggregate(productID string) (*RatingAggregate, error) {
	var agg RatingAggregate
	err := r.db.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings for product %s: %w", productID, err)
	}
	return &agg, nil
}
