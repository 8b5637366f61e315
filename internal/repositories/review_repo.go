package repositories

import (
	"storefront/internal/models"
)

// RatingAggregate holds the average rating and review count of a product.
type RatingAggregate struct {
	Average float64
	Count   int64
}

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(review *models.Review) error
	ListByProduct(productID string) ([]models.Review, error)
	ListByUser(userID string) ([]models.Review, error)
	// DeleteOwned removes a review only when it belongs to the given user;
	// the ownership check is part of the delete predicate.
	DeleteOwned(userID, reviewID string) error
	FindExisting(userID, productID string) (*models.Review, error)
	Aggregate(productID string) (*RatingAggregate, error)
}
