package services

import (
	"context"
	"fmt"
	"log"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/cache"

	"github.com/go-playground/validator/v10"
)

// ReviewInput carries the submitted fields of a review.
type ReviewInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required,min=3,max=1000"`
}

// RatingSummary is the aggregate rating of a product. Rating carries one
// decimal place, or "0" when the product has no reviews.
type RatingSummary struct {
	Rating string `json:"rating"`
	Count  int    `json:"count"`
}

// ReviewService handles business logic related to product reviews.
type ReviewService struct {
	repo     repositories.ReviewRepository
	cache    cache.Cache
	validate *validator.Validate
}

// NewReviewService creates a new ReviewService.
func NewReviewService(repo repositories.ReviewRepository, c cache.Cache) *ReviewService {
	return &ReviewService{
		repo:     repo,
		cache:    c,
		validate: validator.New(),
	}
}

// Create validates and persists a review for the current user. A second
// review by the same user for the same product is rejected.
func (s *ReviewService) Create(ctx context.Context, userID string, in ReviewInput) (*models.Review, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid review data: %w", err)
	}

	existing, err := s.repo.FindExisting(userID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReviewExists
	}

	review := &models.Review{
		ProductID: in.ProductID,
		UserID:    userID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}
	if err := s.repo.Create(review); err != nil {
		return nil, err
	}

	// The cached product page is stale once a review lands.
	if err := s.cache.Delete(ctx, cacheKeyProduct(in.ProductID)); err != nil {
		log.Printf("Failed to invalidate product cache: %v", err)
	}
	return review, nil
}

// ListForProduct retrieves a product's reviews, newest first.
func (s *ReviewService) ListForProduct(productID string) ([]models.Review, error) {
	return s.repo.ListByProduct(productID)
}

// ListForUser retrieves the current user's reviews with their products.
func (s *ReviewService) ListForUser(userID string) ([]models.Review, error) {
	return s.repo.ListByUser(userID)
}

// Delete removes a review only if it belongs to the given user.
func (s *ReviewService) Delete(userID, reviewID string) error {
	return s.repo.DeleteOwned(userID, reviewID)
}

// FindExisting returns the review a user already wrote for a product, or nil.
func (s *ReviewService) FindExisting(userID, productID string) (*models.Review, error) {
	return s.repo.FindExisting(userID, productID)
}

// Rating computes a product's aggregate rating. A product without reviews
// yields {"0", 0}, not an error.
func (s *ReviewService) Rating(productID string) (*RatingSummary, error) {
	agg, err := s.repo.Aggregate(productID)
	if err != nil {
		return nil, err
	}
	if agg.Count == 0 {
		return &RatingSummary{Rating: "0", Count: 0}, nil
	}
	return &RatingSummary{
		Rating: fmt.Sprintf("%.1f", agg.Average),
		Count:  int(agg.Count),
	}, nil
}
