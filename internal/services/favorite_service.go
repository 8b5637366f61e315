package services

import (
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// FavoriteService handles per-user product bookmarking.
type FavoriteService struct {
	repo        repositories.FavoriteRepository
	productRepo repositories.ProductRepository
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(repo repositories.FavoriteRepository, productRepo repositories.ProductRepository) *FavoriteService {
	return &FavoriteService{
		repo:        repo,
		productRepo: productRepo,
	}
}

// Toggle flips the favorite state for the user and product atomically and
// reports whether the product is now favorited.
func (s *FavoriteService) Toggle(userID, productID string) (bool, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return false, err
	}
	return s.repo.Toggle(userID, productID)
}

// FindID returns the user's favorite ID for a product, or the empty string.
func (s *FavoriteService) FindID(userID, productID string) (string, error) {
	return s.repo.FindID(userID, productID)
}

// ListForUser retrieves all of a user's favorites with their products.
func (s *FavoriteService) ListForUser(userID string) ([]models.Favorite, error) {
	return s.repo.ListByUser(userID)
}
