package repositories

import (
	"storefront/internal/models"
)

// FavoriteRepository defines the interface for favorite data access.
type FavoriteRepository interface {
	// Toggle creates a favorite for (userID, productID) if none exists, or
	// removes the existing one, as a single atomic read-then-write. It reports
	// whether a favorite was added.
	Toggle(userID, productID string) (bool, error)
	FindID(userID, productID string) (string, error)
	ListByUser(userID string) ([]models.Favorite, error)
}
