package services

import (
	"errors"

	"storefront/internal/repositories"
)

// ErrNotFound re-exports the repository sentinel so handlers can map missing
// records to 404 with errors.Is.
var ErrNotFound = repositories.ErrNotFound

var (
	// ErrReviewExists reports that the user already reviewed the product.
	ErrReviewExists = errors.New("review already submitted for this product")
	// ErrImageRequired reports a create/update that needs an image file.
	ErrImageRequired = errors.New("image file is required")
	// ErrUserExists reports a registration with a taken username or email.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials reports a failed login without revealing which
	// part of the credentials was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
