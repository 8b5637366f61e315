package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/cache"
	"storefront/pkg/storage"

	"github.com/go-playground/validator/v10"
)

const (
	defaultPage    = 1
	defaultPerPage = 12

	cacheKeyFeatured = "products:featured"
)

func cacheKeyProduct(id string) string {
	return "product:" + id
}

// ProductInput carries the submitted fields of a product create or update.
type ProductInput struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Company     string   `json:"company" validate:"required,min=2,max=100"`
	Description string   `json:"description" validate:"omitempty,max=1000"`
	Price       int      `json:"price" validate:"required,gt=0"`
	Qty         int      `json:"qty" validate:"gte=0"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
	CategoryID  *string  `json:"category_id"`
	Featured    bool     `json:"featured"`
}

// ListParams selects a page of the catalog listing.
type ListParams struct {
	Search  string
	Page    int
	PerPage int
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Products   []models.Product `json:"products"`
	TotalCount int64            `json:"total_count"`
	TotalPages int              `json:"total_pages"`
}

// ProductService handles business logic related to the catalog.
type ProductService struct {
	repo     repositories.ProductRepository
	images   storage.ImageStore
	cache    cache.Cache
	validate *validator.Validate
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, images storage.ImageStore, c cache.Cache) *ProductService {
	return &ProductService{
		repo:     repo,
		images:   images,
		cache:    c,
		validate: validator.New(),
	}
}

// ListFeatured retrieves all featured products, cache-aside.
func (s *ProductService) ListFeatured(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if hit, err := s.cache.Get(ctx, cacheKeyFeatured, &products); err == nil && hit {
		return products, nil
	}

	products, err := s.repo.ListFeatured()
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKeyFeatured, products); err != nil {
		log.Printf("Failed to cache featured products: %v", err)
	}
	return products, nil
}

// List retrieves a page of products matching the search term. Page and
// per-page fall back to their defaults when unset.
func (s *ProductService) List(params ListParams) (*ProductPage, error) {
	if params.Page < 1 {
		params.Page = defaultPage
	}
	if params.PerPage < 1 {
		params.PerPage = defaultPerPage
	}
	offset := (params.Page - 1) * params.PerPage

	products, total, err := s.repo.List(params.Search, offset, params.PerPage)
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Products:   products,
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(params.PerPage))),
	}, nil
}

// ListAdmin retrieves every product for the admin back office.
func (s *ProductService) ListAdmin() ([]models.Product, error) {
	return s.repo.ListAll()
}

// GetByID retrieves a single product, cache-aside.
func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if hit, err := s.cache.Get(ctx, cacheKeyProduct(id), &product); err == nil && hit {
		return &product, nil
	}

	found, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKeyProduct(id), found); err != nil {
		log.Printf("Failed to cache product %s: %v", id, err)
	}
	return found, nil
}

// Create validates the submitted fields, uploads the image, and persists the
// product.
func (s *ProductService) Create(ctx context.Context, in ProductInput, filename string, image io.Reader) (*models.Product, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid product data: %w", err)
	}
	if image == nil {
		return nil, ErrImageRequired
	}

	imageURL, err := s.images.Upload(ctx, filename, image)
	if err != nil {
		return nil, fmt.Errorf("failed to upload product image: %w", err)
	}

	product := &models.Product{
		Name:        in.Name,
		Company:     in.Company,
		Description: in.Description,
		Price:       in.Price,
		Image:       imageURL,
		Colors:      models.StringList(in.Colors),
		Sizes:       models.StringList(in.Sizes),
		Qty:         in.Qty,
		CategoryID:  in.CategoryID,
		Featured:    in.Featured,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	s.invalidate(ctx, product.ID)
	return product, nil
}

// Update validates the submitted fields and persists them onto an existing
// product. The stored image is left untouched; UpdateImage handles it.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid product data: %w", err)
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Company = in.Company
	product.Description = in.Description
	product.Price = in.Price
	product.Qty = in.Qty
	product.Colors = models.StringList(in.Colors)
	product.Sizes = models.StringList(in.Sizes)
	product.CategoryID = in.CategoryID
	product.Featured = in.Featured

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return product, nil
}

// UpdateImage uploads a replacement image, points the product at it, and
// removes the previous image best-effort.
func (s *ProductService) UpdateImage(ctx context.Context, id, filename string, image io.Reader) (*models.Product, error) {
	if image == nil {
		return nil, ErrImageRequired
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	oldURL := product.Image

	imageURL, err := s.images.Upload(ctx, filename, image)
	if err != nil {
		return nil, fmt.Errorf("failed to upload product image: %w", err)
	}
	if err := s.repo.UpdateImage(id, imageURL); err != nil {
		return nil, err
	}

	if oldURL != "" {
		if err := s.images.Delete(ctx, oldURL); err != nil {
			log.Printf("Failed to delete old image for product %s: %v", id, err)
		}
	}

	product.Image = imageURL
	s.invalidate(ctx, id)
	return product, nil
}

// Delete removes the product row first, then its stored image. A failed image
// delete is logged, not surfaced; the row delete is what decides success.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	if product.Image != "" {
		if err := s.images.Delete(ctx, product.Image); err != nil {
			log.Printf("Failed to delete image for product %s: %v", id, err)
		}
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, cacheKeyProduct(id), cacheKeyFeatured); err != nil {
		log.Printf("Failed to invalidate product cache: %v", err)
	}
}
