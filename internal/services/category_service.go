package services

import (
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// CategoryInput carries the submitted fields of a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo     repositories.CategoryRepository
	validate *validator.Validate
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{
		repo:     repo,
		validate: validator.New(),
	}
}

// List retrieves all categories, newest first.
func (s *CategoryService) List() ([]models.Category, error) {
	return s.repo.List()
}

// GetByID retrieves a single category.
func (s *CategoryService) GetByID(id string) (*models.Category, error) {
	return s.repo.GetByID(id)
}

// GetWithProducts retrieves a category with its products for public browsing.
func (s *CategoryService) GetWithProducts(id string) (*models.Category, error) {
	return s.repo.GetWithProducts(id)
}

// Create validates and persists a new category.
func (s *CategoryService) Create(in CategoryInput) (*models.Category, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid category data: %w", err)
	}
	category := &models.Category{Name: in.Name}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update validates and persists a category rename.
func (s *CategoryService) Update(id string, in CategoryInput) (*models.Category, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid category data: %w", err)
	}
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	category.Name = in.Name
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category; products that referenced it are detached, not
// deleted.
func (s *CategoryService) Delete(id string) error {
	return s.repo.Delete(id)
}
