package services

import (
	"context"
	"fmt"
	"io"
	"log"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/storage"

	"github.com/go-playground/validator/v10"
)

// SliderInput carries the submitted fields of a slider.
type SliderInput struct {
	Title string `json:"title" validate:"required,min=2,max=200"`
}

// SliderService handles the admin-managed carousel entries.
type SliderService struct {
	repo     repositories.SliderRepository
	images   storage.ImageStore
	validate *validator.Validate
}

// NewSliderService creates a new SliderService.
func NewSliderService(repo repositories.SliderRepository, images storage.ImageStore) *SliderService {
	return &SliderService{
		repo:     repo,
		images:   images,
		validate: validator.New(),
	}
}

// List retrieves all sliders, newest first.
func (s *SliderService) List() ([]models.Slider, error) {
	return s.repo.List()
}

// GetByID retrieves a single slider.
func (s *SliderService) GetByID(id string) (*models.Slider, error) {
	return s.repo.GetByID(id)
}

// Create validates the title, uploads the image, and persists the slider.
func (s *SliderService) Create(ctx context.Context, in SliderInput, filename string, image io.Reader) (*models.Slider, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid slider data: %w", err)
	}
	if image == nil {
		return nil, ErrImageRequired
	}

	imageURL, err := s.images.Upload(ctx, filename, image)
	if err != nil {
		return nil, fmt.Errorf("failed to upload slider image: %w", err)
	}

	slider := &models.Slider{Title: in.Title, ImageURL: imageURL}
	if err := s.repo.Create(slider); err != nil {
		return nil, err
	}
	return slider, nil
}

// Update validates and persists a slider retitle.
func (s *SliderService) Update(id string, in SliderInput) (*models.Slider, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid slider data: %w", err)
	}
	slider, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	slider.Title = in.Title
	if err := s.repo.Update(slider); err != nil {
		return nil, err
	}
	return slider, nil
}

// Delete removes the slider row first, then its stored image best-effort.
func (s *SliderService) Delete(ctx context.Context, id string) error {
	slider, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	if slider.ImageURL != "" {
		if err := s.images.Delete(ctx, slider.ImageURL); err != nil {
			log.Printf("Failed to delete image for slider %s: %v", id, err)
		}
	}
	return nil
}
