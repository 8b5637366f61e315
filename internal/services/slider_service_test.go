package services_test

import (
	"context"
	"strings"
	"testing"

	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSliderService(db *gorm.DB) (*services.SliderService, *storage.MemoryStore) {
	images := storage.NewMemoryStore()
	return services.NewSliderService(repositories.NewGORMSliderRepository(db), images), images
}

func TestSliderService_Create(t *testing.T) {
	db := newTestDB(t)
	service, images := newSliderService(db)

	slider, err := service.Create(context.Background(), services.SliderInput{Title: "Summer sale"}, "banner.png", strings.NewReader("png-bytes"))
	assert.NoError(t, err)
	assert.NotEmpty(t, slider.ID)
	assert.True(t, images.Has(slider.ImageURL))

	sliders, err := service.List()
	assert.NoError(t, err)
	assert.Len(t, sliders, 1)

	_, err = service.Create(context.Background(), services.SliderInput{Title: "No image"}, "", nil)
	assert.ErrorIs(t, err, services.ErrImageRequired)
}

func TestSliderService_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	service, images := newSliderService(db)

	slider, err := service.Create(context.Background(), services.SliderInput{Title: "Summer sale"}, "banner.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	updated, err := service.Update(slider.ID, services.SliderInput{Title: "Winter sale"})
	assert.NoError(t, err)
	assert.Equal(t, "Winter sale", updated.Title)
	assert.Equal(t, slider.ImageURL, updated.ImageURL)

	assert.NoError(t, service.Delete(context.Background(), slider.ID))
	assert.False(t, images.Has(slider.ImageURL))

	_, err = service.GetByID(slider.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	assert.ErrorIs(t, service.Delete(context.Background(), "missing"), services.ErrNotFound)
}
