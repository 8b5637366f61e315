package services_test

import (
	"testing"

	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFavoriteService(db *gorm.DB) *services.FavoriteService {
	return services.NewFavoriteService(
		repositories.NewGORMFavoriteRepository(db),
		repositories.NewGORMProductRepository(db),
	)
}

func TestFavoriteService_ToggleCycle(t *testing.T) {
	db := newTestDB(t)
	service := newFavoriteService(db)
	user := seedUser(t, db, "alice")
	shirt := seedProduct(t, db, "shirt", 2500)

	// First toggle favorites the product.
	added, err := service.Toggle(user.ID, shirt.ID)
	assert.NoError(t, err)
	assert.True(t, added)

	id, err := service.FindID(user.ID, shirt.ID)
	assert.NoError(t, err)
	assert.NotEmpty(t, id)

	// Second toggle removes it again.
	added, err = service.Toggle(user.ID, shirt.ID)
	assert.NoError(t, err)
	assert.False(t, added)

	id, err = service.FindID(user.ID, shirt.ID)
	assert.NoError(t, err)
	assert.Empty(t, id)

	favorites, err := service.ListForUser(user.ID)
	assert.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestFavoriteService_Toggle_UnknownProduct(t *testing.T) {
	db := newTestDB(t)
	service := newFavoriteService(db)
	user := seedUser(t, db, "alice")

	_, err := service.Toggle(user.ID, "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestFavoriteService_PerUserState(t *testing.T) {
	db := newTestDB(t)
	service := newFavoriteService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	shirt := seedProduct(t, db, "shirt", 2500)

	_, err := service.Toggle(alice.ID, shirt.ID)
	require.NoError(t, err)

	// Alice's favorite is invisible to Bob.
	id, err := service.FindID(bob.ID, shirt.ID)
	assert.NoError(t, err)
	assert.Empty(t, id)

	// Bob toggling does not clear Alice's favorite.
	added, err := service.Toggle(bob.ID, shirt.ID)
	assert.NoError(t, err)
	assert.True(t, added)

	id, err = service.FindID(alice.ID, shirt.ID)
	assert.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestFavoriteService_ListForUser(t *testing.T) {
	db := newTestDB(t)
	service := newFavoriteService(db)
	user := seedUser(t, db, "alice")
	shirt := seedProduct(t, db, "shirt", 2500)
	mug := seedProduct(t, db, "mug", 1200)

	_, err := service.Toggle(user.ID, shirt.ID)
	require.NoError(t, err)
	_, err = service.Toggle(user.ID, mug.ID)
	require.NoError(t, err)

	favorites, err := service.ListForUser(user.ID)
	assert.NoError(t, err)
	assert.Len(t, favorites, 2)
	for _, favorite := range favorites {
		assert.NotEmpty(t, favorite.Product.Name)
	}
}
