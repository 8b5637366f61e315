package services_test

import (
	"fmt"
	"strings"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an isolated in-memory SQLite database for one test and
// migrates the full schema into it.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Favorite{},
		&models.Review{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Slider{},
	)
	require.NoError(t, err)
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:    name,
		Company: "acme",
		Price:   price,
		Colors:  models.StringList{"red"},
		Sizes:   models.StringList{"m"},
		Qty:     100,
	}
	require.NoError(t, repositories.NewGORMProductRepository(db).Create(product))
	return product
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, repositories.NewGORMUserRepository(db).Create(user))
	return user
}

func newCartService(db *gorm.DB) *services.CartService {
	return services.NewCartService(
		repositories.NewGORMCartRepository(db),
		repositories.NewGORMProductRepository(db),
	)
}

func TestCartService_AddItem_Totals(t *testing.T) {
	db := newTestDB(t)
	service := newCartService(db)
	user := seedUser(t, db, "alice")
	shirt := seedProduct(t, db, "shirt", 2500)
	mug := seedProduct(t, db, "mug", 1200)

	cart, err := service.AddItem(user.ID, services.AddItemInput{ProductID: shirt.ID, Amount: 2})
	assert.NoError(t, err)
	assert.Equal(t, 2, cart.NumItems)
	assert.Equal(t, 5000, cart.CartTotal)

	cart, err = service.AddItem(user.ID, services.AddItemInput{ProductID: mug.ID, Amount: 3})
	assert.NoError(t, err)

	// Totals are folded from the items, and the order total includes tax and
	// shipping (both still zero here).
	assert.Equal(t, 5, cart.NumItems)
	assert.Equal(t, 2*2500+3*1200, cart.CartTotal)
	assert.Equal(t, 0, cart.Tax)
	assert.Equal(t, cart.CartTotal+cart.Tax+cart.Shipping, cart.OrderTotal)
	assert.Len(t, cart.Items, 2)
}

func TestCartService_AddItem_MergesExistingLine(t *testing.T) {
	db := newTestDB(t)
	service := newCartService(db)
	user := seedUser(t, db, "alice")
	shirt := seedProduct(t, db, "shirt", 2500)

	cart, err := service.AddItem(user.ID, services.AddItemInput{ProductID: shirt.ID, Amount: 1, Color: "red", Size: "m"})
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	// Adding the same product again increments the line instead of adding a
	// second one; color and size take the latest submitted values.
	cart, err = service.AddItem(user.ID, services.AddItemInput{ProductID: shirt.ID, Amount: 2, Color: "blue", Size: "l"})
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Amount)
	assert.Equal(t, "blue", cart.Items[0].Color)
	assert.Equal(t, "l", cart.Items[0].Size)
	assert.Equal(t, 3, cart.NumItems)
	assert.Equal(t, 7500, cart.CartTotal)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	db := newTestDB(t)
	service := newCartService(db)
	user := seedUser(t, db, "alice")

	_, err := service.AddItem(user.ID, services.AddItemInput{ProductID: "missing", Amount: 1})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCartService_AddItem_InvalidAmount(t *testing.T) {
	db := newTestDB(t)
	service := newCartService(db)
	user := seedUser(t, db, "alice")
	shirt := seedProduct(t, db, "shirt", 2500)

	_, err := service.AddItem(user.ID, services.AddItemInput{ProductID: shirt.ID, Amount: 0})
	assert.Error(t, err)
}

func TestCartService_UpdateItem_Partial(t *testing.T) {
	db := newTestDB(t)
	service := newCartService(db)
	user := seedUser(t, db, "alice")
	shirt := seedProduct(t, db, "shirt", 2500)

	cart, err := service.AddItem(user.ID, services.AddItemInput{ProductID: shirt.ID, Amount: 1, Color: "red", Size: "m"})
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	// Only the amount changes; color and size stay put.
	amount := 4
	cart, err = service.UpdateItem(user.ID, itemID, services.UpdateItemInput{Amount: &amount})
	assert.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Amount)
	assert.Equal(t, "red", cart.Items[0].Color)
	assert.Equal(t, "m", cart.Items[0].Size)
	assert.Equal(t, 4, cart.NumItems)
	assert.Equal(t, 10000, cart.CartTotal)

	color := "green"
	cart, err = service.UpdateItem(user.ID, itemID, services.UpdateItemInput{Color: &color})
	assert.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Amount)
	assert.Equal(t, "green", cart.Items[0].Color)
}

func TestCartService_UpdateItem_ForeignItemScoped(t *testing.T) {
	db := newTestDB(t)
	service := newCartService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	shirt := seedProduct(t, db, "shirt", 2500)

	aliceCart, err := service.AddItem(alice.ID, services.AddItemInput{ProductID: shirt.ID, Amount: 1})
	require.NoError(t, err)
	_, err = service.AddItem(bob.ID, services.AddItemInput{ProductID: shirt.ID, Amount: 1})
	require.NoError(t, err)

	// Bob cannot touch an item in Alice's cart.
	amount := 99
	_, err = service.UpdateItem(bob.ID, aliceCart.Items[0].ID, services.UpdateItemInput{Amount: &amount})
	assert.ErrorIs(t, err, services.ErrNotFound)

	aliceCart, err = service.GetOrCreate(alice.ID, true)
	assert.NoError(t, err)
	assert.Equal(t, 1, aliceCart.Items[0].Amount)
}

func TestCartService_RemoveItem(t *testing.T) {
	db := newTestDB(t)
	service := newCartService(db)
	user := seedUser(t, db, "alice")
	shirt := seedProduct(t, db, "shirt", 2500)
	mug := seedProduct(t, db, "mug", 1200)

	_, err := service.AddItem(user.ID, services.AddItemInput{ProductID: shirt.ID, Amount: 2})
	require.NoError(t, err)
	cart, err := service.AddItem(user.ID, services.AddItemInput{ProductID: mug.ID, Amount: 1})
	require.NoError(t, err)

	var shirtItemID string
	for _, item := range cart.Items {
		if item.ProductID == shirt.ID {
			shirtItemID = item.ID
		}
	}

	cart, err = service.RemoveItem(user.ID, shirtItemID)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, mug.ID, cart.Items[0].ProductID)
	assert.Equal(t, 1, cart.NumItems)
	assert.Equal(t, 1200, cart.CartTotal)

	_, err = service.RemoveItem(user.ID, "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCartService_ItemCount(t *testing.T) {
	db := newTestDB(t)
	service := newCartService(db)
	user := seedUser(t, db, "alice")
	shirt := seedProduct(t, db, "shirt", 2500)

	// A user without a cart has zero items, not an error.
	count, err := service.ItemCount(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = service.AddItem(user.ID, services.AddItemInput{ProductID: shirt.ID, Amount: 3})
	require.NoError(t, err)

	count, err = service.ItemCount(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCartService_Clear(t *testing.T) {
	db := newTestDB(t)
	service := newCartService(db)
	user := seedUser(t, db, "alice")
	shirt := seedProduct(t, db, "shirt", 2500)

	_, err := service.AddItem(user.ID, services.AddItemInput{ProductID: shirt.ID, Amount: 2})
	require.NoError(t, err)

	assert.NoError(t, service.Clear(user.ID))

	cart, err := service.GetOrCreate(user.ID, true)
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.NumItems)
	assert.Equal(t, 0, cart.CartTotal)
	assert.Equal(t, 0, cart.OrderTotal)

	// Clearing a user without a cart is a no-op.
	assert.NoError(t, service.Clear("no-such-user"))
}

func TestCartService_GetOrCreate(t *testing.T) {
	db := newTestDB(t)
	service := newCartService(db)
	user := seedUser(t, db, "alice")

	_, err := service.GetOrCreate(user.ID, true)
	assert.ErrorIs(t, err, services.ErrNotFound)

	cart, err := service.GetOrCreate(user.ID, false)
	assert.NoError(t, err)
	assert.NotEmpty(t, cart.ID)
	assert.Empty(t, cart.Items)

	again, err := service.GetOrCreate(user.ID, false)
	assert.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}
