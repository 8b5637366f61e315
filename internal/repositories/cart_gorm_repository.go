package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUser retrieves the user's cart with items and products eagerly loaded.
func (r *GORMCartRepository) GetByUser(userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC")
		}).
		Preload("Items.Product").
		First(&cart, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// Create creates a new cart.
func (r *GORMCartRepository) Create(cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if err := r.db.Create(cart).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// FindItem returns the cart item for (cartID, productID), if any.
func (r *GORMCartRepository) FindItem(cartID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}
	return &item, nil
}

// CreateItem creates a new cart item.
func (r *GORMCartRepository) CreateItem(item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// SaveItem persists all fields of an existing cart item. Save would insert
// when the row is missing, so update explicitly by id and check the affected
// count.
func (r *GORMCartRepository) SaveItem(item *models.CartItem) error {
	res := r.db.Model(&models.CartItem{}).
		Where("id = ?", item.ID).
		Select("*").
		Omit("id", "created_at", "Product").
		Updates(item)
	if res.Error != nil {
		return fmt.Errorf("failed to save cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s: %w", item.ID, ErrNotFound)
	}
	return nil
}

// UpdateItemFields applies a partial update to a cart item scoped to its cart.
func (r *GORMCartRepository) UpdateItemFields(cartID, itemID string, fields map[string]interface{}) error {
	res := r.db.Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
	}
	return nil
}

// DeleteItem removes a cart item scoped to its cart.
func (r *GORMCartRepository) DeleteItem(cartID, itemID string) error {
	res := r.db.Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
	}
	return nil
}

// ItemsWithProducts retrieves a cart's items joined with their products,
// ordered by creation time ascending.
func (r *GORMCartRepository) ItemsWithProducts(cartID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("Product").
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load items for cart %s: %w", cartID, err)
	}
	return items, nil
}

// SaveTotals writes the derived aggregate fields of a cart. Shipping is
// deliberately excluded; it is owned by the checkout shipping step.
func (r *GORMCartRepository) SaveTotals(cart *models.Cart) error {
	err := r.db.Model(&models.Cart{}).
		Where("id = ?", cart.ID).
		Updates(map[string]interface{}{
			"num_items":   cart.NumItems,
			"cart_total":  cart.CartTotal,
			"tax":         cart.Tax,
			"order_total": cart.OrderTotal,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to save cart totals: %w", err)
	}
	return nil
}

// ClearItems removes every item from a cart.
func (r *GORMCartRepository) ClearItems(cartID string) error {
	err := r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear items for cart %s: %w", cartID, err)
	}
	return nil
}
