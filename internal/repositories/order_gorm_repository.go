package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// CreateWithItems creates an order together with its items in one transaction.
func (r *GORMOrderRepository) CreateWithItems(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// DeleteUnpaidByUser removes every unpaid order of a user together with its
// items. The items are deleted explicitly because sqlite does not enforce the
// cascade constraint unless foreign keys are switched on. Deleting zero rows
// is not an error; it just means there was no draft to replace.
func (r *GORMOrderRepository) DeleteUnpaidByUser(userID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		unpaid := tx.Model(&models.Order{}).
			Select("id").
			Where("user_id = ? AND is_paid = ?", userID, false)
		if err := tx.Where("order_id IN (?)", unpaid).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete unpaid order items for user %s: %w", userID, err)
		}
		err := tx.Where("user_id = ? AND is_paid = ?", userID, false).
			Delete(&models.Order{}).Error
		if err != nil {
			return fmt.Errorf("failed to delete unpaid orders for user %s: %w", userID, err)
		}
		return nil
	})
	return err
}

// GetByID retrieves a single order by its ID.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return &order, nil
}

// GetWithItems retrieves an order with its items and their products.
func (r *GORMOrderRepository) GetWithItems(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items.Product").Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %s with items: %w", id, err)
	}
	return &order, nil
}

// ListByUser retrieves all orders of a user, newest first.
func (r *GORMOrderRepository) ListByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// ListAll retrieves every order, newest first.
func (r *GORMOrderRepository) ListAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateShipping persists the shipping fields and recomputed total of an order.
func (r *GORMOrderRepository) UpdateShipping(order *models.Order) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"shipping":         order.Shipping,
			"order_total":      order.OrderTotal,
			"delivery_type":    order.DeliveryType,
			"shipping_method":  order.ShippingMethod,
			"shipping_details": order.ShippingDetails,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update order shipping: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s: %w", order.ID, ErrNotFound)
	}
	return nil
}

// MarkPaid flags an order as paid.
func (r *GORMOrderRepository) MarkPaid(id string) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Update("is_paid", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark order paid: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return nil
}
