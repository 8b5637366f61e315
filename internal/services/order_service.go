package services

import (
	"encoding/json"
	"fmt"
	"log"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// EventPublisher publishes checkout events to the message broker. Publishing
// is best-effort; order flows never fail on a broker error.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// shippingOptions maps the four delivery zones to their fixed cost in minor
// currency units.
var shippingOptions = map[string]int{
	"west":  3000,
	"east":  6000,
	"north": 7000,
	"south": 5000,
}

// ShippingInput carries the checkout shipping decision and address.
type ShippingInput struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	State          string `json:"state" validate:"required"`
	Address        string `json:"address" validate:"required"`
	DeliveryType   string `json:"delivery_type" validate:"required,oneof=ship instore"`
	ShippingMethod string `json:"shipping_method" validate:"required_if=DeliveryType ship,omitempty,oneof=west east north south"`
}

// CheckoutResult identifies the freshly drafted order and the cart it was
// snapshotted from.
type CheckoutResult struct {
	OrderID string `json:"order_id"`
	CartID  string `json:"cart_id"`
}

// OrderService handles drafting orders from carts and the checkout steps that
// follow.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	carts     *CartService
	publisher EventPublisher
	validate  *validator.Validate
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, carts *CartService, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		carts:     carts,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// CreateFromCart snapshots the user's cart into a new draft order. Any
// existing unpaid order of the user is deleted first, so at most one draft
// exists per user. The cart itself keeps its items; it is cleared only when
// the order is marked paid.
func (s *OrderService) CreateFromCart(userID string) (*CheckoutResult, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetOrCreate(userID, true)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.DeleteUnpaidByUser(userID); err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:     userID,
		Products:   cart.NumItems,
		Subtotal:   cart.CartTotal,
		OrderTotal: cart.OrderTotal,
		Tax:        cart.Tax,
		Shipping:   cart.Shipping,
		Email:      user.Email,
		Items:      make([]models.OrderItem, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Amount,
			Color:     item.Color,
			Size:      item.Size,
		})
	}

	if err := s.orderRepo.CreateWithItems(order); err != nil {
		return nil, err
	}

	s.publishEvent("order.created", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  userID,
		"products": order.Products,
		"total":    order.OrderTotal,
	})

	return &CheckoutResult{OrderID: order.ID, CartID: cart.ID}, nil
}

// ApplyShipping applies the chosen delivery option to a draft order. The
// order total is recomputed from the stored subtotal, so re-applying a
// shipping choice replaces the previous cost instead of compounding it.
func (s *OrderService) ApplyShipping(orderID string, in ShippingInput) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("invalid shipping data: %w", err)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}

	shipping := 0
	if in.DeliveryType == models.DeliveryShip {
		shipping = shippingOptions[in.ShippingMethod]
	}

	order.Shipping = shipping
	order.OrderTotal = order.Subtotal + order.Tax + shipping
	order.DeliveryType = in.DeliveryType
	order.ShippingMethod = in.ShippingMethod
	order.ShippingDetails = models.ShippingAddress{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		State:     in.State,
		Address:   in.Address,
	}

	return s.orderRepo.UpdateShipping(order)
}

// MarkPaid flags an order as paid and clears the owner's cart, closing out
// the checkout.
func (s *OrderService) MarkPaid(orderID string) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if err := s.orderRepo.MarkPaid(orderID); err != nil {
		return err
	}
	if err := s.carts.Clear(order.UserID); err != nil {
		return err
	}

	s.publishEvent("order.paid", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.OrderTotal,
	})
	return nil
}

// ListForUser retrieves the user's orders, newest first.
func (s *OrderService) ListForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// ListAll retrieves every order for the admin back office, newest first.
func (s *OrderService) ListAll() ([]models.Order, error) {
	return s.orderRepo.ListAll()
}

// GetWithItems retrieves an order with its items and their products.
func (s *OrderService) GetWithItems(orderID string) (*models.Order, error) {
	return s.orderRepo.GetWithItems(orderID)
}

// GetByID retrieves an order without its items, for ownership checks.
func (s *OrderService) GetByID(orderID string) (*models.Order, error) {
	return s.orderRepo.GetByID(orderID)
}

func (s *OrderService) publishEvent(event string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	if err := s.publisher.Publish(event, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
