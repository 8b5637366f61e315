package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// AddItemInput carries the submitted fields of an add-to-cart.
type AddItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Amount    int    `json:"amount" validate:"required,gte=1"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// UpdateItemInput is a partial cart item update; only non-nil fields are
// applied.
type UpdateItemInput struct {
	Amount *int    `json:"amount" validate:"omitempty,gte=1"`
	Color  *string `json:"color"`
	Size   *string `json:"size"`
}

// CartService owns the cart state machine: every item mutation is followed by
// a recompute of the cart's derived totals, and that recompute is the single
// source of truth for them.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	validate    *validator.Validate
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		validate:    validator.New(),
	}
}

// GetOrCreate returns the user's cart with items and products loaded. When no
// cart exists it creates an empty one, unless failIfMissing is set, in which
// case the missing cart is an error.
func (s *CartService) GetOrCreate(userID string, failIfMissing bool) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) || failIfMissing {
		return nil, err
	}

	cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem adds a product to the user's cart. Adding a product already in the
// cart increments its amount; color and size take the just-submitted values.
func (s *CartService) AddItem(userID string, in AddItemInput) (*models.Cart, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid cart item data: %w", err)
	}
	if _, err := s.productRepo.GetByID(in.ProductID); err != nil {
		return nil, err
	}

	cart, err := s.GetOrCreate(userID, false)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.FindItem(cart.ID, in.ProductID)
	switch {
	case err == nil:
		item.Amount += in.Amount
		item.Color = in.Color
		item.Size = in.Size
		if err := s.cartRepo.SaveItem(item); err != nil {
			return nil, err
		}
	case errors.Is(err, repositories.ErrNotFound):
		err := s.cartRepo.CreateItem(&models.CartItem{
			CartID:    cart.ID,
			ProductID: in.ProductID,
			Amount:    in.Amount,
			Color:     in.Color,
			Size:      in.Size,
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.recalculate(cart)
}

// UpdateItem applies a partial update to a cart item owned by the user's cart.
func (s *CartService) UpdateItem(userID, itemID string, in UpdateItemInput) (*models.Cart, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid cart item data: %w", err)
	}

	cart, err := s.GetOrCreate(userID, true)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if in.Amount != nil {
		fields["amount"] = *in.Amount
	}
	if in.Color != nil {
		fields["color"] = *in.Color
	}
	if in.Size != nil {
		fields["size"] = *in.Size
	}
	if len(fields) > 0 {
		if err := s.cartRepo.UpdateItemFields(cart.ID, itemID, fields); err != nil {
			return nil, err
		}
	}

	return s.recalculate(cart)
}

// RemoveItem deletes a cart item. The delete predicate is scoped to the
// user's cart, so a foreign item ID cannot remove another cart's item.
func (s *CartService) RemoveItem(userID, itemID string) (*models.Cart, error) {
	cart, err := s.GetOrCreate(userID, true)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.DeleteItem(cart.ID, itemID); err != nil {
		return nil, err
	}
	return s.recalculate(cart)
}

// ItemCount returns the cart's item count. A user without a cart has zero
// items.
func (s *CartService) ItemCount(userID string) (int, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return cart.NumItems, nil
}

// Clear removes every item from the user's cart and recomputes its totals.
// A user without a cart is a no-op.
func (s *CartService) Clear(userID string) error {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.cartRepo.ClearItems(cart.ID); err != nil {
		return err
	}
	_, err = s.recalculate(cart)
	return err
}

// recalculate reloads the cart's items and folds them into the derived
// aggregate fields. Shipping is left untouched; it belongs to the checkout
// shipping step.
func (s *CartService) recalculate(cart *models.Cart) (*models.Cart, error) {
	items, err := s.cartRepo.ItemsWithProducts(cart.ID)
	if err != nil {
		return nil, err
	}

	numItems := 0
	cartTotal := 0
	for _, item := range items {
		numItems += item.Amount
		cartTotal += item.Amount * item.Product.Price
	}
	tax := 0 // reserved for future tax-rate support

	cart.NumItems = numItems
	cart.CartTotal = cartTotal
	cart.Tax = tax
	cart.OrderTotal = cartTotal + tax + cart.Shipping

	if err := s.cartRepo.SaveTotals(cart); err != nil {
		return nil, err
	}
	cart.Items = items
	return cart, nil
}
