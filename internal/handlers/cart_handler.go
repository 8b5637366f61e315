package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the current user's cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes; all require authentication.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGet)
	cartRoutes.Get("/count", h.HandleItemCount)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateItem)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
}

// HandleGet returns the current user's cart, creating an empty one on first
// access.
func (h *CartHandler) HandleGet(c *fiber.Ctx) error {
	cart, err := h.service.GetOrCreate(currentUserID(c), false)
	if err != nil {
		return respondError(c, err, "Could not retrieve cart")
	}
	return c.JSON(cart)
}

// HandleItemCount returns the cart's item count for the navbar badge.
func (h *CartHandler) HandleItemCount(c *fiber.Ctx) error {
	count, err := h.service.ItemCount(currentUserID(c))
	if err != nil {
		return respondError(c, err, "Could not count cart items")
	}
	return c.JSON(fiber.Map{"num_items": count})
}

// HandleAddItem adds a product to the cart and returns the recomputed cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var in services.AddItemInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cart, err := h.service.AddItem(currentUserID(c), in)
	if err != nil {
		return respondError(c, err, "Could not add item to cart")
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

// HandleUpdateItem applies a partial update to a cart item and returns the
// recomputed cart.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var in services.UpdateItemInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cart, err := h.service.UpdateItem(currentUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "Could not update cart item")
	}
	return c.JSON(cart)
}

// HandleRemoveItem removes a cart item and returns the recomputed cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	cart, err := h.service.RemoveItem(currentUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not remove cart item")
	}
	return c.JSON(cart)
}
