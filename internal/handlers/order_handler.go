package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for checkout and order history.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the authenticated order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListForUser)
	orderRoutes.Post("/", h.HandleCreate)
	orderRoutes.Get("/:id", h.HandleGetWithItems)
	orderRoutes.Post("/:id/shipping", h.HandleApplyShipping)
}

// RegisterAdminRoutes registers the admin order routes.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListAll)
	orderRoutes.Post("/:id/paid", h.HandleMarkPaid)
}

// HandleCreate drafts an order from the current user's cart.
func (h *OrderHandler) HandleCreate(c *fiber.Ctx) error {
	result, err := h.service.CreateFromCart(currentUserID(c))
	if err != nil {
		return respondError(c, err, "Could not create order")
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// HandleListForUser returns the current user's orders, newest first.
func (h *OrderHandler) HandleListForUser(c *fiber.Ctx) error {
	orders, err := h.service.ListForUser(currentUserID(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetWithItems returns an order with its items and products. Customers
// can only read their own orders; admins can read any.
func (h *OrderHandler) HandleGetWithItems(c *fiber.Ctx) error {
	order, err := h.service.GetWithItems(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve order")
	}
	if order.UserID != currentUserID(c) && !isAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Not your order",
		})
	}
	return c.JSON(order)
}

// HandleApplyShipping applies a delivery choice and address to a draft order.
// Customers can only ship their own orders; admins can ship any.
func (h *OrderHandler) HandleApplyShipping(c *fiber.Ctx) error {
	var in services.ShippingInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve order")
	}
	if order.UserID != currentUserID(c) && !isAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Not your order",
		})
	}

	if err := h.service.ApplyShipping(c.Params("id"), in); err != nil {
		return respondError(c, err, "Could not apply shipping")
	}
	return c.JSON(fiber.Map{
		"message": "Shipping applied",
	})
}

// HandleListAll returns every order for the admin back office.
func (h *OrderHandler) HandleListAll(c *fiber.Ctx) error {
	orders, err := h.service.ListAll()
	if err != nil {
		return respondError(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleMarkPaid flags an order as paid and clears the owner's cart.
func (h *OrderHandler) HandleMarkPaid(c *fiber.Ctx) error {
	if err := h.service.MarkPaid(c.Params("id")); err != nil {
		return respondError(c, err, "Could not mark order paid")
	}
	return c.JSON(fiber.Map{
		"message": "Order marked as paid",
	})
}
