package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// FavoriteHandler handles HTTP requests for product favorites.
type FavoriteHandler struct {
	service *services.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(service *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
	}
}

// RegisterRoutes registers the favorite routes; all require authentication.
func (h *FavoriteHandler) RegisterRoutes(router fiber.Router) {
	favoriteRoutes := router.Group("/favorites")
	favoriteRoutes.Get("/", h.HandleList)
	favoriteRoutes.Get("/find/:productId", h.HandleFind)
	favoriteRoutes.Post("/toggle", h.HandleToggle)
}

// HandleList returns the current user's favorites with their products.
func (h *FavoriteHandler) HandleList(c *fiber.Ctx) error {
	favorites, err := h.service.ListForUser(currentUserID(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve favorites")
	}
	return c.JSON(favorites)
}

// HandleFind returns the favorite ID for a product, or null when the product
// is not favorited.
func (h *FavoriteHandler) HandleFind(c *fiber.Ctx) error {
	id, err := h.service.FindID(currentUserID(c), c.Params("productId"))
	if err != nil {
		return respondError(c, err, "Could not look up favorite")
	}
	if id == "" {
		return c.JSON(fiber.Map{"favorite_id": nil})
	}
	return c.JSON(fiber.Map{"favorite_id": id})
}

// HandleToggle flips the favorite state of a product for the current user.
func (h *FavoriteHandler) HandleToggle(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"product_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id is required",
		})
	}

	added, err := h.service.Toggle(currentUserID(c), body.ProductID)
	if err != nil {
		return respondError(c, err, "Could not toggle favorite")
	}

	message := "Removed from favorites"
	if added {
		message = "Added to favorites"
	}
	return c.JSON(fiber.Map{
		"message":   message,
		"favorited": added,
	})
}
