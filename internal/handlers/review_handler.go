package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service *services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service: service,
	}
}

// RegisterPublicRoutes registers the read-only review routes under products.
func (h *ReviewHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/products/:id/reviews", h.HandleListForProduct)
	router.Get("/products/:id/rating", h.HandleRating)
}

// RegisterRoutes registers the authenticated review routes.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Get("/", h.HandleListForUser)
	reviewRoutes.Post("/", h.HandleCreate)
	reviewRoutes.Delete("/:id", h.HandleDelete)
}

// HandleListForProduct returns a product's reviews, newest first.
func (h *ReviewHandler) HandleListForProduct(c *fiber.Ctx) error {
	reviews, err := h.service.ListForProduct(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve reviews")
	}
	return c.JSON(reviews)
}

// HandleRating returns a product's aggregate rating.
func (h *ReviewHandler) HandleRating(c *fiber.Ctx) error {
	summary, err := h.service.Rating(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not compute rating")
	}
	return c.JSON(summary)
}

// HandleListForUser returns the current user's reviews.
func (h *ReviewHandler) HandleListForUser(c *fiber.Ctx) error {
	reviews, err := h.service.ListForUser(currentUserID(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve reviews")
	}
	return c.JSON(reviews)
}

// HandleCreate submits a review for the current user.
func (h *ReviewHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.ReviewInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	review, err := h.service.Create(c.Context(), currentUserID(c), in)
	if err != nil {
		return respondError(c, err, "Could not submit review")
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleDelete removes a review owned by the current user.
func (h *ReviewHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(currentUserID(c), c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete review")
	}
	return c.JSON(fiber.Map{
		"message": "Review deleted successfully",
	})
}
