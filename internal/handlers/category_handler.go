package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service: service,
	}
}

// RegisterRoutes registers the public category routes.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleList)
	categoryRoutes.Get("/:id/products", h.HandleGetWithProducts)
}

// RegisterAdminRoutes registers the admin category routes.
func (h *CategoryHandler) RegisterAdminRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/:id", h.HandleGetByID)
	categoryRoutes.Post("/", h.HandleCreate)
	categoryRoutes.Put("/:id", h.HandleUpdate)
	categoryRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns all categories.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.service.List()
	if err != nil {
		return respondError(c, err, "Could not retrieve categories")
	}
	return c.JSON(categories)
}

// HandleGetWithProducts returns a category and its products.
func (h *CategoryHandler) HandleGetWithProducts(c *fiber.Ctx) error {
	category, err := h.service.GetWithProducts(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve category")
	}
	return c.JSON(category)
}

// HandleGetByID returns a single category for the back office.
func (h *CategoryHandler) HandleGetByID(c *fiber.Ctx) error {
	category, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve category")
	}
	return c.JSON(category)
}

// HandleCreate creates a new category.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	category, err := h.service.Create(in)
	if err != nil {
		return respondError(c, err, "Could not create category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdate renames a category.
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	category, err := h.service.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "Could not update category")
	}
	return c.JSON(category)
}

// HandleDelete removes a category, detaching its products.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete category")
	}
	return c.JSON(fiber.Map{
		"message": "Category removed",
	})
}
