package handlers

import (
	"strconv"
	"strings"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the public catalog routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleList)
	productRoutes.Get("/featured", h.HandleListFeatured)
	productRoutes.Get("/:id", h.HandleGetByID)
}

// RegisterAdminRoutes registers the admin catalog routes.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListAdmin)
	productRoutes.Post("/", h.HandleCreate)
	productRoutes.Put("/:id", h.HandleUpdate)
	productRoutes.Post("/:id/image", h.HandleUpdateImage)
	productRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns a page of products matching the search term.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	page, err := h.service.List(services.ListParams{
		Search:  c.Query("search"),
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", 12),
	})
	if err != nil {
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(page)
}

// HandleListFeatured returns all featured products.
func (h *ProductHandler) HandleListFeatured(c *fiber.Ctx) error {
	products, err := h.service.ListFeatured(c.Context())
	if err != nil {
		return respondError(c, err, "Could not retrieve featured products")
	}
	return c.JSON(products)
}

// HandleGetByID returns a single product.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	product, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

// HandleListAdmin returns all products for the back office.
func (h *ProductHandler) HandleListAdmin(c *fiber.Ctx) error {
	products, err := h.service.ListAdmin()
	if err != nil {
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(products)
}

// HandleCreate creates a product from a multipart form with an image file.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	in := productInputFromForm(c)

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product image is required",
		})
	}
	image, err := file.Open()
	if err != nil {
		return respondError(c, err, "Could not read product image")
	}
	defer image.Close()

	product, err := h.service.Create(c.Context(), in, file.Filename, image)
	if err != nil {
		return respondError(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdate updates a product's fields. The image is updated separately.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "Could not update product")
	}
	return c.JSON(product)
}

// HandleUpdateImage replaces a product's image.
func (h *ProductHandler) HandleUpdateImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product image is required",
		})
	}
	image, err := file.Open()
	if err != nil {
		return respondError(c, err, "Could not read product image")
	}
	defer image.Close()

	product, err := h.service.UpdateImage(c.Context(), c.Params("id"), file.Filename, image)
	if err != nil {
		return respondError(c, err, "Could not update product image")
	}
	return c.JSON(product)
}

// HandleDelete removes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{
		"message": "Product removed",
	})
}

// productInputFromForm reads product fields from a multipart form. Colors and
// sizes arrive as comma-separated lists.
func productInputFromForm(c *fiber.Ctx) services.ProductInput {
	price, _ := strconv.Atoi(c.FormValue("price"))
	qty, _ := strconv.Atoi(c.FormValue("qty"))

	var categoryID *string
	if v := c.FormValue("category_id"); v != "" {
		categoryID = &v
	}

	return services.ProductInput{
		Name:        c.FormValue("name"),
		Company:     c.FormValue("company"),
		Description: c.FormValue("description"),
		Price:       price,
		Qty:         qty,
		Colors:      splitCommaList(c.FormValue("colors")),
		Sizes:       splitCommaList(c.FormValue("sizes")),
		CategoryID:  categoryID,
		Featured:    c.FormValue("featured") == "true",
	}
}

func splitCommaList(s string) []string {
	parts := []string{}
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
