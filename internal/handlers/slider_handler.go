package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SliderHandler handles HTTP requests for carousel sliders.
type SliderHandler struct {
	service *services.SliderService
}

// NewSliderHandler creates a new SliderHandler.
func NewSliderHandler(service *services.SliderService) *SliderHandler {
	return &SliderHandler{
		service: service,
	}
}

// RegisterRoutes registers the public slider routes.
func (h *SliderHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/sliders", h.HandleList)
}

// RegisterAdminRoutes registers the admin slider routes.
func (h *SliderHandler) RegisterAdminRoutes(router fiber.Router) {
	sliderRoutes := router.Group("/sliders")
	sliderRoutes.Get("/", h.HandleList)
	sliderRoutes.Get("/:id", h.HandleGetByID)
	sliderRoutes.Post("/", h.HandleCreate)
	sliderRoutes.Put("/:id", h.HandleUpdate)
	sliderRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns all sliders.
func (h *SliderHandler) HandleList(c *fiber.Ctx) error {
	sliders, err := h.service.List()
	if err != nil {
		return respondError(c, err, "Could not retrieve sliders")
	}
	return c.JSON(sliders)
}

// HandleGetByID returns a single slider.
func (h *SliderHandler) HandleGetByID(c *fiber.Ctx) error {
	slider, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve slider")
	}
	return c.JSON(slider)
}

// HandleCreate creates a slider from a multipart form with an image file.
func (h *SliderHandler) HandleCreate(c *fiber.Ctx) error {
	in := services.SliderInput{Title: c.FormValue("title")}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Slider image is required",
		})
	}
	image, err := file.Open()
	if err != nil {
		return respondError(c, err, "Could not read slider image")
	}
	defer image.Close()

	slider, err := h.service.Create(c.Context(), in, file.Filename, image)
	if err != nil {
		return respondError(c, err, "Could not create slider")
	}
	return c.Status(fiber.StatusCreated).JSON(slider)
}

// HandleUpdate retitles a slider.
func (h *SliderHandler) HandleUpdate(c *fiber.Ctx) error {
	var in services.SliderInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	slider, err := h.service.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "Could not update slider")
	}
	return c.JSON(slider)
}

// HandleDelete removes a slider and its stored image.
func (h *SliderHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete slider")
	}
	return c.JSON(fiber.Map{
		"message": "Slider removed",
	})
}
