package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/service"
	"github.com/spec-kit/marketplace-service/internal/validation"
)

// CategoriesHandler exposes category endpoints.
type CategoriesHandler struct {
	categories *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categoryService *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{categories: categoryService}
}

// List handles GET /category.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCategoryResponses(categories))
}

// Create handles POST /category.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	payload := validation.PayloadFromContext(c)

	category, err := h.categories.Create(c.Context(), payload.String("name"), payload.String("description"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCategoryResponse(*category)})
}

// Update handles PUT /category/:id.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	payload := validation.PayloadFromContext(c)
	if err := h.categories.Update(c.Context(), id, payload.String("name"), payload.String("description")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusOK)
}

// Delete handles DELETE /category/:id.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.categories.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusOK)
}
