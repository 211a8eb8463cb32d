package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/service"
	"github.com/spec-kit/marketplace-service/internal/validation"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// ItemsHandler exposes item listing endpoints.
type ItemsHandler struct {
	items *service.ItemService
}

// NewItemsHandler constructs handler.
func NewItemsHandler(itemService *service.ItemService) *ItemsHandler {
	return &ItemsHandler{items: itemService}
}

// Create handles POST /item. The created item is owned by the calling
// seller.
func (h *ItemsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgInvalidCredentials)
	}

	payload := validation.PayloadFromContext(c)
	item, err := h.items.Create(c.Context(),
		principal.UserID,
		payload.String("title"),
		payload.String("description"),
		payload.Int64("authorId"),
		payload.Int64("categoryId"),
	)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"id": item.ID}})
}

// Update handles PUT /item/:id.
func (h *ItemsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgInvalidCredentials)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	payload := validation.PayloadFromContext(c)
	var title, description *string
	if v, ok := payload.OptString("title"); ok {
		title = &v
	}
	if v, ok := payload.OptString("description"); ok {
		description = &v
	}

	if err := h.items.Update(c.Context(), principal.UserID, id, title, description); err != nil {
		return err
	}
	return c.SendStatus(http.StatusOK)
}

// List handles GET /item.
func (h *ItemsHandler) List(c *fiber.Ctx) error {
	items, err := h.items.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewItemResponses(items))
}

// Search handles GET /item/search?query=.
func (h *ItemsHandler) Search(c *fiber.Ctx) error {
	items, err := h.items.Search(c.Context(), c.Query("query"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewItemResponses(items))
}
