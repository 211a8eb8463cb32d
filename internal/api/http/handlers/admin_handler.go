package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
	"github.com/spec-kit/marketplace-service/internal/validation"
)

// AdminHandler exposes administrator endpoints.
type AdminHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, userService *service.UserService) *AdminHandler {
	return &AdminHandler{auth: authService, users: userService}
}

// Create handles POST /admin: an existing admin provisions another one.
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	payload := validation.PayloadFromContext(c)

	user, err := h.auth.Register(c.Context(),
		payload.String("name"),
		payload.String("email"),
		payload.String("password"),
		domain.RoleAdmin,
	)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		},
	})
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	payload := validation.PayloadFromContext(c)

	token, _, err := h.auth.LoginAdmin(c.Context(), payload.String("email"), payload.String("password"))
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.LoginResponse{AccessToken: token})
}

// Reports handles GET /admin/reports.
func (h *AdminHandler) Reports(c *fiber.Ctx) error {
	users, counts, total, err := h.users.Reports(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewReportsResponse(users, counts, total))
}
