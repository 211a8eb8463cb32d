package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
	"github.com/spec-kit/marketplace-service/internal/validation"
)

// UsersHandler exposes account endpoints for buyers and sellers.
type UsersHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService) *UsersHandler {
	return &UsersHandler{auth: authService, users: userService}
}

// Register handles POST /users.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	payload := validation.PayloadFromContext(c)

	user, err := h.auth.Register(c.Context(),
		payload.String("name"),
		payload.String("email"),
		payload.String("password"),
		domain.Role(payload.String("type")),
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

// Login handles POST /users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	payload := validation.PayloadFromContext(c)

	token, _, err := h.auth.Login(c.Context(), payload.String("email"), payload.String("password"))
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.LoginResponse{AccessToken: token})
}

// Update handles PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	payload := validation.PayloadFromContext(c)
	var name, password *string
	if v, ok := payload.OptString("name"); ok {
		name = &v
	}
	if v, ok := payload.OptString("password"); ok {
		password = &v
	}

	if err := h.users.Update(c.Context(), id, name, password); err != nil {
		return err
	}
	return c.SendStatus(http.StatusOK)
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusOK)
}
