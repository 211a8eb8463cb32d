package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/validation"
)

// Route declares one endpoint: its role allow-list and its payload schema.
// An empty Roles slice leaves the route unrestricted; the guard then attaches
// an identity best-effort but never rejects. A nil Schema skips payload
// validation.
type Route struct {
	Method  string
	Path    string
	Roles   []domain.Role
	Schema  *validation.Schema
	Handler fiber.Handler
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Users      *handlers.UsersHandler
	Admin      *handlers.AdminHandler
	Categories *handlers.CategoriesHandler
	Items      *handlers.ItemsHandler
	Guard      *auth.Guard
}

// Routes builds the static route table. It is constructed once at startup
// and read-only afterwards.
func Routes(cfg RouteConfig) []Route {
	return []Route{
		{Method: fiber.MethodGet, Path: "/health/live", Handler: cfg.Health.Live},
		{Method: fiber.MethodGet, Path: "/health/ready", Handler: cfg.Health.Ready},

		{Method: fiber.MethodPost, Path: "/users", Schema: createUserSchema, Handler: cfg.Users.Register},
		{Method: fiber.MethodPost, Path: "/users/login", Schema: loginSchema, Handler: cfg.Users.Login},
		{Method: fiber.MethodPut, Path: "/users/:id", Roles: []domain.Role{domain.RoleAdmin}, Schema: updateUserSchema, Handler: cfg.Users.Update},
		{Method: fiber.MethodDelete, Path: "/users/:id", Roles: []domain.Role{domain.RoleAdmin}, Handler: cfg.Users.Delete},

		{Method: fiber.MethodPost, Path: "/admin", Roles: []domain.Role{domain.RoleAdmin}, Schema: createAdminSchema, Handler: cfg.Admin.Create},
		{Method: fiber.MethodPost, Path: "/admin/login", Schema: loginSchema, Handler: cfg.Admin.Login},
		{Method: fiber.MethodGet, Path: "/admin/reports", Roles: []domain.Role{domain.RoleAdmin}, Handler: cfg.Admin.Reports},

		{Method: fiber.MethodGet, Path: "/category", Handler: cfg.Categories.List},
		{Method: fiber.MethodPost, Path: "/category", Roles: []domain.Role{domain.RoleAdmin}, Schema: categorySchema, Handler: cfg.Categories.Create},
		{Method: fiber.MethodPut, Path: "/category/:id", Roles: []domain.Role{domain.RoleAdmin}, Schema: categorySchema, Handler: cfg.Categories.Update},
		{Method: fiber.MethodDelete, Path: "/category/:id", Roles: []domain.Role{domain.RoleAdmin}, Handler: cfg.Categories.Delete},

		{Method: fiber.MethodGet, Path: "/item", Handler: cfg.Items.List},
		{Method: fiber.MethodGet, Path: "/item/search", Handler: cfg.Items.Search},
		{Method: fiber.MethodPost, Path: "/item", Roles: []domain.Role{domain.RoleSeller}, Schema: createItemSchema, Handler: cfg.Items.Create},
		{Method: fiber.MethodPut, Path: "/item/:id", Roles: []domain.Role{domain.RoleSeller}, Schema: updateItemSchema, Handler: cfg.Items.Update},
	}
}

// RegisterRoutes wires the route table into the fiber app. Ordering per
// route: guard first, then payload validation, then the handler — a request
// that fails authorization never reaches validation.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	for _, route := range Routes(cfg) {
		chain := make([]fiber.Handler, 0, 3)
		chain = append(chain, cfg.Guard.Protect(route.Roles...))
		if route.Schema != nil {
			chain = append(chain, route.Schema.Middleware())
		}
		chain = append(chain, route.Handler)
		app.Add(route.Method, route.Path, chain...)
	}
}
