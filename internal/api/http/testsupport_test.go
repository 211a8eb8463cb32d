package http_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/marketplace-service/internal/api/http"
	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/observability"
	"github.com/spec-kit/marketplace-service/internal/service"
)

const testJWTSecret = "api-test-secret"

// fakeUserRepo is an in-memory repository.UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = r.seq
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetAdminByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email && user.Role == domain.RoleAdmin {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) SoftDelete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Status = domain.UserStatusInactive
	return nil
}

func (r *fakeUserRepo) ListActive(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for i := int64(1); i <= r.seq; i++ {
		if user, ok := r.users[i]; ok && user.Status == domain.UserStatusActive {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) CountActiveByRole(_ context.Context, role domain.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, user := range r.users {
		if user.Status == domain.UserStatusActive && user.Role == role {
			count++
		}
	}
	return count, nil
}

// fakeCategoryRepo is an in-memory repository.CategoryRepository.
type fakeCategoryRepo struct {
	mu         sync.Mutex
	seq        int64
	categories map[int64]*domain.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[int64]*domain.Category)}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	category.ID = r.seq
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.categories[category.ID]
	if !ok || existing.Status != domain.CategoryStatusActive {
		return pgx.ErrNoRows
	}
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *fakeCategoryRepo) GetActiveByID(_ context.Context, id int64) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok || category.Status != domain.CategoryStatusActive {
		return nil, pgx.ErrNoRows
	}
	clone := *category
	return &clone, nil
}

func (r *fakeCategoryRepo) ListActive(_ context.Context) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Category
	for i := int64(1); i <= r.seq; i++ {
		if category, ok := r.categories[i]; ok && category.Status == domain.CategoryStatusActive {
			out = append(out, *category)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) SoftDelete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok || category.Status != domain.CategoryStatusActive {
		return pgx.ErrNoRows
	}
	category.Status = domain.CategoryStatusInactive
	return nil
}

// fakeAuthorRepo is an in-memory repository.AuthorRepository.
type fakeAuthorRepo struct {
	authors map[int64]*domain.Author
}

func newFakeAuthorRepo(ids ...int64) *fakeAuthorRepo {
	authors := make(map[int64]*domain.Author, len(ids))
	for _, id := range ids {
		authors[id] = &domain.Author{ID: id, Name: "author"}
	}
	return &fakeAuthorRepo{authors: authors}
}

func (r *fakeAuthorRepo) GetByID(_ context.Context, id int64) (*domain.Author, error) {
	author, ok := r.authors[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return author, nil
}

func (r *fakeAuthorRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.authors[id]
	return ok, nil
}

// fakeItemRepo is an in-memory repository.ItemRepository.
type fakeItemRepo struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]*domain.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[int64]*domain.Item)}
}

func (r *fakeItemRepo) Create(_ context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	item.ID = r.seq
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[item.ID]
	if !ok || existing.Status != domain.ItemStatusActive {
		return pgx.ErrNoRows
	}
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *fakeItemRepo) GetActiveByID(_ context.Context, id int64) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.Status != domain.ItemStatusActive {
		return nil, pgx.ErrNoRows
	}
	clone := *item
	return &clone, nil
}

func (r *fakeItemRepo) OwnedBy(_ context.Context, itemID, sellerID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	return ok && item.Status == domain.ItemStatusActive && item.SellerID == sellerID, nil
}

func (r *fakeItemRepo) ListActive(_ context.Context) ([]domain.ItemDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ItemDetails
	for i := int64(1); i <= r.seq; i++ {
		if item, ok := r.items[i]; ok && item.Status == domain.ItemStatusActive {
			out = append(out, domain.ItemDetails{Item: *item})
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Search(_ context.Context, query string) ([]domain.ItemDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(query)
	var out []domain.ItemDetails
	for i := int64(1); i <= r.seq; i++ {
		item, ok := r.items[i]
		if !ok || item.Status != domain.ItemStatusActive {
			continue
		}
		if strings.Contains(strings.ToLower(item.Title), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle) {
			out = append(out, domain.ItemDetails{Item: *item})
		}
	}
	return out, nil
}

// testEnv bundles the wired app with its collaborators for assertions.
type testEnv struct {
	app    *fiber.App
	users  *fakeUserRepo
	tokens *auth.TokenManager
	hasher auth.Hasher
}

// newTestEnv wires the full middleware and route stack over in-memory
// repositories. Redis is absent; caching degrades to pass-through.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens := auth.NewTokenManager(testJWTSecret, 60)

	users := newFakeUserRepo()
	categories := newFakeCategoryRepo()
	authors := newFakeAuthorRepo(1)
	items := newFakeItemRepo()

	dispatcher := events.NewInMemoryDispatcher()
	authService := service.NewAuthService(users, hasher, tokens, dispatcher)
	userService := service.NewUserService(users, hasher, dispatcher)
	categoryService := service.NewCategoryService(categories, dispatcher)
	itemService := service.NewItemService(service.ItemDependencies{
		ItemRepo:     items,
		AuthorRepo:   authors,
		CategoryRepo: categories,
		Dispatcher:   dispatcher,
	})

	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler("test", "test", nil, nil),
		Users:      handlers.NewUsersHandler(authService, userService),
		Admin:      handlers.NewAdminHandler(authService, userService),
		Categories: handlers.NewCategoriesHandler(categoryService),
		Items:      handlers.NewItemsHandler(itemService),
		Guard:      auth.NewGuard(tokens, users),
	})

	env := &testEnv{app: app, users: users, tokens: tokens, hasher: hasher}
	env.seedUser(t, "Admin", "admin@example.com", "admin-password", domain.RoleAdmin)
	env.seedUser(t, "Seller", "seller@example.com", "seller-password", domain.RoleSeller)
	env.seedUser(t, "Buyer", "buyer@example.com", "buyer-password", domain.RoleBuyer)
	env.seedCategory(t, categories, "Fantasy", "Wizards and dragons")
	return env
}

func (e *testEnv) seedUser(t *testing.T, name, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := e.hasher.Hash(password)
	require.NoError(t, err)
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.UserStatusActive,
	}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) seedCategory(t *testing.T, repo *fakeCategoryRepo, name, description string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &domain.Category{
		Name:        name,
		Description: description,
		Status:      domain.CategoryStatusActive,
	}))
}

// tokenFor signs a fresh access token for a seeded account id.
func (e *testEnv) tokenFor(t *testing.T, userID int64) string {
	t.Helper()
	token, _, err := e.tokens.Sign(userID, domain.TokenTypeAccess)
	require.NoError(t, err)
	return token
}
