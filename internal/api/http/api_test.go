package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
)

const (
	adminID  = int64(1)
	sellerID = int64(2)
	buyerID  = int64(3)
)

func doJSON(t *testing.T, env *testEnv, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && json.Valid(raw) {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp.StatusCode, decoded
}

func errorMessage(body map[string]any) string {
	errObj, _ := body["error"].(map[string]any)
	msg, _ := errObj["message"].(string)
	return msg
}

func TestLogin_IssuesTokenForAccountID(t *testing.T) {
	env := newTestEnv(t)

	status, body := doJSON(t, env, http.MethodPost, "/users/login", "", map[string]any{
		"email":    "seller@example.com",
		"password": "seller-password",
	})
	require.Equal(t, http.StatusCreated, status)

	tokenStr, ok := body["accessToken"].(string)
	require.True(t, ok, "login must return an accessToken")

	claims, err := env.tokens.Verify(tokenStr)
	require.NoError(t, err)
	subject, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, sellerID, subject, "token subject equals the account id")
}

func TestLogin_WrongPasswordIsOpaque(t *testing.T) {
	env := newTestEnv(t)

	status, body := doJSON(t, env, http.MethodPost, "/users/login", "", map[string]any{
		"email":    "seller@example.com",
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, auth.MsgInvalidCredentials, errorMessage(body))

	// Unknown email yields the identical failure.
	status, body = doJSON(t, env, http.MethodPost, "/users/login", "", map[string]any{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, auth.MsgInvalidCredentials, errorMessage(body))
}

func TestRegister_CreatesAccountAndRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{
		"name":     "New Buyer",
		"email":    "new-buyer@example.com",
		"password": "longenough",
		"type":     "BUYER",
	}
	status, body := doJSON(t, env, http.MethodPost, "/users", "", payload)
	require.Equal(t, http.StatusCreated, status)
	data, _ := body["data"].(map[string]any)
	assert.Equal(t, "BUYER", data["role"])

	status, _ = doJSON(t, env, http.MethodPost, "/users", "", payload)
	assert.Equal(t, http.StatusConflict, status)
}

func TestRegister_InvalidPayloadListsAllFields(t *testing.T) {
	env := newTestEnv(t)

	status, body := doJSON(t, env, http.MethodPost, "/users", "", map[string]any{
		"email":    "broken",
		"password": "short",
		"type":     "ADMIN",
	})
	require.Equal(t, http.StatusBadRequest, status)

	errObj := body["error"].(map[string]any)
	details := errObj["details"].(map[string]any)
	fields := details["fields"].([]any)
	require.Len(t, fields, 4)

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		entry := f.(map[string]any)
		names = append(names, entry["field"].(string))
	}
	assert.Equal(t, []string{"name", "email", "password", "type"}, names)
}

func TestAdminRoute_RoleEnforcement(t *testing.T) {
	env := newTestEnv(t)

	t.Run("buyer token is forbidden", func(t *testing.T) {
		status, _ := doJSON(t, env, http.MethodGet, "/admin/reports", env.tokenFor(t, buyerID), nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		status, body := doJSON(t, env, http.MethodGet, "/admin/reports", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, auth.MsgInvalidCredentials, errorMessage(body))
	})

	t.Run("admin token succeeds", func(t *testing.T) {
		status, body := doJSON(t, env, http.MethodGet, "/admin/reports", env.tokenFor(t, adminID), nil)
		require.Equal(t, http.StatusOK, status)

		byRole := body["usersByRole"].(map[string]any)
		assert.Equal(t, float64(3), byRole["total"])
		assert.Equal(t, float64(1), byRole["ADMIN"])
	})
}

func TestAdminRoute_ExpiredTokenIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	expired := signExpiredToken(t, adminID)
	status, body := doJSON(t, env, http.MethodGet, "/admin/reports", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, auth.MsgInvalidCredentials, errorMessage(body))
}

// signExpiredToken crafts an already-expired token with the app's secret.
func signExpiredToken(t *testing.T, userID int64) string {
	t.Helper()
	claims := &auth.Claims{
		TokenType: domain.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func TestAuthorizationPrecedesValidation(t *testing.T) {
	env := newTestEnv(t)

	// Payload is missing every required field, but without a token the
	// response must be 401, never 400.
	status, body := doJSON(t, env, http.MethodPost, "/item", "", map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, auth.MsgInvalidCredentials, errorMessage(body))

	// Same payload with a disallowed role: 403, still not 400.
	status, _ = doJSON(t, env, http.MethodPost, "/item", env.tokenFor(t, buyerID), map[string]any{})
	assert.Equal(t, http.StatusForbidden, status)

	// Only an authorized caller reaches validation.
	status, body = doJSON(t, env, http.MethodPost, "/item", env.tokenFor(t, sellerID), map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_FAILED", errObj["code"])
}

func TestItemLifecycle(t *testing.T) {
	env := newTestEnv(t)
	sellerToken := env.tokenFor(t, sellerID)

	t.Run("create with coerced ids", func(t *testing.T) {
		status, body := doJSON(t, env, http.MethodPost, "/item", sellerToken, map[string]any{
			"title":       "Harry Potter",
			"description": "A boy discovers he is a wizard.",
			"authorId":    "1",
			"categoryId":  1,
		})
		require.Equal(t, http.StatusCreated, status)
		data := body["data"].(map[string]any)
		assert.Equal(t, float64(1), data["id"])
	})

	t.Run("unknown author is 404", func(t *testing.T) {
		status, _ := doJSON(t, env, http.MethodPost, "/item", sellerToken, map[string]any{
			"title":       "Ghost Book",
			"description": "No such author.",
			"authorId":    99,
			"categoryId":  1,
		})
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("owner can update", func(t *testing.T) {
		status, _ := doJSON(t, env, http.MethodPut, "/item/1", sellerToken, map[string]any{
			"title": "Harry Potter and the Philosopher's Stone",
		})
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("non-owner gets 404", func(t *testing.T) {
		other := env.seedUser(t, "Other Seller", "other-seller@example.com", "other-password", domain.RoleSeller)
		status, _ := doJSON(t, env, http.MethodPut, "/item/1", env.tokenFor(t, other.ID), map[string]any{
			"title": "Hijacked",
		})
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("listing is public", func(t *testing.T) {
		status, _ := doJSON(t, env, http.MethodGet, "/item", "", nil)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("search matches case-insensitively", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/item/search?query=harry", nil)
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var items []map[string]any
		require.NoError(t, json.Unmarshal(raw, &items))
		assert.Len(t, items, 1)
	})
}

func TestCategoryEndpoints(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.tokenFor(t, adminID)

	t.Run("list is public", func(t *testing.T) {
		status, _ := doJSON(t, env, http.MethodGet, "/category", "", nil)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("create requires admin", func(t *testing.T) {
		status, _ := doJSON(t, env, http.MethodPost, "/category", env.tokenFor(t, sellerID), map[string]any{
			"name":        "Drama",
			"description": "Twists and turns.",
		})
		assert.Equal(t, http.StatusForbidden, status)

		status, _ = doJSON(t, env, http.MethodPost, "/category", adminToken, map[string]any{
			"name":        "Drama",
			"description": "Twists and turns.",
		})
		assert.Equal(t, http.StatusCreated, status)
	})

	t.Run("update of missing category is 404", func(t *testing.T) {
		status, _ := doJSON(t, env, http.MethodPut, "/category/99", adminToken, map[string]any{
			"name":        "Nope",
			"description": "Nope",
		})
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("non-numeric id is 400", func(t *testing.T) {
		status, _ := doJSON(t, env, http.MethodDelete, "/category/abc", adminToken, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("soft delete hides the category", func(t *testing.T) {
		status, _ := doJSON(t, env, http.MethodDelete, "/category/2", adminToken, nil)
		require.Equal(t, http.StatusOK, status)

		status, _ = doJSON(t, env, http.MethodDelete, "/category/2", adminToken, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestUserAdministration(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.tokenFor(t, adminID)

	t.Run("admin updates a user's password", func(t *testing.T) {
		status, _ := doJSON(t, env, http.MethodPut, fmt.Sprintf("/users/%d", buyerID), adminToken, map[string]any{
			"password": "brand-new-password",
		})
		require.Equal(t, http.StatusOK, status)

		// The new password now logs in.
		status, _ = doJSON(t, env, http.MethodPost, "/users/login", "", map[string]any{
			"email":    "buyer@example.com",
			"password": "brand-new-password",
		})
		assert.Equal(t, http.StatusCreated, status)
	})

	t.Run("short replacement password is rejected", func(t *testing.T) {
		status, _ := doJSON(t, env, http.MethodPut, fmt.Sprintf("/users/%d", buyerID), adminToken, map[string]any{
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("delete soft-deletes but token still resolves", func(t *testing.T) {
		buyerToken := env.tokenFor(t, buyerID)
		status, _ := doJSON(t, env, http.MethodDelete, fmt.Sprintf("/users/%d", buyerID), adminToken, nil)
		require.Equal(t, http.StatusOK, status)

		// The identity lookup does not filter on status, so the existing
		// token still authenticates on unrestricted routes.
		status, _ = doJSON(t, env, http.MethodGet, "/category", buyerToken, nil)
		assert.Equal(t, http.StatusOK, status)

		// But the same id no longer appears in reports.
		status, body := doJSON(t, env, http.MethodGet, "/admin/reports", adminToken, nil)
		require.Equal(t, http.StatusOK, status)
		byRole := body["usersByRole"].(map[string]any)
		assert.Equal(t, float64(0), byRole["BUYER"])
	})

	t.Run("delete of unknown user is 404", func(t *testing.T) {
		status, _ := doJSON(t, env, http.MethodDelete, "/users/999", adminToken, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestAdminProvisioning(t *testing.T) {
	env := newTestEnv(t)

	t.Run("only admins create admins", func(t *testing.T) {
		payload := map[string]any{
			"name":     "Second Admin",
			"email":    "admin2@example.com",
			"password": "longenough",
		}
		status, _ := doJSON(t, env, http.MethodPost, "/admin", env.tokenFor(t, sellerID), payload)
		assert.Equal(t, http.StatusForbidden, status)

		status, _ = doJSON(t, env, http.MethodPost, "/admin", env.tokenFor(t, adminID), payload)
		assert.Equal(t, http.StatusCreated, status)
	})

	t.Run("admin login only matches admin accounts", func(t *testing.T) {
		status, _ := doJSON(t, env, http.MethodPost, "/admin/login", "", map[string]any{
			"email":    "seller@example.com",
			"password": "seller-password",
		})
		assert.Equal(t, http.StatusUnauthorized, status)

		status, body := doJSON(t, env, http.MethodPost, "/admin/login", "", map[string]any{
			"email":    "admin@example.com",
			"password": "admin-password",
		})
		require.Equal(t, http.StatusCreated, status)
		_, ok := body["accessToken"].(string)
		assert.True(t, ok)
	})
}

func TestHealthLive(t *testing.T) {
	env := newTestEnv(t)

	status, body := doJSON(t, env, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alive", body["status"])
}
