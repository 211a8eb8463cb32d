package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

const principalKey = "auth_principal"

// MsgInvalidCredentials is the one message every authentication failure
// carries, whatever the actual cause.
const MsgInvalidCredentials = "invalid credentials"

// bearerPrefix is matched literally; any other header shape counts as no
// token rather than a malformed-token error.
const bearerPrefix = "Bearer "

// Principal is the caller identity resolved from a verified token. Immutable
// for the lifetime of the request.
type Principal struct {
	UserID int64
	Role   domain.Role
	User   *domain.User
}

// IdentityResolver maps a token subject to an account. Lookups return
// pgx.ErrNoRows when the subject no longer exists.
type IdentityResolver interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Guard runs the per-request authentication and authorization pipeline in
// front of payload validation and business logic.
type Guard struct {
	tokens     *TokenManager
	identities IdentityResolver
}

// NewGuard constructs the guard from its collaborators.
func NewGuard(tokens *TokenManager, identities IdentityResolver) *Guard {
	return &Guard{tokens: tokens, identities: identities}
}

// Protect returns middleware enforcing the role allow-list. Any-of
// semantics: one matching role admits the request. With no roles the route is
// unrestricted — a supplied token is resolved best-effort and attached when
// valid, but never causes a rejection.
func (g *Guard) Protect(roles ...domain.Role) fiber.Handler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		token, hasToken := extractBearer(c.Get(fiber.HeaderAuthorization))

		if len(allowed) == 0 {
			if hasToken {
				if principal, err := g.resolve(c.Context(), token); err == nil {
					c.Locals(principalKey, principal)
				}
			}
			return c.Next()
		}

		if !hasToken {
			return apperrors.NewUnauthorized(MsgInvalidCredentials)
		}

		principal, err := g.resolve(c.Context(), token)
		if err != nil {
			if errors.Is(err, ErrInvalidToken) || errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewUnauthorized(MsgInvalidCredentials)
			}
			return apperrors.MapError(err)
		}

		if _, ok := allowed[principal.Role]; !ok {
			return apperrors.NewForbidden("forbidden")
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// resolve verifies the token and maps its subject to an account. A subject
// that no longer resolves is treated as an invalid token, never as a valid
// but accountless one.
func (g *Guard) resolve(ctx context.Context, token string) (*Principal, error) {
	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	subjectID, err := claims.SubjectID()
	if err != nil {
		return nil, err
	}

	user, err := g.identities.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	return &Principal{UserID: user.ID, Role: user.Role, User: user}, nil
}

// PrincipalFromContext retrieves the authenticated caller, when one was
// attached.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

func extractBearer(header string) (string, bool) {
	token, found := strings.CutPrefix(header, bearerPrefix)
	if !found || token == "" {
		return "", false
	}
	return token, true
}
