package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// ErrInvalidToken is the single verification failure. Bad signature,
// malformed payload, unexpected token type and expiry all surface as this
// error so that responses cannot leak which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Claims describes the signed JWT payload.
type Claims struct {
	TokenType domain.TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// SubjectID decodes the numeric account id carried in the subject claim.
func (c *Claims) SubjectID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// TokenManager issues and verifies signed, time-bounded bearer tokens. The
// secret and per-type TTLs are fixed at construction; concurrent use needs no
// synchronization.
type TokenManager struct {
	secret []byte
	ttls   map[domain.TokenType]time.Duration
	now    func() time.Time
}

// NewTokenManager builds a manager with the process-wide signing secret.
func NewTokenManager(secret string, accessTTLMinutes int) *TokenManager {
	if accessTTLMinutes <= 0 {
		accessTTLMinutes = 60
	}
	return &TokenManager{
		secret: []byte(secret),
		ttls: map[domain.TokenType]time.Duration{
			domain.TokenTypeAccess: time.Duration(accessTTLMinutes) * time.Minute,
		},
		now: time.Now,
	}
}

// Sign issues a token for the subject, stamped with the type's TTL.
func (tm *TokenManager) Sign(subjectID int64, tokenType domain.TokenType) (string, time.Time, error) {
	ttl, ok := tm.ttls[tokenType]
	if !ok {
		return "", time.Time{}, errors.New("no TTL configured for token type " + string(tokenType))
	}

	issuedAt := tm.now()
	expiresAt := issuedAt.Add(ttl)
	claims := &Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify decodes and checks a token. Expiry is strict: no clock-skew leeway.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return tm.now() }))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if _, known := tm.ttls[claims.TokenType]; !known {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
