package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

func TestTokenManager_SignAndVerify(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.Sign(42, domain.TokenTypeAccess)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.Verify(token)
	require.NoError(t, err)

	subject, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), subject)
	assert.Equal(t, domain.TokenTypeAccess, claims.TokenType)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	other := NewTokenManager("another-secret", 60)

	token, _, err := tm.Sign(1, domain.TokenTypeAccess)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_MalformedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	issued := time.Now()
	tm.now = func() time.Time { return issued }
	token, _, err := tm.Sign(7, domain.TokenTypeAccess)
	require.NoError(t, err)

	// Still valid one second before expiry.
	tm.now = func() time.Time { return issued.Add(time.Hour - time.Second) }
	_, err = tm.Verify(token)
	assert.NoError(t, err)

	// Strictly rejected past expiry, no skew tolerance.
	tm.now = func() time.Time { return issued.Add(time.Hour + time.Second) }
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsWrongSigningMethod(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		TokenType: domain.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_UnknownTokenType(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	_, _, err := tm.Sign(1, domain.TokenType("REFRESH"))
	assert.Error(t, err)
}

func TestClaims_NonNumericSubject(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-number"}}
	_, err := claims.SubjectID()
	assert.ErrorIs(t, err, ErrInvalidToken)
}
