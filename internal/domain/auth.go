package domain

import "time"

// TokenType differentiates kinds of issued tokens. Open enumeration: new
// kinds (refresh, invite) can be added without changing the signing contract.
type TokenType string

const (
	TokenTypeAccess TokenType = "ACCESS"
)

// Token describes issued token metadata.
type Token struct {
	SubjectID int64
	Type      TokenType
	IssuedAt  time.Time
	ExpiresAt time.Time
}
