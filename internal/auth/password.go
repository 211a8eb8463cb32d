package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher is the capability interface for one-way, salted secret hashing.
// Implementations must never allow the digest to be reversed; Compare is the
// only valid equality test.
type Hasher interface {
	Hash(secret string) (string, error)
	Compare(secret, hashed string) bool
}

// BcryptHasher hashes secrets with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher validates the cost factor up front. An out-of-range cost is
// a startup error, never a per-request one.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d outside [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: cost}, nil
}

// Hash produces a salted digest. Hashing the same secret twice yields
// different outputs.
func (h *BcryptHasher) Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare verifies a secret against its digest in constant time. Any
// malformed digest yields false rather than an error.
func (h *BcryptHasher) Compare(secret, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret)) == nil
}
