// Package credentials wraps password hashing and bearer token
// signing/verification. It holds no mutable state: the signing secret and
// TTL are fixed at construction and read-only afterwards.
package credentials

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL bounds the lifetime of issued tokens. There is no
// revocation mechanism; a leaked token stays valid until natural expiry.
const DefaultTokenTTL = 15 * time.Minute

var ErrInvalidToken = errors.New("invalid token")

// Claims is the exact identity payload embedded in a token: id and role,
// nothing else, to bound the damage of token leakage.
type Claims struct {
	ID   string
	Role string
}

// HashPassword returns the bcrypt digest of a plaintext password.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored digest.
func CheckPassword(digest, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// TokenSigner issues and verifies HS256 bearer tokens.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenSigner creates a TokenSigner. A non-positive ttl falls back to
// DefaultTokenTTL.
func NewTokenSigner(secret string, ttl time.Duration) *TokenSigner {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenSigner{secret: []byte(secret), ttl: ttl}
}

// Sign issues a token carrying the given identity, expiring after the
// signer's TTL.
func (s *TokenSigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"pkey": claims.ID,
		"role": claims.Role,
		"exp":  time.Now().Add(s.ttl).Unix(),
	})
	return t.SignedString(s.secret)
}

// Decode verifies a token and extracts its identity claims. It fails with
// ErrInvalidToken on a bad signature, an unexpected signing algorithm, or
// an expired token.
func (s *TokenSigner) Decode(token string) (Claims, error) {
	mc := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return Claims{}, ErrInvalidToken
	}

	id, _ := mc["pkey"].(string)
	role, _ := mc["role"].(string)
	if id == "" || role == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{ID: id, Role: role}, nil
}
