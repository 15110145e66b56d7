// server/internal/auth/auth.go
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"facility-accounts-api-server/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UnusablePrefix marks a credential that no password can ever match.
const UnusablePrefix = "!"

// ErrPasswordTooLong is returned when bcrypt cannot hash the given password.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// Hashing

// BcryptHasher is the one-way credential hasher.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	return string(bytes), err
}

func (h *BcryptHasher) Verify(password, credential string) bool {
	if IsUnusable(credential) {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(credential), []byte(password))
	return err == nil
}

// UnusableCredential returns a fresh credential that fails every verification.
func UnusableCredential() string {
	return UnusablePrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func IsUnusable(credential string) bool {
	return credential == "" || strings.HasPrefix(credential, UnusablePrefix)
}

// JWT

// Principal is what a token is issued for.
type Principal interface {
	models.Identity
	models.Privileges
}

// JWTClaims defines the payload for the JWT.
type JWTClaims struct {
	Username    string `json:"username"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and parses HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *TokenIssuer) Issue(p Principal) (string, error) {
	now := t.now()
	claims := &JWTClaims{
		Username:    p.LoginName(),
		IsStaff:     p.Staff(),
		IsSuperuser: p.Superuser(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Identifier(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) Parse(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("parse token: invalid token")
	}
	return claims, nil
}
