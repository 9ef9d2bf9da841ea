// Package auth issues and verifies the API keys carried by every gRPC call.
// A key is an HS256 JWT naming a role; anon keys are handed to composer
// clients, service keys to trusted backends.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/giftbox/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleAnon    Role = "anon"
	RoleService Role = "service"
)

// ParseRole accepts the textual role names.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAnon, RoleService:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q: %w", s, common.ErrorInvalidArgument)
}

// Claims carries the standard claims plus the key's role.
type Claims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

// GenerateAPIKey signs a key for role. A zero validity issues a key
// without expiry.
func GenerateAPIKey(role Role, secretKey []byte, validity time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
			Issuer:   common.ServiceName,
		},
		Role: role,
	}
	if validity != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ParseAPIKey verifies tokenString and returns its role.
func ParseAPIKey(tokenString string, secretKey []byte) (Role, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	role, err := ParseRole(string(claims.Role))
	if err != nil {
		return "", common.ErrInvalidToken
	}
	return role, nil
}

type roleKey struct{}

// WithRole stores the caller's role in ctx.
func WithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// RoleFromContext returns the role stored by WithRole, or RoleAnon.
func RoleFromContext(ctx context.Context) Role {
	if r, ok := ctx.Value(roleKey{}).(Role); ok {
		return r
	}
	return RoleAnon
}
