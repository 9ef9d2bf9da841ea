package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/giftbox/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	for _, role := range []Role{RoleAnon, RoleService} {
		tok, err := GenerateAPIKey(role, secret, time.Hour)
		if err != nil {
			t.Fatalf("GenerateAPIKey error: %v", err)
		}

		got, err := ParseAPIKey(tok, secret)
		if err != nil {
			t.Fatalf("ParseAPIKey error: %v", err)
		}
		if got != role {
			t.Fatalf("role mismatch: got %q want %q", got, role)
		}
	}
}

func TestGenerateAPIKey_NoExpiry(t *testing.T) {
	t.Parallel()

	tok, err := GenerateAPIKey(RoleAnon, []byte("k"), 0)
	if err != nil {
		t.Fatalf("GenerateAPIKey error: %v", err)
	}
	if _, err := ParseAPIKey(tok, []byte("k")); err != nil {
		t.Fatalf("key without expiry rejected: %v", err)
	}
}

func TestParseAPIKey_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateAPIKey(RoleService, secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateAPIKey error: %v", err)
	}

	_, err = ParseAPIKey(tok, secret)
	if err != common.ErrTokenExpired {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestParseAPIKey_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateAPIKey(RoleAnon, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateAPIKey error: %v", err)
	}

	_, err = ParseAPIKey(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseAPIKey_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := ParseAPIKey("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseAPIKey_UnknownRole(t *testing.T) {
	t.Parallel()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Role: "admin"})
	tok, err := token.SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseAPIKey(tok, []byte("k")); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	if r, err := ParseRole("service"); err != nil || r != RoleService {
		t.Fatalf("ParseRole(service) = %q, %v", r, err)
	}
	if _, err := ParseRole("root"); !errors.Is(err, common.ErrorInvalidArgument) {
		t.Fatalf("expected ErrorInvalidArgument, got %v", err)
	}
}

func TestRoleContext(t *testing.T) {
	t.Parallel()

	if got := RoleFromContext(context.Background()); got != RoleAnon {
		t.Fatalf("default role = %q", got)
	}
	ctx := WithRole(context.Background(), RoleService)
	if got := RoleFromContext(ctx); got != RoleService {
		t.Fatalf("role = %q", got)
	}
}
