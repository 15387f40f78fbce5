package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewJWTService_RequiresSecret(t *testing.T) {
	if _, err := NewJWTService("", time.Hour); !errors.Is(err, ErrSecretMissing) {
		t.Fatalf("expected ErrSecretMissing, got %v", err)
	}
	if _, err := NewJWTService("   ", time.Hour); !errors.Is(err, ErrSecretMissing) {
		t.Fatalf("expected ErrSecretMissing for blank secret, got %v", err)
	}
}

func TestJWTService_IssueVerify(t *testing.T) {
	svc, err := NewJWTService("secret", time.Hour)
	if err != nil {
		t.Fatalf("new jwt service: %v", err)
	}

	token, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}

	userID, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user id 42, got %d", userID)
	}
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc, err := NewJWTService("secret", time.Hour)
	if err != nil {
		t.Fatalf("new jwt service: %v", err)
	}
	token, err := svc.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape")
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := svc.Verify(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for tampered payload, got %v", err)
	}

	other, err := NewJWTService("another-secret", time.Hour)
	if err != nil {
		t.Fatalf("new jwt service: %v", err)
	}
	if _, err := other.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService("secret", time.Hour)
	if err != nil {
		t.Fatalf("new jwt service: %v", err)
	}

	now := time.Now().UTC()
	claims := Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "user-graph",
			Subject:   strconv.FormatInt(7, 10),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	// Expiración y firma inválida son indistinguibles para el caller.
	if _, err := svc.Verify(expired); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc, err := NewJWTService("secret", time.Hour)
	if err != nil {
		t.Fatalf("new jwt service: %v", err)
	}
	for _, raw := range []string{"", "   ", "garbage", "a.b.c"} {
		if _, err := svc.Verify(raw); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid for %q, got %v", raw, err)
		}
	}
}

func TestJWTService_RejectsForeignClaims(t *testing.T) {
	svc, err := NewJWTService("secret", time.Hour)
	if err != nil {
		t.Fatalf("new jwt service: %v", err)
	}

	now := time.Now().UTC()
	claims := Claims{
		UserID: 9,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "9",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for foreign issuer, got %v", err)
	}
}

func TestContextUserID(t *testing.T) {
	ctx := context.Background()
	if _, ok := UserIDFromContext(ctx); ok {
		t.Fatalf("expected no user id on empty context")
	}
	ctx = ContextWithUserID(ctx, 11)
	id, ok := UserIDFromContext(ctx)
	if !ok || id != 11 {
		t.Fatalf("expected user id 11, got %d ok=%v", id, ok)
	}
}
