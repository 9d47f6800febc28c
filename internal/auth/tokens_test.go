package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/bookbriefapp/bookbrief-server/internal/domain"
)

const testKeyHex = "0000000000000000000000000000000000000000000000000000000000000001"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testKeyHex, 15*time.Minute, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestAccessToken_RoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	user := &domain.User{
		Entity: domain.Entity{ID: "user-1"},
		Email:  "alice@example.com",
		Role:   domain.RoleAdmin,
	}

	token, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if !strings.HasPrefix(token, "v4.local.") {
		t.Errorf("expected v4.local token, got %q", token[:20])
	}

	claims, err := svc.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID: got %q, want %q", claims.UserID, "user-1")
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email: got %q", claims.Email)
	}
	if !claims.IsAdmin() {
		t.Error("IsAdmin: expected true")
	}
	if claims.Subject != "user-1" {
		t.Errorf("Subject: got %q", claims.Subject)
	}
	if claims.TokenID == "" {
		t.Error("TokenID: expected non-empty jti")
	}
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, -time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	user := &domain.User{Entity: domain.Entity{ID: "user-1"}, Email: "a@example.com", Role: domain.RoleMember}
	token, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := svc.VerifyAccessToken(token); err == nil {
		t.Fatal("expected expired token error, got nil")
	}
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	svc := newTestTokenService(t)

	otherKey := "0000000000000000000000000000000000000000000000000000000000000002"
	other, err := NewTokenService(otherKey, 15*time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	user := &domain.User{Entity: domain.Entity{ID: "user-1"}, Email: "a@example.com", Role: domain.RoleMember}
	token, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := other.VerifyAccessToken(token); err == nil {
		t.Fatal("expected verification failure with wrong key, got nil")
	}
}

func TestNewTokenService_BadKey(t *testing.T) {
	if _, err := NewTokenService("short", time.Minute, time.Hour); err == nil {
		t.Error("expected error for short key")
	}
	if _, err := NewTokenService(strings.Repeat("z", 64), time.Minute, time.Hour); err == nil {
		t.Error("expected error for non-hex key")
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("unexpected hash format: %q", hash)
	}

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("expected password to verify")
	}

	ok, err = VerifyPassword(hash, "wrong password")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("expected wrong password to fail")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	ok, err := VerifyPassword("not a hash", "password")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("malformed hash must not verify")
	}
}

func TestRefreshToken_HashStable(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty refresh token")
	}

	if HashRefreshToken(token) != HashRefreshToken(token) {
		t.Error("hash must be deterministic")
	}

	other, err := svc.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if HashRefreshToken(token) == HashRefreshToken(other) {
		t.Error("distinct tokens must hash differently")
	}
}
