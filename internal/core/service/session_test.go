package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSessionCodec_RoundTrip(t *testing.T) {
	codec := NewSessionCodec("secret", time.Hour)

	token, err := codec.Mint("alice@example.com")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	email, ok := codec.Verify(token)
	if !ok {
		t.Fatalf("expected token to verify")
	}
	if email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", email)
	}
}

func TestSessionCodec_DefaultTTL(t *testing.T) {
	codec := NewSessionCodec("secret", 0)
	if codec.TTL() != defaultSessionTTL {
		t.Fatalf("expected default TTL, got %v", codec.TTL())
	}
}

func TestSessionCodec_EmptyToken(t *testing.T) {
	codec := NewSessionCodec("secret", time.Hour)
	if _, ok := codec.Verify(""); ok {
		t.Fatalf("empty token must not verify")
	}
}

func TestSessionCodec_Garbage(t *testing.T) {
	codec := NewSessionCodec("secret", time.Hour)
	if _, ok := codec.Verify("not-a-token"); ok {
		t.Fatalf("garbage token must not verify")
	}
}

func TestSessionCodec_WrongSecret(t *testing.T) {
	minter := NewSessionCodec("secret-a", time.Hour)
	verifier := NewSessionCodec("secret-b", time.Hour)

	token, err := minter.Mint("alice@example.com")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	if _, ok := verifier.Verify(token); ok {
		t.Fatalf("token signed with another secret must not verify")
	}
}

func TestSessionCodec_Expired(t *testing.T) {
	codec := NewSessionCodec("secret", time.Hour)

	claims := jwt.MapClaims{
		"email": "alice@example.com",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}

	if _, ok := codec.Verify(token); ok {
		t.Fatalf("expired token must not verify")
	}
}

func TestSessionCodec_MissingEmail(t *testing.T) {
	codec := NewSessionCodec("secret", time.Hour)

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}

	if _, ok := codec.Verify(token); ok {
		t.Fatalf("token without email must not verify")
	}
}
