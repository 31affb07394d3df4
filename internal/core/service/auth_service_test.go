package service

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/scrypt"

	"github.com/quickconvert/entitlement-system/internal/core/domain"
	"github.com/quickconvert/entitlement-system/internal/infrastructure/memory"
)

func newAuthService() *AuthService {
	repo := memory.NewUserRepository()
	codec := NewSessionCodec("secret", time.Hour)
	return NewAuthService(repo, codec, zerolog.Nop())
}

func TestAuthService_SignupThenLogin(t *testing.T) {
	svc := newAuthService()

	if err := svc.Signup(context.Background(), "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	token, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	email, ok := svc.WhoAmI(token)
	if !ok || email != "alice@example.com" {
		t.Fatalf("WhoAmI = %q, %v", email, ok)
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	svc := newAuthService()

	if err := svc.Signup(context.Background(), "bob@example.com", "pass"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if err := svc.Signup(context.Background(), "bob@example.com", "other"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Signup_MissingFields(t *testing.T) {
	svc := newAuthService()

	if err := svc.Signup(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.Signup(context.Background(), "x@example.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Signup_StoresScryptHash(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := NewAuthService(repo, NewSessionCodec("secret", time.Hour), zerolog.Nop())

	if err := svc.Signup(context.Background(), "carol@example.com", "pass123"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	user, err := repo.FindByEmail(context.Background(), "carol@example.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if user.PasswordHash == "pass123" || user.PasswordHash == "" {
		t.Fatalf("password not hashed: %q", user.PasswordHash)
	}

	salt, err := hex.DecodeString(user.PasswordSalt)
	if err != nil || len(salt) != saltLen {
		t.Fatalf("bad stored salt %q: %v", user.PasswordSalt, err)
	}
	derived, err := scrypt.Key([]byte("pass123"), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if hex.EncodeToString(derived) != user.PasswordHash {
		t.Fatalf("stored hash does not match re-derived hash")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService()

	_ = svc.Signup(context.Background(), "dave@example.com", "goodpass")
	if _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService()

	if _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_WhoAmI_BadToken(t *testing.T) {
	svc := newAuthService()

	if _, ok := svc.WhoAmI("bogus"); ok {
		t.Fatalf("bogus token must not authenticate")
	}
}
