package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/scrypt"

	"github.com/quickconvert/entitlement-system/internal/core/domain"
	"github.com/quickconvert/entitlement-system/internal/core/ports"
)

// scrypt parameters for the password KDF. Stored hashes carry no parameter
// record, so these must not change once accounts exist.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 16
)

// AuthService implements signup, login and session inspection.
type AuthService struct {
	repo   ports.UserRepository
	codec  *SessionCodec
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, codec *SessionCodec, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, logger: logger}
}

func (s *AuthService) Signup(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}
	hash, err := derivePassword(password, salt)
	if err != nil {
		return err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hex.EncodeToString(hash),
		PasswordSalt: hex.EncodeToString(salt),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Str("email", email).Msg("user signed up")
	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	salt, err := hex.DecodeString(user.PasswordSalt)
	if err != nil {
		return "", fmt.Errorf("decode stored salt: %w", err)
	}
	stored, err := hex.DecodeString(user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("decode stored hash: %w", err)
	}
	derived, err := derivePassword(password, salt)
	if err != nil {
		return "", err
	}
	if subtle.ConstantTimeCompare(derived, stored) != 1 {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.codec.Mint(user.Email)
	if err != nil {
		return "", fmt.Errorf("mint session token: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("user logged in")
	return token, nil
}

// WhoAmI resolves a session token to its email. Absence of a valid session
// is a normal state, never an error.
func (s *AuthService) WhoAmI(token string) (string, bool) {
	return s.codec.Verify(token)
}

func derivePassword(password string, salt []byte) ([]byte, error) {
	hash, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("derive password hash: %w", err)
	}
	return hash, nil
}
