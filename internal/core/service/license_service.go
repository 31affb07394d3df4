package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quickconvert/entitlement-system/internal/core/domain"
	"github.com/quickconvert/entitlement-system/internal/core/ports"
)

// LicenseService implements admin grants, verification with one-time email
// binding, and payment webhook ingestion (see webhook.go).
type LicenseService struct {
	repo          ports.LicenseRepository
	webhookSecret string
	logger        zerolog.Logger
}

func NewLicenseService(repo ports.LicenseRepository, webhookSecret string, logger zerolog.Logger) *LicenseService {
	return &LicenseService{repo: repo, webhookSecret: webhookSecret, logger: logger}
}

// Grant creates or reissues a license. Expiry precedence: explicit absolute
// timestamp, then now + durationDays, then the last instant of the current
// calendar month. Reissuing an existing key keeps its binding and creation
// time.
func (s *LicenseService) Grant(ctx context.Context, input ports.GrantInput) (*ports.GrantResult, error) {
	key := input.LicenseKey
	if key == "" {
		key = uuid.NewString()
	}

	now := time.Now()
	var expires time.Time
	switch {
	case input.ExpiresAt > 0:
		expires = time.UnixMilli(input.ExpiresAt)
	case input.DurationDays > 0:
		expires = now.Add(time.Duration(input.DurationDays) * 24 * time.Hour)
	default:
		expires = endOfMonth(now)
	}

	license := &domain.License{
		LicenseKey:  key,
		Email:       input.Email,
		Passthrough: input.Passthrough,
		CreatedAt:   now.UTC(),
		ExpiresAt:   expires,
	}

	if existing, err := s.repo.FindByKey(ctx, key); err == nil {
		if license.Email == "" {
			license.Email = existing.Email
		}
		if license.Passthrough == "" {
			license.Passthrough = existing.Passthrough
		}
		license.ProductID = existing.ProductID
		license.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, domain.ErrLicenseNotFound) {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, license); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("license_key", key).
		Time("expires_at", expires).
		Msg("license granted")

	return &ports.GrantResult{LicenseKey: key, ExpiresAt: expires}, nil
}

// Verify resolves a license by key, passthrough or email (in that order) and
// applies the binding rules. Not-found, expired and bound-elsewhere are all
// normal outcomes, never errors.
func (s *LicenseService) Verify(ctx context.Context, input ports.VerifyInput) (*ports.VerifyResult, error) {
	license, err := s.resolve(ctx, input)
	if err != nil {
		if errors.Is(err, domain.ErrLicenseNotFound) {
			return &ports.VerifyResult{Valid: false, Reason: ports.ReasonNotFound}, nil
		}
		return nil, err
	}

	now := time.Now()
	if license.Expired(now) {
		return &ports.VerifyResult{Valid: false, Reason: ports.ReasonExpired, ExpiresAt: license.ExpiresAt}, nil
	}

	if license.Bound() && input.Email != "" && input.Email != license.Email {
		return &ports.VerifyResult{Valid: false, Reason: ports.ReasonBoundMismatch, ExpiresAt: license.ExpiresAt}, nil
	}

	// First-claim-wins: an unbound license is claimed by the first verifier
	// that supplies an email.
	if !license.Bound() && input.Email != "" {
		license.Email = input.Email
		if err := s.repo.Upsert(ctx, license); err != nil {
			return nil, err
		}
		s.logger.Info().
			Str("license_key", license.LicenseKey).
			Str("email", input.Email).
			Msg("license bound to email")
	}

	return &ports.VerifyResult{Valid: true, ExpiresAt: license.ExpiresAt}, nil
}

// resolve tries each supplied identifier in authority order. The email path
// is the legacy fallback for records created before keys were canonical.
func (s *LicenseService) resolve(ctx context.Context, input ports.VerifyInput) (*domain.License, error) {
	if input.LicenseKey != "" {
		license, err := s.repo.FindByKey(ctx, input.LicenseKey)
		if err == nil {
			return license, nil
		}
		if !errors.Is(err, domain.ErrLicenseNotFound) {
			return nil, err
		}
	}
	if input.Passthrough != "" {
		license, err := s.repo.FindByPassthrough(ctx, input.Passthrough)
		if err == nil {
			return license, nil
		}
		if !errors.Is(err, domain.ErrLicenseNotFound) {
			return nil, err
		}
	}
	if input.Email != "" {
		license, err := s.repo.FindByEmail(ctx, input.Email)
		if err == nil {
			return license, nil
		}
		if !errors.Is(err, domain.ErrLicenseNotFound) {
			return nil, err
		}
	}
	return nil, domain.ErrLicenseNotFound
}

// endOfMonth returns the last instant (millisecond resolution) of the month
// containing t, in t's location.
func endOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	return firstOfNext.Add(-time.Millisecond)
}
