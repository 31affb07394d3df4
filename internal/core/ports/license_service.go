package ports

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidSignature is returned when a payment webhook's signature header
// is missing or does not match the shared secret.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// GrantInput describes an administrative license grant. All identity hints
// are optional; a license key is generated when none is supplied.
type GrantInput struct {
	LicenseKey   string
	Email        string
	Passthrough  string
	DurationDays int
	// ExpiresAt is an absolute expiry as Unix milliseconds; it takes
	// precedence over DurationDays. When both are absent the license expires
	// at the last instant of the current calendar month.
	ExpiresAt int64
}

// GrantResult reports the stored license key and its expiry.
type GrantResult struct {
	LicenseKey string
	ExpiresAt  time.Time
}

// VerifyInput carries the identifiers a client presents for verification.
// Resolution order is LicenseKey, then Passthrough, then Email.
type VerifyInput struct {
	LicenseKey  string
	Email       string
	Passthrough string
}

// Verification reasons for invalid outcomes.
const (
	ReasonExpired       = "expired"
	ReasonBoundMismatch = "license_bound_to_different_email"
	ReasonNotFound      = "not_found"
)

// VerifyResult is the outcome of a verification. Invalid outcomes are normal
// results, not errors; Reason distinguishes them and ExpiresAt is populated
// whenever a record was resolved.
type VerifyResult struct {
	Valid     bool
	Reason    string
	ExpiresAt time.Time
}

// LicenseService implements admin grants, verification with one-time email
// binding, and payment webhook ingestion.
type LicenseService interface {
	Grant(ctx context.Context, input GrantInput) (*GrantResult, error)
	Verify(ctx context.Context, input VerifyInput) (*VerifyResult, error)
	// ProcessPaymentEvent verifies the HMAC signature over the raw body,
	// extracts the buyer identity and stores a fresh license, returning its
	// key. Returns ErrInvalidSignature without storing anything when the
	// signature does not check out.
	ProcessPaymentEvent(ctx context.Context, rawBody []byte, signatureHeader string) (licenseKey string, err error)
}
