package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quickconvert/entitlement-system/internal/core/domain"
	"github.com/quickconvert/entitlement-system/internal/core/ports"
)

// ProcessPaymentEvent verifies the signature over the raw webhook body,
// extracts the buyer identity and stores a fresh license. The upstream
// payload schema is not fully controlled, so identity fields are pulled from
// every shape the payment processor has been observed to send.
func (s *LicenseService) ProcessPaymentEvent(ctx context.Context, rawBody []byte, signatureHeader string) (string, error) {
	if !s.signatureValid(rawBody, signatureHeader) {
		s.logger.Warn().Msg("payment webhook rejected: signature mismatch")
		return "", ports.ErrInvalidSignature
	}

	var payload map[string]any
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return "", fmt.Errorf("decode webhook payload: %w", err)
	}

	email := firstString(payload,
		[]string{"data", "customer", "email"},
		[]string{"email"},
		[]string{"customer_email"},
		[]string{"checkout", "customer", "email"},
	)
	passthrough := firstString(payload,
		[]string{"data", "checkout", "passthrough"},
		[]string{"passthrough"},
	)
	productID := firstString(payload,
		[]string{"data", "product", "id"},
		[]string{"product_id"},
	)

	now := time.Now()
	license := &domain.License{
		LicenseKey:  uuid.NewString(),
		Email:       email,
		Passthrough: passthrough,
		ProductID:   productID,
		CreatedAt:   now.UTC(),
		ExpiresAt:   endOfMonth(now),
	}
	if err := s.repo.Upsert(ctx, license); err != nil {
		return "", err
	}

	s.logger.Info().
		Str("license_key", license.LicenseKey).
		Str("passthrough", passthrough).
		Msg("license issued from payment webhook")

	return license.LicenseKey, nil
}

// signatureValid checks an HMAC-SHA256 hex digest of the raw body against
// the signature header. The header is either the bare digest or the
// "t=<timestamp>,s=<digest>" format, in which case the s= part is compared.
// A missing secret or header always fails.
func (s *LicenseService) signatureValid(rawBody []byte, header string) bool {
	if s.webhookSecret == "" || header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write(rawBody)
	digest := hex.EncodeToString(mac.Sum(nil))

	sig := header
	for _, part := range strings.Split(header, ",") {
		if v, found := strings.CutPrefix(part, "s="); found {
			sig = v
			break
		}
	}
	return hmac.Equal([]byte(digest), []byte(sig))
}

// firstString walks each candidate path through the decoded payload and
// returns the first non-empty string it finds. Numeric leaves (JSON numbers
// such as product ids) are rendered as strings.
func firstString(payload map[string]any, paths ...[]string) string {
	for _, path := range paths {
		var cur any = payload
		found := true
		for _, key := range path {
			m, ok := cur.(map[string]any)
			if !ok {
				found = false
				break
			}
			cur, ok = m[key]
			if !ok {
				found = false
				break
			}
		}
		if !found {
			continue
		}
		switch v := cur.(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
