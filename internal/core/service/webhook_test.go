package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/quickconvert/entitlement-system/internal/core/ports"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestProcessPaymentEvent_ValidSignature(t *testing.T) {
	svc, repo := newLicenseService("whsec")

	body := []byte(`{"data":{"customer":{"email":"buyer@x.com"},"checkout":{"passthrough":"pt-9"},"product":{"id":42}}}`)
	key, err := svc.ProcessPaymentEvent(context.Background(), body, signBody("whsec", body))
	if err != nil {
		t.Fatalf("ProcessPaymentEvent returned error: %v", err)
	}
	if key == "" {
		t.Fatalf("expected license key")
	}

	stored, err := repo.FindByKey(context.Background(), key)
	if err != nil {
		t.Fatalf("license not stored: %v", err)
	}
	if stored.Email != "buyer@x.com" {
		t.Fatalf("email = %q", stored.Email)
	}
	if stored.Passthrough != "pt-9" {
		t.Fatalf("passthrough = %q", stored.Passthrough)
	}
	if stored.ProductID != "42" {
		t.Fatalf("product id = %q", stored.ProductID)
	}

	// The fresh license resolves by passthrough too.
	if _, err := repo.FindByPassthrough(context.Background(), "pt-9"); err != nil {
		t.Fatalf("passthrough lookup failed: %v", err)
	}
}

func TestProcessPaymentEvent_TimestampedSignatureHeader(t *testing.T) {
	svc, _ := newLicenseService("whsec")

	body := []byte(`{"email":"flat@x.com"}`)
	header := "t=1700000000,s=" + signBody("whsec", body)
	if _, err := svc.ProcessPaymentEvent(context.Background(), body, header); err != nil {
		t.Fatalf("timestamped header rejected: %v", err)
	}
}

func TestProcessPaymentEvent_LegacyPayloadShapes(t *testing.T) {
	svc, repo := newLicenseService("whsec")

	body := []byte(`{"customer_email":"legacy@x.com","passthrough":"pt-legacy","product_id":"prod_7"}`)
	key, err := svc.ProcessPaymentEvent(context.Background(), body, signBody("whsec", body))
	if err != nil {
		t.Fatalf("ProcessPaymentEvent returned error: %v", err)
	}

	stored, err := repo.FindByKey(context.Background(), key)
	if err != nil {
		t.Fatalf("license not stored: %v", err)
	}
	if stored.Email != "legacy@x.com" || stored.Passthrough != "pt-legacy" || stored.ProductID != "prod_7" {
		t.Fatalf("unexpected record: %+v", stored)
	}
}

func TestProcessPaymentEvent_InvalidSignature(t *testing.T) {
	svc, repo := newLicenseService("whsec")

	body := []byte(`{"email":"buyer@x.com"}`)
	if _, err := svc.ProcessPaymentEvent(context.Background(), body, "deadbeef"); !errors.Is(err, ports.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}

	// Nothing was stored.
	if _, err := repo.FindByEmail(context.Background(), "buyer@x.com"); err == nil {
		t.Fatalf("license must not be created on bad signature")
	}
}

func TestProcessPaymentEvent_MissingSignature(t *testing.T) {
	svc, _ := newLicenseService("whsec")

	if _, err := svc.ProcessPaymentEvent(context.Background(), []byte(`{}`), ""); !errors.Is(err, ports.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestProcessPaymentEvent_NoSecretConfigured(t *testing.T) {
	svc, _ := newLicenseService("")

	body := []byte(`{}`)
	if _, err := svc.ProcessPaymentEvent(context.Background(), body, signBody("", body)); !errors.Is(err, ports.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature with empty secret, got %v", err)
	}
}

func TestFirstString(t *testing.T) {
	payload := map[string]any{
		"data": map[string]any{
			"product": map[string]any{"id": float64(1234)},
		},
		"email": "",
	}

	if got := firstString(payload, []string{"data", "product", "id"}); got != "1234" {
		t.Fatalf("numeric leaf = %q", got)
	}
	if got := firstString(payload, []string{"email"}, []string{"missing"}); got != "" {
		t.Fatalf("empty string leaf should be skipped, got %q", got)
	}
	if got := firstString(payload, []string{"data", "nope"}); got != "" {
		t.Fatalf("missing path = %q", got)
	}
}
