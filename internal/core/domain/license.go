package domain

import (
	"errors"
	"time"
)

var ErrLicenseNotFound = errors.New("license not found")

// License is a paid entitlement. It is stored once, keyed by LicenseKey;
// Email and Passthrough are secondary lookup fields maintained by the
// repository, never duplicate copies of the record.
type License struct {
	LicenseKey  string    `json:"license_key" bson:"license_key"`
	Email       string    `json:"email,omitempty" bson:"email,omitempty"`
	Passthrough string    `json:"passthrough,omitempty" bson:"passthrough,omitempty"`
	ProductID   string    `json:"product_id,omitempty" bson:"product_id,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt   time.Time `json:"expires_at" bson:"expires_at"`
}

// Expired reports whether the license has lapsed at the given instant.
func (l *License) Expired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}

// Bound reports whether the license has been claimed by an email address.
// A license binds to at most one email for its lifetime; the first verifier
// that supplies an email claims an unbound license.
func (l *License) Bound() bool {
	return l.Email != ""
}
