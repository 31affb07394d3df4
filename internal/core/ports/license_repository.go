package ports

import (
	"context"

	"github.com/quickconvert/entitlement-system/internal/core/domain"
)

// LicenseRepository persists license records. There is a single authoritative
// record per license key; implementations maintain email and passthrough as
// secondary indexes onto that record so look-ups by any identifier resolve to
// the same copy.
type LicenseRepository interface {
	// Upsert stores or replaces the record under its license key and updates
	// the secondary indexes.
	Upsert(ctx context.Context, license *domain.License) error
	// FindByKey returns domain.ErrLicenseNotFound when absent.
	FindByKey(ctx context.Context, licenseKey string) (*domain.License, error)
	// FindByEmail returns domain.ErrLicenseNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*domain.License, error)
	// FindByPassthrough returns domain.ErrLicenseNotFound when absent.
	FindByPassthrough(ctx context.Context, passthrough string) (*domain.License, error)
}
