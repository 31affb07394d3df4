package memory

import (
	"context"
	"sync"

	"github.com/quickconvert/entitlement-system/internal/core/domain"
)

// LicenseRepository keeps one authoritative record per license key plus
// email and passthrough indexes pointing at that key. The indexes are
// maintained under the same lock as the record, so they cannot diverge.
type LicenseRepository struct {
	mu          sync.Mutex
	byKey       map[string]*domain.License
	keyByEmail  map[string]string
	keyByPassth map[string]string
}

func NewLicenseRepository() *LicenseRepository {
	return &LicenseRepository{
		byKey:       make(map[string]*domain.License),
		keyByEmail:  make(map[string]string),
		keyByPassth: make(map[string]string),
	}
}

func (r *LicenseRepository) Upsert(_ context.Context, license *domain.License) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byKey[license.LicenseKey]; ok {
		if prev.Email != "" && prev.Email != license.Email {
			delete(r.keyByEmail, prev.Email)
		}
		if prev.Passthrough != "" && prev.Passthrough != license.Passthrough {
			delete(r.keyByPassth, prev.Passthrough)
		}
	}

	clone := *license
	r.byKey[license.LicenseKey] = &clone
	if license.Email != "" {
		r.keyByEmail[license.Email] = license.LicenseKey
	}
	if license.Passthrough != "" {
		r.keyByPassth[license.Passthrough] = license.LicenseKey
	}
	return nil
}

func (r *LicenseRepository) FindByKey(_ context.Context, licenseKey string) (*domain.License, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(licenseKey)
}

func (r *LicenseRepository) FindByEmail(_ context.Context, email string) (*domain.License, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, ok := r.keyByEmail[email]
	if !ok {
		return nil, domain.ErrLicenseNotFound
	}
	return r.get(key)
}

func (r *LicenseRepository) FindByPassthrough(_ context.Context, passthrough string) (*domain.License, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, ok := r.keyByPassth[passthrough]
	if !ok {
		return nil, domain.ErrLicenseNotFound
	}
	return r.get(key)
}

// get must be called with the lock held.
func (r *LicenseRepository) get(licenseKey string) (*domain.License, error) {
	license, ok := r.byKey[licenseKey]
	if !ok {
		return nil, domain.ErrLicenseNotFound
	}
	clone := *license
	return &clone, nil
}
