package ports

import (
	"context"

	"github.com/quickconvert/entitlement-system/internal/core/domain"
)

// UserRepository persists user accounts keyed by email.
type UserRepository interface {
	// Create stores a new user. Returns domain.ErrUserExists when the email
	// is already taken.
	Create(ctx context.Context, user *domain.User) error
	// FindByEmail returns domain.ErrUserNotFound when no account exists.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
