// Package memory provides in-process, mutex-guarded implementations of the
// persistence ports. It is the zero-configuration backend for local and dev
// runs; nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/quickconvert/entitlement-system/internal/core/domain"
)

type UserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return domain.ErrUserExists
	}
	clone := *user
	r.users[user.Email] = &clone
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}
