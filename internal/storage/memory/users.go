package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/reservaya/api/internal/domain"
)

type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]domain.User)}
}

// Save inserts or replaces the user with the same email.
func (r *UserRepository) Save(_ context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byEmail[strings.ToLower(u.Email)] = u
	return nil
}

// GetByEmail returns nil when no user has that email.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
