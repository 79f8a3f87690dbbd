package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsbank-api/internal/domain"
)

// Registrations stores registered users for the lifetime of the process.
type Registrations struct {
	mu    sync.RWMutex
	users []domain.RegisteredUser
}

func NewRegistrations() *Registrations {
	return &Registrations{}
}

// Put stores u. It fails with domain.ErrConflict if the user ID, e-mail or
// taxpayer ID is already taken, so concurrent registrations cannot both win.
func (r *Registrations) Put(_ context.Context, u *domain.RegisteredUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.UserID == u.UserID || existing.Email == u.Email || existing.TaxpayerID == u.TaxpayerID {
			return fmt.Errorf("registration %s exists: %w", u.Email, domain.ErrConflict)
		}
	}
	r.users = append(r.users, *u)
	return nil
}

func (r *Registrations) GetByEmail(_ context.Context, email string) (*domain.RegisteredUser, error) {
	return r.find(func(u *domain.RegisteredUser) bool { return u.Email == email })
}

func (r *Registrations) GetByTaxpayerID(_ context.Context, taxpayerID string) (*domain.RegisteredUser, error) {
	return r.find(func(u *domain.RegisteredUser) bool { return u.TaxpayerID == taxpayerID })
}

func (r *Registrations) GetByIdentifier(_ context.Context, identifier string) (*domain.RegisteredUser, error) {
	return r.find(func(u *domain.RegisteredUser) bool {
		return u.Email == identifier || u.TaxpayerID == identifier
	})
}

func (r *Registrations) find(match func(*domain.RegisteredUser) bool) (*domain.RegisteredUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if match(&r.users[i]) {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("registration not found: %w", domain.ErrNotFound)
}
