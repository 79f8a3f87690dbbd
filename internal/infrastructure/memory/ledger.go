// Package memory holds process-local stand-ins for the Redis token ledger
// and the DynamoDB registration store.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vsbank-api/internal/domain"
)

// sweepEvery is how often, in ledger time, Put drops every expired entry.
const sweepEvery = time.Minute

type entry struct {
	email     string
	expiresAt time.Time
}

// Ledger maps issued tokens to the e-mail they were issued for. Expired
// entries are dropped on lookup and by a periodic sweep run from Put.
type Ledger struct {
	mu        sync.Mutex
	entries   map[string]entry
	now       func() time.Time
	nextSweep time.Time
}

// NewLedger creates a Ledger that reads the time from now.
func NewLedger(now func() time.Time) *Ledger {
	return &Ledger{entries: make(map[string]entry), now: now}
}

func (l *Ledger) Put(_ context.Context, token, email string, ttl time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if !now.Before(l.nextSweep) {
		l.sweep(now)
		l.nextSweep = now.Add(sweepEvery)
	}
	l.entries[token] = entry{email: email, expiresAt: now.Add(ttl)}
	return nil
}

func (l *Ledger) Get(_ context.Context, token string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lookup(token)
}

func (l *Ledger) Take(_ context.Context, token string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	email, err := l.lookup(token)
	delete(l.entries, token)
	return email, err
}

// sweep must be called with mu held.
func (l *Ledger) sweep(now time.Time) {
	for tok, e := range l.entries {
		if !now.Before(e.expiresAt) {
			delete(l.entries, tok)
		}
	}
}

// lookup must be called with mu held.
func (l *Ledger) lookup(token string) (string, error) {
	e, ok := l.entries[token]
	if ok && !l.now().Before(e.expiresAt) {
		delete(l.entries, token)
		ok = false
	}
	if !ok {
		return "", fmt.Errorf("token: %w", domain.ErrNotFound)
	}
	return e.email, nil
}
