// Package redisinfra keeps issued tokens in Redis so every API instance
// sees the same ledger.
package redisinfra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vsbank-api/internal/domain"
)

const keyPrefix = "vsbank:token:"

// New creates a Redis client and checks the connection.
func New(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Ledger maps issued tokens to the user they were issued for.
type Ledger struct {
	client *redis.Client
}

func NewLedger(client *redis.Client) *Ledger {
	return &Ledger{client: client}
}

// Put records token for userID until ttl elapses.
func (l *Ledger) Put(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := l.client.Set(ctx, keyPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis set token: %w", err)
	}
	return nil
}

// Get returns the user bound to token, or domain.ErrNotFound.
func (l *Ledger) Get(ctx context.Context, token string) (string, error) {
	return l.read(l.client.Get(ctx, keyPrefix+token))
}

// Take returns the user bound to token and removes it atomically, so a token
// can be taken at most once.
func (l *Ledger) Take(ctx context.Context, token string) (string, error) {
	return l.read(l.client.GetDel(ctx, keyPrefix+token))
}

func (l *Ledger) read(cmd *redis.StringCmd) (string, error) {
	v, err := cmd.Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("token: %w", domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("redis read token: %w", err)
	}
	return v, nil
}
