package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

const defaultUserTTL = time.Minute

// UserCache keeps recently resolved users in Redis so that token
// verification does not hit MongoDB on every authenticated request.
// Key format: user:<id>
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
}

// userEntry is the cached wire form. It carries the password hash, which
// domain.User deliberately hides from JSON; entries are invalidated on any
// password or profile change, and Login always reads through the
// repository, never the cache.
type userEntry struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username,omitempty"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUserCache wraps the given client. A non-positive ttl falls back to the
// default.
func NewUserCache(client *redis.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = defaultUserTTL
	}
	return &UserCache{client: client, ttl: ttl}
}

// Get returns the cached user, or (nil, nil) on a miss.
func (c *UserCache) Get(ctx context.Context, id string) (*domain.User, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("user cache get: %w", err)
	}

	var entry userEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("user cache decode: %w", err)
	}
	return &domain.User{
		ID:           entry.ID,
		Email:        entry.Email,
		Username:     entry.Username,
		PasswordHash: entry.PasswordHash,
		CreatedAt:    entry.CreatedAt,
	}, nil
}

// Set stores the user, expiring after the configured TTL.
func (c *UserCache) Set(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(userEntry{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("user cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(user.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("user cache set: %w", err)
	}
	return nil
}

// Invalidate drops the entry after a profile, password, or account change.
func (c *UserCache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("user cache invalidate: %w", err)
	}
	return nil
}

func (c *UserCache) key(id string) string {
	return "user:" + id
}
