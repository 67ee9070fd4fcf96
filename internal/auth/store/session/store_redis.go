package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"lycosidae/internal/auth/models"
	"lycosidae/internal/sentinel"
)

// RedisStore persists the session entries in Redis. Entries carry no
// TTL: there is no session-expiry transition in this design, sessions
// end only on explicit logout.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore constructs a Redis-backed session store. prefix scopes
// the keys so several clients can share one Redis.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

func (s *RedisStore) SaveUser(ctx context.Context, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	if err := s.client.Set(ctx, s.key(userKey), data, 0).Err(); err != nil {
		return fmt.Errorf("save session record: %w", err)
	}
	return nil
}

func (s *RedisStore) SaveToken(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key(tokenKey), token, 0).Err(); err != nil {
		return fmt.Errorf("save auth token: %w", err)
	}
	return nil
}

func (s *RedisStore) CurrentUser(ctx context.Context) (models.User, error) {
	data, err := s.client.Get(ctx, s.key(userKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.User{}, fmt.Errorf("session record: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load session record: %w", err)
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return models.User{}, fmt.Errorf("decode session record: %w", err)
	}
	return user, nil
}

func (s *RedisStore) Token(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key(tokenKey)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("auth token: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("load auth token: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(userKey), s.key(tokenKey)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
