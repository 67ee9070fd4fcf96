package ctf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"lycosidae/internal/sentinel"
)

// RedisStore persists competition data in Redis as JSON blobs under the
// same keys the in-memory store uses.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore constructs a Redis-backed store. prefix scopes the keys
// so several clients can share one Redis.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

func (s *RedisStore) loadSlice(ctx context.Context, key string, out any) error {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) saveJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, s.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Competitions(ctx context.Context) ([]Competition, error) {
	var out []Competition
	if err := s.loadSlice(ctx, competitionsKey, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RedisStore) SaveCompetitions(ctx context.Context, comps []Competition) error {
	return s.saveJSON(ctx, competitionsKey, comps)
}

func (s *RedisStore) Challenges(ctx context.Context) ([]Challenge, error) {
	var out []Challenge
	if err := s.loadSlice(ctx, challengesKey, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RedisStore) SaveChallenges(ctx context.Context, challenges []Challenge) error {
	return s.saveJSON(ctx, challengesKey, challenges)
}

func (s *RedisStore) Ranking(ctx context.Context) ([]RankingEntry, error) {
	var out []RankingEntry
	if err := s.loadSlice(ctx, rankingKey, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RedisStore) SaveRanking(ctx context.Context, entries []RankingEntry) error {
	return s.saveJSON(ctx, rankingKey, entries)
}

func (s *RedisStore) Profile(ctx context.Context, userID string) (Profile, error) {
	data, err := s.client.Get(ctx, s.key(profilePrefix+userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Profile{}, fmt.Errorf("profile %s: %w", userID, sentinel.ErrNotFound)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return profile, nil
}

func (s *RedisStore) SaveProfile(ctx context.Context, profile Profile) error {
	return s.saveJSON(ctx, profilePrefix+profile.UserID, profile)
}

var _ Store = (*RedisStore)(nil)
