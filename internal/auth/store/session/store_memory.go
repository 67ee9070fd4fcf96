package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"lycosidae/internal/auth/models"
	"lycosidae/internal/sentinel"
)

// InMemoryStore keeps the session entries in memory for tests/dev.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[string][]byte)}
}

func (s *InMemoryStore) SaveUser(_ context.Context, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userKey] = data
	return nil
}

func (s *InMemoryStore) SaveToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[tokenKey] = []byte(token)
	return nil
}

func (s *InMemoryStore) CurrentUser(_ context.Context) (models.User, error) {
	s.mu.RLock()
	data, ok := s.entries[userKey]
	s.mu.RUnlock()
	if !ok {
		return models.User{}, fmt.Errorf("session record: %w", sentinel.ErrNotFound)
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return models.User{}, fmt.Errorf("decode session record: %w", err)
	}
	return user, nil
}

func (s *InMemoryStore) Token(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.entries[tokenKey]
	if !ok {
		return "", fmt.Errorf("auth token: %w", sentinel.ErrNotFound)
	}
	return string(data), nil
}

func (s *InMemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userKey)
	delete(s.entries, tokenKey)
	return nil
}

var _ Store = (*InMemoryStore)(nil)
