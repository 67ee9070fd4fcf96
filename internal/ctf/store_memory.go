package ctf

import (
	"context"
	"fmt"
	"sync"

	"lycosidae/internal/sentinel"
)

// InMemoryStore keeps competition data in memory for tests/dev.
type InMemoryStore struct {
	mu           sync.RWMutex
	competitions []Competition
	challenges   []Challenge
	ranking      []RankingEntry
	profiles     map[string]Profile
}

// NewInMemoryStore constructs an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[string]Profile)}
}

func (s *InMemoryStore) Competitions(_ context.Context) ([]Competition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Competition, len(s.competitions))
	copy(out, s.competitions)
	return out, nil
}

func (s *InMemoryStore) SaveCompetitions(_ context.Context, comps []Competition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.competitions = make([]Competition, len(comps))
	copy(s.competitions, comps)
	return nil
}

func (s *InMemoryStore) Challenges(_ context.Context) ([]Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Challenge, len(s.challenges))
	copy(out, s.challenges)
	return out, nil
}

func (s *InMemoryStore) SaveChallenges(_ context.Context, challenges []Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges = make([]Challenge, len(challenges))
	copy(s.challenges, challenges)
	return nil
}

func (s *InMemoryStore) Ranking(_ context.Context) ([]RankingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RankingEntry, len(s.ranking))
	copy(out, s.ranking)
	return out, nil
}

func (s *InMemoryStore) SaveRanking(_ context.Context, entries []RankingEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranking = make([]RankingEntry, len(entries))
	copy(s.ranking, entries)
	return nil
}

func (s *InMemoryStore) Profile(_ context.Context, userID string) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return Profile{}, fmt.Errorf("profile %s: %w", userID, sentinel.ErrNotFound)
	}
	return profile, nil
}

func (s *InMemoryStore) SaveProfile(_ context.Context, profile Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
	return nil
}

var _ Store = (*InMemoryStore)(nil)
