package ctf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"lycosidae/internal/sentinel"
)

// Service exposes competition, challenge and ranking operations over an
// injected store.
type Service struct {
	store  Store
	logger *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService constructs the competition service.
func NewService(store Store, opts ...Option) *Service {
	svc := &Service{store: store}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}

// Seed loads the starter dataset into any collection that is still
// empty. Collections that already hold data are left alone, so calling
// Seed on every startup is safe.
func (s *Service) Seed(ctx context.Context) error {
	comps, err := s.store.Competitions(ctx)
	if err != nil {
		return fmt.Errorf("read competitions: %w", err)
	}
	if len(comps) == 0 {
		if err := s.store.SaveCompetitions(ctx, seedCompetitions()); err != nil {
			return fmt.Errorf("seed competitions: %w", err)
		}
	}

	challenges, err := s.store.Challenges(ctx)
	if err != nil {
		return fmt.Errorf("read challenges: %w", err)
	}
	if len(challenges) == 0 {
		if err := s.store.SaveChallenges(ctx, seedChallenges()); err != nil {
			return fmt.Errorf("seed challenges: %w", err)
		}
	}

	ranking, err := s.store.Ranking(ctx)
	if err != nil {
		return fmt.Errorf("read ranking: %w", err)
	}
	if len(ranking) == 0 {
		if err := s.store.SaveRanking(ctx, seedRanking()); err != nil {
			return fmt.Errorf("seed ranking: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "competition data ready")
	return nil
}

// Competitions lists every known competition.
func (s *Service) Competitions(ctx context.Context) ([]Competition, error) {
	return s.store.Competitions(ctx)
}

// CompetitionByCode resolves an access code, case-insensitively.
func (s *Service) CompetitionByCode(ctx context.Context, code string) (Competition, error) {
	comps, err := s.store.Competitions(ctx)
	if err != nil {
		return Competition{}, err
	}
	for _, comp := range comps {
		if strings.EqualFold(comp.Code, code) {
			return comp, nil
		}
	}
	return Competition{}, fmt.Errorf("competition with code %q: %w", code, sentinel.ErrNotFound)
}

// UserCompetitions lists the competitions userID has joined.
func (s *Service) UserCompetitions(ctx context.Context, userID string) ([]Competition, error) {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	comps, err := s.store.Competitions(ctx)
	if err != nil {
		return nil, err
	}
	var out []Competition
	for _, comp := range comps {
		if profile.Joined(comp.ID) {
			out = append(out, comp)
		}
	}
	return out, nil
}

// Join enrolls userID into the competition behind code. Joining a
// competition twice is a no-op.
func (s *Service) Join(ctx context.Context, userID, code string) (Competition, error) {
	comp, err := s.CompetitionByCode(ctx, code)
	if err != nil {
		return Competition{}, err
	}
	if !comp.IsActive {
		return Competition{}, fmt.Errorf("competition %s is not active: %w", comp.ID, sentinel.ErrInvalidInput)
	}

	profile, err := s.profile(ctx, userID)
	if err != nil {
		return Competition{}, err
	}
	if profile.Joined(comp.ID) {
		return comp, nil
	}
	profile.Competitions = append(profile.Competitions, comp.ID)
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return Competition{}, fmt.Errorf("save profile: %w", err)
	}
	s.logger.InfoContext(ctx, "joined competition", "user_id", userID, "competition", comp.ID)
	return comp, nil
}

// Leave removes competitionID from the user's profile. Leaving a
// competition the user never joined is a no-op.
func (s *Service) Leave(ctx context.Context, userID, competitionID string) error {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return err
	}
	if !profile.Joined(competitionID) {
		return nil
	}
	kept := profile.Competitions[:0]
	for _, id := range profile.Competitions {
		if id != competitionID {
			kept = append(kept, id)
		}
	}
	profile.Competitions = kept
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	s.logger.InfoContext(ctx, "left competition", "user_id", userID, "competition", competitionID)
	return nil
}

// ChallengesByCompetition lists the challenges of one competition.
func (s *Service) ChallengesByCompetition(ctx context.Context, competitionID string) ([]Challenge, error) {
	challenges, err := s.store.Challenges(ctx)
	if err != nil {
		return nil, err
	}
	var out []Challenge
	for _, ch := range challenges {
		if ch.CompetitionID == competitionID {
			out = append(out, ch)
		}
	}
	return out, nil
}

// SetSolved flips the solved flag on one challenge.
func (s *Service) SetSolved(ctx context.Context, challengeID int, solved bool) error {
	challenges, err := s.store.Challenges(ctx)
	if err != nil {
		return err
	}
	found := false
	for i := range challenges {
		if challenges[i].ID == challengeID {
			challenges[i].Solved = solved
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("challenge %d: %w", challengeID, sentinel.ErrNotFound)
	}
	return s.store.SaveChallenges(ctx, challenges)
}

// RankingByCompetition returns the scoreboard rows for one competition.
func (s *Service) RankingByCompetition(ctx context.Context, competitionID string) ([]RankingEntry, error) {
	entries, err := s.store.Ranking(ctx)
	if err != nil {
		return nil, err
	}
	var out []RankingEntry
	for _, entry := range entries {
		if entry.CompetitionID == competitionID {
			out = append(out, entry)
		}
	}
	return out, nil
}

// Score sums the points of solved challenges in one competition.
func (s *Service) Score(ctx context.Context, competitionID string) (int, error) {
	challenges, err := s.ChallengesByCompetition(ctx, competitionID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, ch := range challenges {
		if ch.Solved {
			total += ch.Points
		}
	}
	return total, nil
}

// profile loads the user's profile, creating an empty one on first use.
func (s *Service) profile(ctx context.Context, userID string) (Profile, error) {
	profile, err := s.store.Profile(ctx, userID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Profile{UserID: userID}, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return profile, nil
}
