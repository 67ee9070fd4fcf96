package ctf

import "context"

// Storage keys shared by the store implementations.
const (
	competitionsKey = "ctf_competitions"
	challengesKey   = "ctf_challenges"
	rankingKey      = "ctf_ranking"
	profilePrefix   = "ctf_profile:"
)

// Store persists competition data. Loading an absent collection returns
// an empty slice; loading an absent profile returns an error wrapping
// sentinel.ErrNotFound.
type Store interface {
	Competitions(ctx context.Context) ([]Competition, error)
	SaveCompetitions(ctx context.Context, comps []Competition) error

	Challenges(ctx context.Context) ([]Challenge, error)
	SaveChallenges(ctx context.Context, challenges []Challenge) error

	Ranking(ctx context.Context) ([]RankingEntry, error)
	SaveRanking(ctx context.Context, entries []RankingEntry) error

	Profile(ctx context.Context, userID string) (Profile, error)
	SaveProfile(ctx context.Context, profile Profile) error
}
