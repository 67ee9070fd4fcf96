package ctf

// Category classifies a challenge.
type Category string

const (
	CategoryWeb       Category = "Web"
	CategoryCrypto    Category = "Crypto"
	CategoryRev       Category = "Rev"
	CategoryPwn       Category = "Pwn"
	CategoryForensics Category = "Forensics"
	CategoryMisc      Category = "Misc"
)

// Competition is a joinable event with a human-shareable access code.
type Competition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	IsActive    bool   `json:"isActive"`
}

// Challenge is a scored task inside a competition.
type Challenge struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	Points        int      `json:"points"`
	Solved        bool     `json:"solved"`
	CompetitionID string   `json:"competitionId"`
}

// RankingEntry is one row of a competition scoreboard.
type RankingEntry struct {
	Position      int    `json:"position"`
	Team          string `json:"team"`
	Score         int    `json:"score"`
	CompetitionID string `json:"competitionId"`
}

// Profile tracks which competitions a user has joined.
type Profile struct {
	UserID       string   `json:"userId"`
	Competitions []string `json:"competitions"`
}

// Joined reports whether the profile includes competitionID.
func (p Profile) Joined(competitionID string) bool {
	for _, id := range p.Competitions {
		if id == competitionID {
			return true
		}
	}
	return false
}
