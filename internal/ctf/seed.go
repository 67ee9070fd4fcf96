package ctf

// Starter dataset loaded into an empty store so the client is usable
// before the backend exposes competition endpoints.

func seedCompetitions() []Competition {
	return []Competition{
		{
			ID:          "cyber-championship-2024",
			Name:        "Cyber Championship 2024",
			Code:        "CYBER2024",
			Description: "Competição nacional de cibersegurança",
			StartDate:   "2024-01-15",
			EndDate:     "2024-01-30",
			IsActive:    true,
		},
		{
			ID:          "university-ctf",
			Name:        "University CTF",
			Code:        "UNICTY",
			Description: "CTF universitário - nível iniciante",
			StartDate:   "2024-02-01",
			EndDate:     "2024-02-15",
			IsActive:    true,
		},
		{
			ID:          "pro-hacker-challenge",
			Name:        "Pro Hacker Challenge",
			Code:        "PROHACK",
			Description: "Desafio avançado para profissionais",
			StartDate:   "2024-02-10",
			EndDate:     "2024-02-25",
			IsActive:    true,
		},
	}
}

func seedChallenges() []Challenge {
	return []Challenge{
		{ID: 1, Name: "SQL Injection 101", Category: CategoryWeb, Points: 150, Solved: false, CompetitionID: "cyber-championship-2024"},
		{ID: 2, Name: "Buffer Overflow Basic", Category: CategoryPwn, Points: 200, Solved: true, CompetitionID: "cyber-championship-2024"},
		{ID: 3, Name: "Caesar Cipher", Category: CategoryCrypto, Points: 100, Solved: true, CompetitionID: "cyber-championship-2024"},
		{ID: 4, Name: "Reverse Engineering", Category: CategoryRev, Points: 300, Solved: false, CompetitionID: "cyber-championship-2024"},
		{ID: 5, Name: "Network Analysis", Category: CategoryForensics, Points: 250, Solved: false, CompetitionID: "cyber-championship-2024"},

		{ID: 6, Name: "XSS Challenge", Category: CategoryWeb, Points: 175, Solved: false, CompetitionID: "university-ctf"},
		{ID: 7, Name: "Base64 Decode", Category: CategoryCrypto, Points: 50, Solved: true, CompetitionID: "university-ctf"},
		{ID: 8, Name: "Simple Rev", Category: CategoryRev, Points: 125, Solved: false, CompetitionID: "university-ctf"},

		{ID: 9, Name: "Advanced RCE", Category: CategoryPwn, Points: 500, Solved: false, CompetitionID: "pro-hacker-challenge"},
		{ID: 10, Name: "Crypto Master", Category: CategoryCrypto, Points: 400, Solved: false, CompetitionID: "pro-hacker-challenge"},
		{ID: 11, Name: "Memory Forensics", Category: CategoryForensics, Points: 450, Solved: false, CompetitionID: "pro-hacker-challenge"},
	}
}

func seedRanking() []RankingEntry {
	return []RankingEntry{
		{Position: 1, Team: "TeamCyber", Score: 1250, CompetitionID: "cyber-championship-2024"},
		{Position: 2, Team: "HackMasters", Score: 1100, CompetitionID: "cyber-championship-2024"},
		{Position: 3, Team: "SecureSquad", Score: 950, CompetitionID: "cyber-championship-2024"},
		{Position: 4, Team: "user123", Score: 300, CompetitionID: "cyber-championship-2024"},
		{Position: 5, Team: "ByteWarriors", Score: 700, CompetitionID: "cyber-championship-2024"},
	}
}
