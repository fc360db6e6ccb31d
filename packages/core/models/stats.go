package models

type Stats struct {
	TotalPlayers     int64 `json:"total_players"`
	TotalTeams       int64 `json:"total_teams"`
	TotalMatches     int64 `json:"total_matches"`
	MatchesLast7Days int64 `json:"matches_last_7_days"`
	EditsLast7Days   int64 `json:"edits_last_7_days"`
}
