package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// Rating defaults for a player's first appearance on a team.
const (
	DefaultMu    = 15.0
	DefaultSigma = 4.0
	DefaultElo   = 1500
)

// RatingSnapshot is the full per-(player,team) rating state as a value type.
// It is embedded verbatim in the live rating row and twice (before/after) in
// every match participation, so snapshot comparisons are plain ==.
type RatingSnapshot struct {
	Mu               float64 `gorm:"not null" json:"mu"`
	Sigma            float64 `gorm:"not null" json:"sigma"`
	Elo              int     `gorm:"not null" json:"elo"`
	EloChange        int     `gorm:"not null" json:"elo_change"`
	Wins             int     `gorm:"not null" json:"wins"`
	Losses           int     `gorm:"not null" json:"losses"`
	WinStreak        int     `gorm:"not null" json:"win_streak"`
	LossStreak       int     `gorm:"not null" json:"loss_streak"`
	LongestWinStreak int     `gorm:"not null" json:"longest_win_streak"`
	HighestElo       int     `gorm:"not null" json:"highest_elo"`
	WinPercent       float64 `gorm:"not null" json:"win_percent"`
}

// DefaultRatingSnapshot is the state every player starts a team with.
func DefaultRatingSnapshot() RatingSnapshot {
	return RatingSnapshot{
		Mu:         DefaultMu,
		Sigma:      DefaultSigma,
		Elo:        DefaultElo,
		HighestElo: DefaultElo,
	}
}

// IsZero reports whether the snapshot has never been written. Roster-only
// participation rows created during an edit carry zero snapshots until the
// cascade fills them.
func (s RatingSnapshot) IsZero() bool {
	return s == RatingSnapshot{}
}

// WinPercentFor returns wins/(wins+losses) as a percentage rounded to two
// decimals, 0 when no matches have been played.
func WinPercentFor(wins, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return math.Round(float64(wins)/float64(total)*100*100) / 100
}

// PlayerTeamRating is the live rating row, one per (player, team).
type PlayerTeamRating struct {
	ID       uint `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID uint `gorm:"not null;uniqueIndex:idx_player_team;constraint:OnDelete:CASCADE" json:"player_id"`
	TeamID   uint `gorm:"not null;uniqueIndex:idx_player_team;constraint:OnDelete:CASCADE" json:"team_id"`

	RatingSnapshot `gorm:"embedded"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Player Player `gorm:"foreignKey:PlayerID;references:ID" json:"player,omitempty"`
	Team   Team   `gorm:"foreignKey:TeamID;references:ID" json:"team,omitempty"`
}

func (PlayerTeamRating) TableName() string {
	return "player_team_ratings"
}
