package models

import (
	"time"

	"gorm.io/gorm"
)

// MatchParticipation is the snapshot ledger: one row per (match, player)
// holding the player's full rating state before and after the match. Rows
// are overwritten in place when a cascade replays the match.
type MatchParticipation struct {
	ID       uint `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID  uint `gorm:"not null;uniqueIndex:idx_match_player;constraint:OnDelete:CASCADE" json:"match_id"`
	PlayerID uint `gorm:"not null;uniqueIndex:idx_match_player;constraint:OnDelete:CASCADE" json:"player_id"`
	TeamID   uint `gorm:"not null;index" json:"team_id"`
	SquadID  uint `gorm:"not null" json:"squad_id"`
	IsWinner bool `gorm:"not null" json:"is_winner"`

	Before RatingSnapshot `gorm:"embedded;embeddedPrefix:before_" json:"before"`
	After  RatingSnapshot `gorm:"embedded;embeddedPrefix:after_" json:"after"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Match  Match  `gorm:"foreignKey:MatchID;references:ID" json:"match,omitempty"`
	Player Player `gorm:"foreignKey:PlayerID;references:ID" json:"player,omitempty"`
	Squad  Squad  `gorm:"foreignKey:SquadID;references:ID" json:"squad,omitempty"`
}

func (MatchParticipation) TableName() string {
	return "match_participations"
}

// HasSnapshot reports whether the row has been through a rating application.
// Fresh roster-only rows written during an edit have zero snapshots.
func (p *MatchParticipation) HasSnapshot() bool {
	return !p.Before.IsZero() || !p.After.IsZero()
}
