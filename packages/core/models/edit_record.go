package models

import (
	"time"
)

// Edit record actions.
const (
	EditActionEdited  = "edited"
	EditActionDeleted = "deleted"
)

// MatchEditRecord captures the full prior state of a match at the instant
// it is edited or deleted: the match row itself plus every participation
// snapshot. Records are never deleted; they are the audit trail and the
// deterministic baseline for replay.
type MatchEditRecord struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID       uint      `gorm:"not null;index" json:"match_id"`
	TeamID        uint      `gorm:"not null;index" json:"team_id"`
	Action        string    `gorm:"size:20;not null" json:"action"`
	PrevSquadAID  uint      `gorm:"not null" json:"prev_squad_a_id"`
	PrevSquadBID  uint      `gorm:"not null" json:"prev_squad_b_id"`
	PrevScoreA    int       `gorm:"not null" json:"prev_score_a"`
	PrevScoreB    int       `gorm:"not null" json:"prev_score_b"`
	PrevWeight    string    `gorm:"size:20;not null" json:"prev_weight"`
	PrevMatchDate time.Time `gorm:"not null" json:"prev_match_date"`
	CreatedAt     time.Time `json:"created_at"`

	// Relationships
	Match   Match                   `gorm:"foreignKey:MatchID;references:ID" json:"match,omitempty"`
	Team    Team                    `gorm:"foreignKey:TeamID;references:ID" json:"team,omitempty"`
	Players []MatchEditRecordPlayer `gorm:"foreignKey:EditRecordID" json:"players,omitempty"`
}

func (MatchEditRecord) TableName() string {
	return "match_edit_records"
}

// MatchEditRecordPlayer is the prior participation row of one player,
// copied verbatim at capture time.
type MatchEditRecordPlayer struct {
	ID           uint `gorm:"primaryKey;autoIncrement" json:"id"`
	EditRecordID uint `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"edit_record_id"`
	PlayerID     uint `gorm:"not null;index" json:"player_id"`
	SquadID      uint `gorm:"not null" json:"squad_id"`
	IsWinner     bool `gorm:"not null" json:"is_winner"`

	Before RatingSnapshot `gorm:"embedded;embeddedPrefix:before_" json:"before"`
	After  RatingSnapshot `gorm:"embedded;embeddedPrefix:after_" json:"after"`

	CreatedAt time.Time `json:"created_at"`

	Player Player `gorm:"foreignKey:PlayerID;references:ID" json:"player,omitempty"`
}

func (MatchEditRecordPlayer) TableName() string {
	return "match_edit_record_players"
}
