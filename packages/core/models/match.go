package models

import (
	"time"

	"gorm.io/gorm"
)

// Match weights scale every elo delta the match produces.
const (
	WeightCasual      = "casual"
	WeightStandard    = "standard"
	WeightCompetitive = "competitive"
)

// WeightMultiplier maps a weight name to its delta multiplier.
func WeightMultiplier(weight string) (float64, bool) {
	switch weight {
	case WeightCasual:
		return 0.75, true
	case WeightStandard:
		return 1.0, true
	case WeightCompetitive:
		return 1.25, true
	}
	return 0, false
}

type Match struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	TeamID    uint           `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"team_id"`
	SquadAID  uint           `gorm:"not null;constraint:OnDelete:CASCADE" json:"squad_a_id"`
	SquadBID  uint           `gorm:"not null;constraint:OnDelete:CASCADE" json:"squad_b_id"`
	ScoreA    int            `gorm:"not null" json:"score_a"`
	ScoreB    int            `gorm:"not null" json:"score_b"`
	Weight    string         `gorm:"size:20;default:standard" json:"weight"`
	MatchDate time.Time      `gorm:"not null;index" json:"match_date"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Team           Team                 `gorm:"foreignKey:TeamID;references:ID" json:"team,omitempty"`
	SquadA         Squad                `gorm:"foreignKey:SquadAID;references:ID" json:"squad_a,omitempty"`
	SquadB         Squad                `gorm:"foreignKey:SquadBID;references:ID" json:"squad_b,omitempty"`
	Participations []MatchParticipation `gorm:"foreignKey:MatchID" json:"participations,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}

type PaginatedMatchResponse struct {
	Data       []Match `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

type CreateMatchRequest struct {
	TeamID    uint       `json:"team_id" binding:"required"`
	SquadAID  uint       `json:"squad_a_id" binding:"required"`
	SquadBID  uint       `json:"squad_b_id" binding:"required"`
	SquadA    []uint     `json:"squad_a" binding:"required"`
	SquadB    []uint     `json:"squad_b" binding:"required"`
	ScoreA    int        `json:"score_a" binding:"min=0"`
	ScoreB    int        `json:"score_b" binding:"min=0"`
	Weight    string     `json:"weight,omitempty"`
	MatchDate *time.Time `json:"match_date,omitempty"`
}

type EditMatchRequest struct {
	SquadA []uint `json:"squad_a" binding:"required"`
	SquadB []uint `json:"squad_b" binding:"required"`
	ScoreA int    `json:"score_a" binding:"min=0"`
	ScoreB int    `json:"score_b" binding:"min=0"`
	Weight string `json:"weight,omitempty"`
}
