package models

import (
	"time"

	"gorm.io/gorm"
)

type Team struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Squads  []Squad            `gorm:"foreignKey:TeamID" json:"squads,omitempty"`
	Matches []Match            `gorm:"foreignKey:TeamID" json:"matches,omitempty"`
	Ratings []PlayerTeamRating `gorm:"foreignKey:TeamID" json:"ratings,omitempty"`
}

func (Team) TableName() string {
	return "teams"
}

// Squad is a named side within a team. Match rosters are stored per match;
// the squad row only provides identity and a display name.
type Squad struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	TeamID    uint           `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"team_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Team Team `gorm:"foreignKey:TeamID;references:ID" json:"team,omitempty"`
}

func (Squad) TableName() string {
	return "squads"
}

type PaginatedTeamsResponse struct {
	Data       []Team `json:"data"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
}

type CreateTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateSquadRequest struct {
	Name string `json:"name" binding:"required"`
}
