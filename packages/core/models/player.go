package models

import (
	"time"

	"gorm.io/gorm"
)

type Player struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Ratings        []PlayerTeamRating   `gorm:"foreignKey:PlayerID" json:"ratings,omitempty"`
	Participations []MatchParticipation `gorm:"foreignKey:PlayerID" json:"participations,omitempty"`
}

func (Player) TableName() string {
	return "players"
}

type PaginatedPlayersResponse struct {
	Data       []Player `json:"data"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	TotalPages int      `json:"totalPages"`
}

type CreatePlayerRequest struct {
	Name string `json:"name" binding:"required"`
}
