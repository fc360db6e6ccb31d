package services

import (
	"errors"

	"core/models"

	"gorm.io/gorm"
)

type PlayerService struct {
	db *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{
		db: db,
	}
}

func (s *PlayerService) CreatePlayer(req models.CreatePlayerRequest) (*models.Player, error) {
	if req.Name == "" {
		return nil, models.NewValidationError("player name must not be empty")
	}

	player := models.Player{Name: req.Name}
	if err := s.db.Create(&player).Error; err != nil {
		return nil, err
	}

	return &player, nil
}

func (s *PlayerService) GetPlayerByID(id uint) (*models.Player, error) {
	var player models.Player
	if err := s.db.First(&player, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("player", id)
		}
		return nil, err
	}
	return &player, nil
}

func (s *PlayerService) GetAllPlayers(page, perPage int) (*models.PaginatedPlayersResponse, error) {
	var players []models.Player
	var total int64

	if err := s.db.Model(&models.Player{}).Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * perPage
	result := s.db.Order("name ASC").
		Offset(offset).
		Limit(perPage).
		Find(&players)
	if result.Error != nil {
		return nil, result.Error
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return &models.PaginatedPlayersResponse{
		Data:       players,
		Total:      total,
		Page:       page,
		PageSize:   perPage,
		TotalPages: totalPages,
	}, nil
}

// GetPlayerHistory returns the player's participation ledger, newest first.
func (s *PlayerService) GetPlayerHistory(playerID uint, limit int) ([]models.MatchParticipation, error) {
	if _, err := s.GetPlayerByID(playerID); err != nil {
		return nil, err
	}

	var participations []models.MatchParticipation
	result := s.db.Where("player_id = ?", playerID).
		Joins("JOIN matches ON matches.id = match_participations.match_id AND matches.deleted_at IS NULL").
		Order("matches.match_date DESC, matches.id DESC").
		Limit(limit).
		Preload("Match").
		Preload("Squad").
		Find(&participations)
	if result.Error != nil {
		return nil, result.Error
	}

	return participations, nil
}
