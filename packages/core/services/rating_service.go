package services

import (
	"errors"

	"core/models"

	"gorm.io/gorm"
)

type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{
		db: db,
	}
}

// GetTeamLeaderboard returns the team's live rating rows ordered by elo.
func (s *RatingService) GetTeamLeaderboard(teamID uint) ([]models.PlayerTeamRating, error) {
	var team models.Team
	if err := s.db.First(&team, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("team", teamID)
		}
		return nil, err
	}

	var ratings []models.PlayerTeamRating
	result := s.db.Where("team_id = ?", teamID).
		Order("elo DESC, id ASC").
		Preload("Player").
		Find(&ratings)
	if result.Error != nil {
		return nil, result.Error
	}

	return ratings, nil
}

// GetPlayerRatings returns every team rating row of one player.
func (s *RatingService) GetPlayerRatings(playerID uint) ([]models.PlayerTeamRating, error) {
	var player models.Player
	if err := s.db.First(&player, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("player", playerID)
		}
		return nil, err
	}

	var ratings []models.PlayerTeamRating
	result := s.db.Where("player_id = ?", playerID).
		Order("elo DESC").
		Preload("Team").
		Find(&ratings)
	if result.Error != nil {
		return nil, result.Error
	}

	return ratings, nil
}

// getOrCreateSnapshot returns the player's current state on the team,
// creating a default row on first appearance.
func (s *RatingService) getOrCreateSnapshot(tx *gorm.DB, teamID, playerID uint) (models.RatingSnapshot, error) {
	var row models.PlayerTeamRating
	err := tx.Where("player_id = ? AND team_id = ?", playerID, teamID).First(&row).Error
	if err == nil {
		return row.RatingSnapshot, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RatingSnapshot{}, err
	}

	row = models.PlayerTeamRating{
		PlayerID:       playerID,
		TeamID:         teamID,
		RatingSnapshot: models.DefaultRatingSnapshot(),
	}
	if err := tx.Create(&row).Error; err != nil {
		return models.RatingSnapshot{}, err
	}
	return row.RatingSnapshot, nil
}

// saveSnapshot overwrites (or creates) the live rating row for one player.
func (s *RatingService) saveSnapshot(tx *gorm.DB, teamID, playerID uint, snap models.RatingSnapshot) error {
	var row models.PlayerTeamRating
	err := tx.Where("player_id = ? AND team_id = ?", playerID, teamID).First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		row = models.PlayerTeamRating{PlayerID: playerID, TeamID: teamID, RatingSnapshot: snap}
		return tx.Create(&row).Error
	}

	row.RatingSnapshot = snap
	return tx.Save(&row).Error
}
