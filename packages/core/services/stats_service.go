package services

import (
	"time"

	"core/models"

	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		db: db,
	}
}

func (s *StatsService) GetStats() (*models.Stats, error) {
	var totalPlayers int64
	var totalTeams int64
	var totalMatches int64
	var matchesLast7Days int64
	var editsLast7Days int64

	if err := s.db.Model(&models.Player{}).Count(&totalPlayers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Team{}).Count(&totalTeams).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Match{}).Count(&totalMatches).Error; err != nil {
		return nil, err
	}

	last7DaysStart := time.Now().AddDate(0, 0, -7)

	if err := s.db.Model(&models.Match{}).
		Where("match_date >= ?", last7DaysStart).
		Count(&matchesLast7Days).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.MatchEditRecord{}).
		Where("created_at >= ?", last7DaysStart).
		Count(&editsLast7Days).Error; err != nil {
		return nil, err
	}

	return &models.Stats{
		TotalPlayers:     totalPlayers,
		TotalTeams:       totalTeams,
		TotalMatches:     totalMatches,
		MatchesLast7Days: matchesLast7Days,
		EditsLast7Days:   editsLast7Days,
	}, nil
}
