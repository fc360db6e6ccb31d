package services

import (
	"core/models"

	"gorm.io/gorm"
)

type EditRecordService struct {
	db *gorm.DB
}

func NewEditRecordService(db *gorm.DB) *EditRecordService {
	return &EditRecordService{
		db: db,
	}
}

func (s *EditRecordService) GetRecentEditRecords(limit int) ([]models.MatchEditRecord, error) {
	var records []models.MatchEditRecord
	result := s.db.Order("created_at DESC").
		Limit(limit).
		Preload("Team").
		Preload("Players").
		Preload("Players.Player").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

// GetMatchEditRecords returns the audit trail of one match, oldest first.
func (s *EditRecordService) GetMatchEditRecords(matchID uint) ([]models.MatchEditRecord, error) {
	var records []models.MatchEditRecord
	result := s.db.Where("match_id = ?", matchID).
		Order("created_at ASC, id ASC").
		Preload("Players").
		Preload("Players.Player").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}
