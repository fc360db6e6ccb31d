package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"core/models"

	"gorm.io/gorm"
)

type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{
		db: db,
	}
}

func (s *TeamService) CreateTeam(req models.CreateTeamRequest) (*models.Team, error) {
	if req.Name == "" {
		return nil, models.NewValidationError("team name must not be empty")
	}

	team := &models.Team{
		Name: req.Name,
		Slug: s.generateUniqueSlug(req.Name),
	}
	if err := s.db.Create(team).Error; err != nil {
		return nil, err
	}

	return team, nil
}

func (s *TeamService) GetTeamByID(id uint) (*models.Team, error) {
	var team models.Team
	if err := s.db.Preload("Squads").First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("team", id)
		}
		return nil, err
	}
	return &team, nil
}

func (s *TeamService) GetAllTeams(page, perPage int) (*models.PaginatedTeamsResponse, error) {
	var teams []models.Team
	var total int64

	if err := s.db.Model(&models.Team{}).Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * perPage
	result := s.db.Order("name ASC").
		Offset(offset).
		Limit(perPage).
		Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return &models.PaginatedTeamsResponse{
		Data:       teams,
		Total:      total,
		Page:       page,
		PageSize:   perPage,
		TotalPages: totalPages,
	}, nil
}

func (s *TeamService) CreateSquad(teamID uint, req models.CreateSquadRequest) (*models.Squad, error) {
	if req.Name == "" {
		return nil, models.NewValidationError("squad name must not be empty")
	}
	if _, err := s.GetTeamByID(teamID); err != nil {
		return nil, err
	}

	squad := &models.Squad{
		TeamID: teamID,
		Name:   req.Name,
	}
	if err := s.db.Create(squad).Error; err != nil {
		return nil, err
	}

	return squad, nil
}

func (s *TeamService) GetTeamSquads(teamID uint) ([]models.Squad, error) {
	if _, err := s.GetTeamByID(teamID); err != nil {
		return nil, err
	}

	var squads []models.Squad
	if err := s.db.Where("team_id = ?", teamID).Order("name ASC").Find(&squads).Error; err != nil {
		return nil, err
	}
	return squads, nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func (s *TeamService) generateUniqueSlug(name string) string {
	base := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if base == "" {
		base = "team"
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		s.db.Model(&models.Team{}).Where("slug = ?", slug).Count(&count)
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
