package services

import (
	"errors"
	"time"

	"core/models"
	"core/utils"

	"gorm.io/gorm"
)

type MatchService struct {
	db      *gorm.DB
	ratings *RatingService
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{
		db:      db,
		ratings: NewRatingService(db),
	}
}

// SubmitMatch records a new match and applies it forward-only: ratings are
// read, updated once through the rating function, and written back together
// with the before/after participation ledger, all in one transaction under
// the team lock.
func (s *MatchService) SubmitMatch(req models.CreateMatchRequest) (*models.Match, error) {
	weight := req.Weight
	if weight == "" {
		weight = models.WeightStandard
	}
	multiplier, ok := models.WeightMultiplier(weight)
	if !ok {
		return nil, models.NewValidationError("unknown match weight %q", weight)
	}
	if err := validateRosters(req.SquadA, req.SquadB); err != nil {
		return nil, err
	}
	if err := validateScores(req.ScoreA, req.ScoreB); err != nil {
		return nil, err
	}

	if _, err := s.resolveSquad(req.TeamID, req.SquadAID); err != nil {
		return nil, err
	}
	if _, err := s.resolveSquad(req.TeamID, req.SquadBID); err != nil {
		return nil, err
	}
	if req.SquadAID == req.SquadBID {
		return nil, models.NewValidationError("a match needs two different squads")
	}
	if err := s.verifyPlayersExist(append(append([]uint{}, req.SquadA...), req.SquadB...)); err != nil {
		return nil, err
	}

	release, err := ratingLocks.Acquire(req.TeamID)
	if err != nil {
		return nil, err
	}
	defer release()

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	matchDate := time.Now()
	if req.MatchDate != nil {
		matchDate = *req.MatchDate
	}

	// Forward-only application: a backdated match would need a cascade and
	// belongs to the edit path.
	var latest models.Match
	err = tx.Where("team_id = ?", req.TeamID).Order("match_date DESC, id DESC").First(&latest).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return nil, err
	}
	if err == nil && matchDate.Before(latest.MatchDate) {
		tx.Rollback()
		return nil, models.NewValidationError("match_date predates the team's latest match")
	}

	match := models.Match{
		TeamID:    req.TeamID,
		SquadAID:  req.SquadAID,
		SquadBID:  req.SquadBID,
		ScoreA:    req.ScoreA,
		ScoreB:    req.ScoreB,
		Weight:    weight,
		MatchDate: matchDate,
	}
	if err := tx.Create(&match).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	inputsA, err := s.collectInputs(tx, req.TeamID, req.SquadA)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	inputsB, err := s.collectInputs(tx, req.TeamID, req.SquadB)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	outA, outB, err := utils.UpdateRatings(inputsA, inputsB, req.ScoreA, req.ScoreB, multiplier)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	aWon := req.ScoreA > req.ScoreB
	if err := s.writeSide(tx, &match, match.SquadAID, req.SquadA, inputsA, outA, aWon); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.writeSide(tx, &match, match.SquadBID, req.SquadB, inputsB, outB, !aWon); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetMatchByID(match.ID)
}

// writeSide persists one roster's participation rows and live ratings.
func (s *MatchService) writeSide(tx *gorm.DB, match *models.Match, squadID uint, roster []uint, before, after []models.RatingSnapshot, won bool) error {
	for i, playerID := range roster {
		participation := models.MatchParticipation{
			MatchID:  match.ID,
			PlayerID: playerID,
			TeamID:   match.TeamID,
			SquadID:  squadID,
			IsWinner: won,
			Before:   before[i],
			After:    after[i],
		}
		if err := tx.Create(&participation).Error; err != nil {
			return err
		}
		if err := s.ratings.saveSnapshot(tx, match.TeamID, playerID, after[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *MatchService) collectInputs(tx *gorm.DB, teamID uint, roster []uint) ([]models.RatingSnapshot, error) {
	inputs := make([]models.RatingSnapshot, len(roster))
	for i, playerID := range roster {
		snap, err := s.ratings.getOrCreateSnapshot(tx, teamID, playerID)
		if err != nil {
			return nil, err
		}
		inputs[i] = snap
	}
	return inputs, nil
}

func (s *MatchService) resolveSquad(teamID, squadID uint) (*models.Squad, error) {
	var squad models.Squad
	if err := s.db.First(&squad, squadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("squad", squadID)
		}
		return nil, err
	}
	if squad.TeamID != teamID {
		return nil, models.NewValidationError("squad %d does not belong to team %d", squadID, teamID)
	}
	return &squad, nil
}

func (s *MatchService) verifyPlayersExist(playerIDs []uint) error {
	var players []models.Player
	if err := s.db.Where("id IN ?", playerIDs).Find(&players).Error; err != nil {
		return err
	}
	known := make(map[uint]bool, len(players))
	for _, p := range players {
		known[p.ID] = true
	}
	for _, id := range playerIDs {
		if !known[id] {
			return models.NewNotFoundError("player", id)
		}
	}
	return nil
}

func (s *MatchService) GetMatchByID(id uint) (*models.Match, error) {
	var match models.Match
	err := s.db.Preload("Team").
		Preload("SquadA").
		Preload("SquadB").
		Preload("Participations").
		Preload("Participations.Player").
		First(&match, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("match", id)
		}
		return nil, err
	}
	return &match, nil
}

func (s *MatchService) GetRecentMatches(limit int) ([]models.Match, error) {
	var matches []models.Match
	result := s.db.Order("match_date DESC, id DESC").
		Limit(limit).
		Preload("Team").
		Preload("SquadA").
		Preload("SquadB").
		Find(&matches)
	if result.Error != nil {
		return nil, result.Error
	}
	return matches, nil
}

type MatchFilters struct {
	TeamID   *uint      `json:"team_id,omitempty"`
	PlayerID *uint      `json:"player_id,omitempty"`
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`
	Page     int        `json:"page"`
	PerPage  int        `json:"per_page"`
}

func (s *MatchService) GetMatches(filters MatchFilters) (*models.PaginatedMatchResponse, error) {
	var matches []models.Match
	var total int64

	query := s.db.Model(&models.Match{})

	if filters.TeamID != nil {
		query = query.Where("team_id = ?", *filters.TeamID)
	}
	if filters.PlayerID != nil {
		query = query.Where(
			"id IN (?)",
			s.db.Model(&models.MatchParticipation{}).Select("match_id").Where("player_id = ?", *filters.PlayerID),
		)
	}
	if filters.DateFrom != nil {
		query = query.Where("match_date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		dateTo := filters.DateTo.Add(24 * time.Hour)
		query = query.Where("match_date < ?", dateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (filters.Page - 1) * filters.PerPage
	result := query.
		Offset(offset).
		Limit(filters.PerPage).
		Order("match_date DESC, id DESC").
		Preload("Team").
		Preload("SquadA").
		Preload("SquadB").
		Find(&matches)
	if result.Error != nil {
		return nil, result.Error
	}

	totalPages := int((total + int64(filters.PerPage) - 1) / int64(filters.PerPage))

	return &models.PaginatedMatchResponse{
		Data:       matches,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PerPage,
		TotalPages: totalPages,
	}, nil
}

// GetMatchParticipations exposes the per-match ledger rows.
func (s *MatchService) GetMatchParticipations(matchID uint) ([]models.MatchParticipation, error) {
	if _, err := s.GetMatchByID(matchID); err != nil {
		return nil, err
	}

	var participations []models.MatchParticipation
	result := s.db.Where("match_id = ?", matchID).
		Order("squad_id ASC, player_id ASC").
		Preload("Player").
		Preload("Squad").
		Find(&participations)
	if result.Error != nil {
		return nil, result.Error
	}
	return participations, nil
}

func validateRosters(squadA, squadB []uint) error {
	if len(squadA) == 0 || len(squadB) == 0 {
		return models.NewValidationError("both squads need at least one player")
	}
	seen := make(map[uint]string, len(squadA)+len(squadB))
	for _, id := range squadA {
		if seen[id] != "" {
			return models.NewValidationError("player %d appears twice in squad A", id)
		}
		seen[id] = "A"
	}
	for _, id := range squadB {
		switch seen[id] {
		case "A":
			return models.NewValidationError("player %d appears in both squads", id)
		case "B":
			return models.NewValidationError("player %d appears twice in squad B", id)
		}
		seen[id] = "B"
	}
	return nil
}

func validateScores(scoreA, scoreB int) error {
	if scoreA < 0 || scoreB < 0 {
		return models.NewValidationError("scores must not be negative")
	}
	if scoreA == scoreB {
		return models.NewValidationError("tied scores are not supported")
	}
	return nil
}
