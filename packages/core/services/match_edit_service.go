package services

import (
	"errors"
	"log"

	"core/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchEditService orchestrates retroactive corrections: it captures the
// pre-mutation state into an edit record, applies the structural change and
// drives the cascade over the affected tail, all inside one transaction
// under the team lock.
type MatchEditService struct {
	db      *gorm.DB
	matches *MatchService
	ratings *RatingService
	cascade *CascadeService
}

func NewMatchEditService(db *gorm.DB, matches *MatchService) *MatchEditService {
	ratings := NewRatingService(db)
	return &MatchEditService{
		db:      db,
		matches: matches,
		ratings: ratings,
		cascade: NewCascadeService(ratings),
	}
}

// EditMatch rewrites a historical match's rosters, scores and weight, then
// replays every match from that point on. Players edited off the roster who
// never appear again revert to their pre-match state.
func (s *MatchEditService) EditMatch(matchID uint, req models.EditMatchRequest) (*models.Match, error) {
	weight := req.Weight
	if weight == "" {
		weight = models.WeightStandard
	}
	if _, ok := models.WeightMultiplier(weight); !ok {
		return nil, models.NewValidationError("unknown match weight %q", weight)
	}
	if err := validateRosters(req.SquadA, req.SquadB); err != nil {
		return nil, err
	}
	if err := validateScores(req.ScoreA, req.ScoreB); err != nil {
		return nil, err
	}

	if err := s.matches.verifyPlayersExist(append(append([]uint{}, req.SquadA...), req.SquadB...)); err != nil {
		return nil, err
	}

	teamID, err := s.matchTeamID(matchID)
	if err != nil {
		return nil, err
	}
	release, err := ratingLocks.Acquire(teamID)
	if err != nil {
		return nil, err
	}
	defer release()

	// The snapshots read here seed the replay baseline, so the load must
	// happen under the team lock: a cascade committing in between would
	// leave us replaying from pre-correction state.
	match, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := s.captureEditRecord(tx, match, models.EditActionEdited); err != nil {
		tx.Rollback()
		return nil, err
	}

	// The edit record's before snapshots are the deterministic baseline for
	// everyone who was on the match before the mutation.
	baseline := make(map[uint]models.RatingSnapshot, len(match.Participations))
	for _, p := range match.Participations {
		baseline[p.PlayerID] = p.Before
	}

	match.ScoreA = req.ScoreA
	match.ScoreB = req.ScoreB
	match.Weight = weight
	if err := tx.Omit(clause.Associations).Save(match).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Replace the participation rows with roster-only rows for the new
	// lineup; the cascade fills their snapshots.
	if err := tx.Unscoped().Where("match_id = ?", match.ID).Delete(&models.MatchParticipation{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.createRosterRows(tx, match, match.SquadAID, req.SquadA); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.createRosterRows(tx, match, match.SquadBID, req.SquadB); err != nil {
		tx.Rollback()
		return nil, err
	}

	result, err := s.cascade.Run(tx, match.TeamID, match, true, baseline)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := s.revertUntouched(tx, match.TeamID, baseline, result.Touched); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	log.Printf("edit: match %d replayed %d matches, %d players touched", match.ID, result.MatchesProcessed, len(result.Touched))
	return s.matches.GetMatchByID(match.ID)
}

// DeleteMatch removes a match from history. With no later team match the
// participants simply revert to the match's own before snapshots; otherwise
// every later match is replayed from those snapshots first.
func (s *MatchEditService) DeleteMatch(matchID uint) error {
	teamID, err := s.matchTeamID(matchID)
	if err != nil {
		return err
	}
	release, err := ratingLocks.Acquire(teamID)
	if err != nil {
		return err
	}
	defer release()

	// Baseline snapshots must be read under the team lock, same as EditMatch.
	match, err := s.loadMatch(matchID)
	if err != nil {
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := s.captureEditRecord(tx, match, models.EditActionDeleted); err != nil {
		tx.Rollback()
		return err
	}

	baseline := make(map[uint]models.RatingSnapshot, len(match.Participations))
	for _, p := range match.Participations {
		baseline[p.PlayerID] = p.Before
	}

	var laterCount int64
	err = tx.Model(&models.Match{}).
		Where("team_id = ?", match.TeamID).
		Where("match_date > ? OR (match_date = ? AND id > ?)", match.MatchDate, match.MatchDate, match.ID).
		Count(&laterCount).Error
	if err != nil {
		tx.Rollback()
		return err
	}

	touched := map[uint]models.RatingSnapshot{}
	if laterCount > 0 {
		result, err := s.cascade.Run(tx, match.TeamID, match, false, baseline)
		if err != nil {
			tx.Rollback()
			return err
		}
		touched = result.Touched
		log.Printf("delete: match %d cascade replayed %d matches", match.ID, result.MatchesProcessed)
	}

	if err := s.revertUntouched(tx, match.TeamID, baseline, touched); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("match_id = ?", match.ID).Delete(&models.MatchParticipation{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(match).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// matchTeamID resolves which team's lock an edit must take. Only the
// immutable team reference is read here; everything the replay depends on
// is loaded again once the lock is held.
func (s *MatchEditService) matchTeamID(matchID uint) (uint, error) {
	var match models.Match
	if err := s.db.Select("id", "team_id").First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, models.NewNotFoundError("match", matchID)
		}
		return 0, err
	}
	return match.TeamID, nil
}

func (s *MatchEditService) loadMatch(matchID uint) (*models.Match, error) {
	var match models.Match
	err := s.db.Preload("Participations").First(&match, matchID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("match", matchID)
		}
		return nil, err
	}
	return &match, nil
}

// captureEditRecord copies the match row and its participation snapshots
// verbatim before any mutation touches them.
func (s *MatchEditService) captureEditRecord(tx *gorm.DB, match *models.Match, action string) error {
	record := models.MatchEditRecord{
		MatchID:       match.ID,
		TeamID:        match.TeamID,
		Action:        action,
		PrevSquadAID:  match.SquadAID,
		PrevSquadBID:  match.SquadBID,
		PrevScoreA:    match.ScoreA,
		PrevScoreB:    match.ScoreB,
		PrevWeight:    match.Weight,
		PrevMatchDate: match.MatchDate,
	}
	if err := tx.Create(&record).Error; err != nil {
		return err
	}

	for _, p := range match.Participations {
		player := models.MatchEditRecordPlayer{
			EditRecordID: record.ID,
			PlayerID:     p.PlayerID,
			SquadID:      p.SquadID,
			IsWinner:     p.IsWinner,
			Before:       p.Before,
			After:        p.After,
		}
		if err := tx.Create(&player).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *MatchEditService) createRosterRows(tx *gorm.DB, match *models.Match, squadID uint, roster []uint) error {
	for _, playerID := range roster {
		row := models.MatchParticipation{
			MatchID:  match.ID,
			PlayerID: playerID,
			TeamID:   match.TeamID,
			SquadID:  squadID,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// revertUntouched restores the live rating rows of baseline players the
// cascade never reached (edited off the roster, or participants of a
// deleted terminal match).
func (s *MatchEditService) revertUntouched(tx *gorm.DB, teamID uint, baseline, touched map[uint]models.RatingSnapshot) error {
	for playerID, snap := range baseline {
		if _, ok := touched[playerID]; ok {
			continue
		}
		if err := s.ratings.saveSnapshot(tx, teamID, playerID, snap); err != nil {
			return err
		}
	}
	return nil
}
