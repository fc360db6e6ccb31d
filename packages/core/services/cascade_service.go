package services

import (
	"log"

	"core/models"
	"core/utils"

	"gorm.io/gorm"
)

// CascadeService replays a team's match history from a starting point in
// strictly chronological order, re-deriving every participation snapshot
// through the rating function. The whole replay is an in-memory fold over
// data loaded once up front; persistence happens through the caller's
// transaction, so a failed cascade leaves no partial state behind.
type CascadeService struct {
	ratings *RatingService
}

func NewCascadeService(ratings *RatingService) *CascadeService {
	return &CascadeService{
		ratings: ratings,
	}
}

type CascadeResult struct {
	MatchesProcessed int
	// Touched maps every replayed player to their terminal state, already
	// written to the live rating rows.
	Touched map[uint]models.RatingSnapshot
}

// Run replays the team's matches starting at `start` (inclusive when
// includeStart is set, otherwise strictly later matches only), seeded with
// the supplied baseline states. Players first encountered mid-cascade are
// resolved through the fallback tiers. Terminal states are bulk-written to
// the live rating rows before returning.
func (s *CascadeService) Run(tx *gorm.DB, teamID uint, start *models.Match, includeStart bool, baseline map[uint]models.RatingSnapshot) (*CascadeResult, error) {
	matches, partsByMatch, err := s.loadTail(tx, teamID, start, includeStart)
	if err != nil {
		return nil, err
	}

	running := make(map[uint]models.RatingSnapshot, len(baseline))
	for playerID, snap := range baseline {
		running[playerID] = snap
	}
	touched := make(map[uint]models.RatingSnapshot)

	for i := range matches {
		match := &matches[i]
		parts := partsByMatch[match.ID]

		var sideA, sideB []*models.MatchParticipation
		for _, p := range parts {
			if p.SquadID == match.SquadAID {
				sideA = append(sideA, p)
			} else {
				sideB = append(sideB, p)
			}
		}

		inputsA, err := s.resolveSide(tx, teamID, sideA, i, matches, partsByMatch, running)
		if err != nil {
			return nil, &models.CascadeError{MatchID: match.ID, Position: i, Err: err}
		}
		inputsB, err := s.resolveSide(tx, teamID, sideB, i, matches, partsByMatch, running)
		if err != nil {
			return nil, &models.CascadeError{MatchID: match.ID, Position: i, Err: err}
		}

		multiplier, ok := models.WeightMultiplier(match.Weight)
		if !ok {
			return nil, &models.CascadeError{MatchID: match.ID, Position: i, Err: models.NewValidationError("unknown match weight %q", match.Weight)}
		}
		outA, outB, err := utils.UpdateRatings(inputsA, inputsB, match.ScoreA, match.ScoreB, multiplier)
		if err != nil {
			return nil, &models.CascadeError{MatchID: match.ID, Position: i, Err: err}
		}

		aWon := match.ScoreA > match.ScoreB
		if err := writeReplayed(tx, sideA, inputsA, outA, aWon, running, touched); err != nil {
			return nil, &models.CascadeError{MatchID: match.ID, Position: i, Err: err}
		}
		if err := writeReplayed(tx, sideB, inputsB, outB, !aWon, running, touched); err != nil {
			return nil, &models.CascadeError{MatchID: match.ID, Position: i, Err: err}
		}
	}

	// Finalizing: the last running value per replayed player becomes the
	// live rating row.
	for playerID, snap := range touched {
		if err := s.ratings.saveSnapshot(tx, teamID, playerID, snap); err != nil {
			return nil, &models.CascadeError{MatchID: 0, Position: len(matches), Err: err}
		}
	}

	return &CascadeResult{
		MatchesProcessed: len(matches),
		Touched:          touched,
	}, nil
}

// loadTail fetches the affected match sequence and its participation rows
// in one pass, ordered by (match_date, id).
func (s *CascadeService) loadTail(tx *gorm.DB, teamID uint, start *models.Match, includeStart bool) ([]models.Match, map[uint][]*models.MatchParticipation, error) {
	idCmp := "matches.id > ?"
	if includeStart {
		idCmp = "matches.id >= ?"
	}

	var matches []models.Match
	err := tx.Where("team_id = ?", teamID).
		Where("match_date > ? OR (match_date = ? AND "+idCmp+")", start.MatchDate, start.MatchDate, start.ID).
		Order("match_date ASC, id ASC").
		Find(&matches).Error
	if err != nil {
		return nil, nil, err
	}

	matchIDs := make([]uint, len(matches))
	for i, m := range matches {
		matchIDs[i] = m.ID
	}

	partsByMatch := make(map[uint][]*models.MatchParticipation, len(matches))
	if len(matchIDs) > 0 {
		var parts []models.MatchParticipation
		if err := tx.Where("match_id IN ?", matchIDs).Order("id ASC").Find(&parts).Error; err != nil {
			return nil, nil, err
		}
		for i := range parts {
			p := &parts[i]
			partsByMatch[p.MatchID] = append(partsByMatch[p.MatchID], p)
		}
	}

	return matches, partsByMatch, nil
}

// resolveSide collects one roster's input states, resolving players absent
// from the running map through the fallback tiers.
func (s *CascadeService) resolveSide(tx *gorm.DB, teamID uint, side []*models.MatchParticipation, idx int, matches []models.Match, partsByMatch map[uint][]*models.MatchParticipation, running map[uint]models.RatingSnapshot) ([]models.RatingSnapshot, error) {
	inputs := make([]models.RatingSnapshot, len(side))
	for i, p := range side {
		state, err := s.resolveBaseline(tx, teamID, p.PlayerID, idx, matches, partsByMatch, running)
		if err != nil {
			return nil, err
		}
		inputs[i] = state
	}
	return inputs, nil
}

// resolveBaseline is the three-tier starting-state policy for a player with
// no explicit baseline: the explicit baseline (running map) first, then the
// player's earliest not-yet-replayed stored snapshot, then the live rating
// row (or a default for a first appearance). Tier three is only sound
// because every rating mutation for the team holds the team lock.
func (s *CascadeService) resolveBaseline(tx *gorm.DB, teamID, playerID uint, idx int, matches []models.Match, partsByMatch map[uint][]*models.MatchParticipation, running map[uint]models.RatingSnapshot) (models.RatingSnapshot, error) {
	if state, ok := running[playerID]; ok {
		return state, nil
	}

	// Earliest participation at or after the current position whose
	// snapshot has not been overwritten yet still holds pre-mutation data.
	for k := idx; k < len(matches); k++ {
		for _, p := range partsByMatch[matches[k].ID] {
			if p.PlayerID == playerID && p.HasSnapshot() {
				log.Printf("cascade: player %d baseline from stored snapshot at match %d", playerID, matches[k].ID)
				running[playerID] = p.Before
				return p.Before, nil
			}
		}
	}

	snap, err := s.ratings.getOrCreateSnapshot(tx, teamID, playerID)
	if err != nil {
		return models.RatingSnapshot{}, err
	}
	log.Printf("cascade: player %d baseline from live rating row", playerID)
	running[playerID] = snap
	return snap, nil
}

// writeReplayed overwrites one side's participation rows and advances the
// running state.
func writeReplayed(tx *gorm.DB, side []*models.MatchParticipation, before, after []models.RatingSnapshot, won bool, running, touched map[uint]models.RatingSnapshot) error {
	for i, p := range side {
		p.Before = before[i]
		p.After = after[i]
		p.IsWinner = won
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		running[p.PlayerID] = after[i]
		touched[p.PlayerID] = after[i]
	}
	return nil
}
