package fixtures

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"core/models"
	"core/services"

	"gorm.io/gorm"
)

type Fixtures struct {
	db      *gorm.DB
	players *services.PlayerService
	teams   *services.TeamService
	matches *services.MatchService
	edits   *services.MatchEditService
}

func NewFixtures(db *gorm.DB) *Fixtures {
	matchService := services.NewMatchService(db)
	return &Fixtures{
		db:      db,
		players: services.NewPlayerService(db),
		teams:   services.NewTeamService(db),
		matches: matchService,
		edits:   services.NewMatchEditService(db, matchService),
	}
}

// GenerateTestData seeds players, one team with two squads, a chronological
// match history submitted through the real rating path, and one retroactive
// edit so the replay machinery is exercised too.
func (f *Fixtures) GenerateTestData() error {
	log.Println("Starting fixtures generation...")

	players, err := f.generatePlayers()
	if err != nil {
		return fmt.Errorf("failed to generate players: %w", err)
	}

	team, squadA, squadB, err := f.generateTeam()
	if err != nil {
		return fmt.Errorf("failed to generate team: %w", err)
	}

	matches, err := f.generateMatches(players, team, squadA, squadB)
	if err != nil {
		return fmt.Errorf("failed to generate matches: %w", err)
	}

	if err := f.editOneMatch(matches); err != nil {
		return fmt.Errorf("failed to edit a match: %w", err)
	}

	log.Printf("Created %d players, 1 team, %d matches and 1 retroactive edit", len(players), len(matches))
	return nil
}

func (f *Fixtures) generatePlayers() ([]models.Player, error) {
	names := []string{
		"alexandre", "marie", "julien", "sophie", "thomas",
		"camille", "nicolas", "laura", "antoine", "emma",
	}

	players := make([]models.Player, 0, len(names))
	for _, name := range names {
		player, err := f.players.CreatePlayer(models.CreatePlayerRequest{Name: name})
		if err != nil {
			return nil, err
		}
		players = append(players, *player)
	}
	return players, nil
}

func (f *Fixtures) generateTeam() (*models.Team, *models.Squad, *models.Squad, error) {
	team, err := f.teams.CreateTeam(models.CreateTeamRequest{Name: "Lyon Ultimate"})
	if err != nil {
		return nil, nil, nil, err
	}

	squadA, err := f.teams.CreateSquad(team.ID, models.CreateSquadRequest{Name: "Red"})
	if err != nil {
		return nil, nil, nil, err
	}
	squadB, err := f.teams.CreateSquad(team.ID, models.CreateSquadRequest{Name: "Blue"})
	if err != nil {
		return nil, nil, nil, err
	}

	return team, squadA, squadB, nil
}

func (f *Fixtures) generateMatches(players []models.Player, team *models.Team, squadA, squadB *models.Squad) ([]models.Match, error) {
	weights := []string{models.WeightCasual, models.WeightStandard, models.WeightCompetitive}

	var matches []models.Match
	matchDate := time.Now().AddDate(0, 0, -30)

	for i := 0; i < 25; i++ {
		// Shuffle the pool and deal two rosters of 2-4 players each
		pool := make([]uint, 0, len(players))
		for _, p := range players {
			pool = append(pool, p.ID)
		}
		rand.Shuffle(len(pool), func(a, b int) { pool[a], pool[b] = pool[b], pool[a] })

		size := 2 + rand.Intn(3)
		rosterA := pool[:size]
		rosterB := pool[size : 2*size]

		scoreA := 15
		scoreB := rand.Intn(15)
		if rand.Intn(2) == 0 {
			scoreA, scoreB = scoreB, scoreA
		}

		date := matchDate
		match, err := f.matches.SubmitMatch(models.CreateMatchRequest{
			TeamID:    team.ID,
			SquadAID:  squadA.ID,
			SquadBID:  squadB.ID,
			SquadA:    rosterA,
			SquadB:    rosterB,
			ScoreA:    scoreA,
			ScoreB:    scoreB,
			Weight:    weights[rand.Intn(len(weights))],
			MatchDate: &date,
		})
		if err != nil {
			return nil, err
		}
		matches = append(matches, *match)

		matchDate = matchDate.Add(time.Duration(6+rand.Intn(30)) * time.Hour)
	}

	return matches, nil
}

// editOneMatch flips the score of an early match so the seeded data contains
// a replayed tail and an edit record.
func (f *Fixtures) editOneMatch(matches []models.Match) error {
	if len(matches) < 5 {
		return nil
	}

	target, err := f.matches.GetMatchByID(matches[2].ID)
	if err != nil {
		return err
	}

	var rosterA, rosterB []uint
	for _, p := range target.Participations {
		if p.SquadID == target.SquadAID {
			rosterA = append(rosterA, p.PlayerID)
		} else {
			rosterB = append(rosterB, p.PlayerID)
		}
	}

	_, err = f.edits.EditMatch(target.ID, models.EditMatchRequest{
		SquadA: rosterA,
		SquadB: rosterB,
		ScoreA: target.ScoreB,
		ScoreB: target.ScoreA,
		Weight: target.Weight,
	})
	return err
}

// ClearAllData wipes every fixture table, children first.
func (f *Fixtures) ClearAllData() error {
	log.Println("Clearing all fixture data...")

	tables := []string{
		"match_edit_record_players",
		"match_edit_records",
		"match_participations",
		"matches",
		"player_team_ratings",
		"squads",
		"teams",
		"players",
	}

	for _, table := range tables {
		if err := f.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}

	log.Println("All fixture data cleared")
	return nil
}
