package services

import (
	"fmt"
	"testing"
	"time"

	"core/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Player{},
		&models.Team{},
		&models.Squad{},
		&models.PlayerTeamRating{},
		&models.Match{},
		&models.MatchParticipation{},
		&models.MatchEditRecord{},
		&models.MatchEditRecordPlayer{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

type testTeam struct {
	team    models.Team
	squadA  models.Squad
	squadB  models.Squad
	players []models.Player
}

func seedTeam(t *testing.T, db *gorm.DB, playerCount int) *testTeam {
	t.Helper()

	tt := &testTeam{
		team: models.Team{Name: "Test Team", Slug: "test-team"},
	}
	if err := db.Create(&tt.team).Error; err != nil {
		t.Fatalf("create team: %v", err)
	}

	tt.squadA = models.Squad{TeamID: tt.team.ID, Name: "Red"}
	tt.squadB = models.Squad{TeamID: tt.team.ID, Name: "Blue"}
	if err := db.Create(&tt.squadA).Error; err != nil {
		t.Fatalf("create squad A: %v", err)
	}
	if err := db.Create(&tt.squadB).Error; err != nil {
		t.Fatalf("create squad B: %v", err)
	}

	for i := 0; i < playerCount; i++ {
		player := models.Player{Name: fmt.Sprintf("player-%d", i+1)}
		if err := db.Create(&player).Error; err != nil {
			t.Fatalf("create player: %v", err)
		}
		tt.players = append(tt.players, player)
	}

	return tt
}

func (tt *testTeam) ids(indexes ...int) []uint {
	out := make([]uint, len(indexes))
	for i, idx := range indexes {
		out[i] = tt.players[idx].ID
	}
	return out
}

func submitMatch(t *testing.T, svc *MatchService, tt *testTeam, rosterA, rosterB []uint, scoreA, scoreB int, date time.Time) *models.Match {
	t.Helper()

	match, err := svc.SubmitMatch(models.CreateMatchRequest{
		TeamID:    tt.team.ID,
		SquadAID:  tt.squadA.ID,
		SquadBID:  tt.squadB.ID,
		SquadA:    rosterA,
		SquadB:    rosterB,
		ScoreA:    scoreA,
		ScoreB:    scoreB,
		MatchDate: &date,
	})
	if err != nil {
		t.Fatalf("submit match: %v", err)
	}
	return match
}

func liveRating(t *testing.T, db *gorm.DB, teamID, playerID uint) models.RatingSnapshot {
	t.Helper()

	var row models.PlayerTeamRating
	err := db.Where("player_id = ? AND team_id = ?", playerID, teamID).First(&row).Error
	if err != nil {
		t.Fatalf("load live rating for player %d: %v", playerID, err)
	}
	return row.RatingSnapshot
}

func participationFor(t *testing.T, db *gorm.DB, matchID, playerID uint) models.MatchParticipation {
	t.Helper()

	var p models.MatchParticipation
	err := db.Where("match_id = ? AND player_id = ?", matchID, playerID).First(&p).Error
	if err != nil {
		t.Fatalf("load participation match=%d player=%d: %v", matchID, playerID, err)
	}
	return p
}

var testBaseDate = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
