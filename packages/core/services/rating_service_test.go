package services

import (
	"errors"
	"testing"
	"time"

	"core/models"
)

func TestGetTeamLeaderboardOrdering(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 4)
	matchSvc := NewMatchService(db)
	ratingSvc := NewRatingService(db)

	submitMatch(t, matchSvc, tt, tt.ids(0, 1), tt.ids(2, 3), 21, 10, testBaseDate)
	submitMatch(t, matchSvc, tt, tt.ids(0, 2), tt.ids(1, 3), 15, 9, testBaseDate.Add(time.Hour))

	leaderboard, err := ratingSvc.GetTeamLeaderboard(tt.team.ID)
	if err != nil {
		t.Fatalf("GetTeamLeaderboard: %v", err)
	}
	if len(leaderboard) != 4 {
		t.Fatalf("expected 4 leaderboard rows, got %d", len(leaderboard))
	}
	for i := 1; i < len(leaderboard); i++ {
		if leaderboard[i].Elo > leaderboard[i-1].Elo {
			t.Errorf("leaderboard not sorted: row %d elo %d above row %d elo %d",
				i, leaderboard[i].Elo, i-1, leaderboard[i-1].Elo)
		}
	}
	// Player 1 won both matches and tops the board.
	if leaderboard[0].PlayerID != tt.players[0].ID {
		t.Errorf("expected player %d on top, got %d", tt.players[0].ID, leaderboard[0].PlayerID)
	}
}

func TestGetTeamLeaderboardUnknownTeam(t *testing.T) {
	db := setupTestDB(t)
	ratingSvc := NewRatingService(db)

	_, err := ratingSvc.GetTeamLeaderboard(99)
	var notFoundErr *models.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestGetPlayerRatingsAcrossTeams(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 4)
	matchSvc := NewMatchService(db)
	ratingSvc := NewRatingService(db)

	// Same player on a second team.
	second := models.Team{Name: "Second", Slug: "second"}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("create team: %v", err)
	}
	squadC := models.Squad{TeamID: second.ID, Name: "C"}
	squadD := models.Squad{TeamID: second.ID, Name: "D"}
	if err := db.Create(&squadC).Error; err != nil {
		t.Fatalf("create squad: %v", err)
	}
	if err := db.Create(&squadD).Error; err != nil {
		t.Fatalf("create squad: %v", err)
	}

	submitMatch(t, matchSvc, tt, tt.ids(0, 1), tt.ids(2, 3), 21, 10, testBaseDate)
	date := testBaseDate
	if _, err := matchSvc.SubmitMatch(models.CreateMatchRequest{
		TeamID:    second.ID,
		SquadAID:  squadC.ID,
		SquadBID:  squadD.ID,
		SquadA:    tt.ids(0, 2),
		SquadB:    tt.ids(1, 3),
		ScoreA:    5,
		ScoreB:    15,
		MatchDate: &date,
	}); err != nil {
		t.Fatalf("submit second-team match: %v", err)
	}

	ratings, err := ratingSvc.GetPlayerRatings(tt.players[0].ID)
	if err != nil {
		t.Fatalf("GetPlayerRatings: %v", err)
	}
	if len(ratings) != 2 {
		t.Fatalf("expected 2 rating rows, got %d", len(ratings))
	}

	// Ratings are independent per team: a win on one, a loss on the other.
	byTeam := map[uint]models.RatingSnapshot{}
	for _, r := range ratings {
		byTeam[r.TeamID] = r.RatingSnapshot
	}
	if byTeam[tt.team.ID].Wins != 1 || byTeam[tt.team.ID].Losses != 0 {
		t.Errorf("first team record = %d-%d, want 1-0", byTeam[tt.team.ID].Wins, byTeam[tt.team.ID].Losses)
	}
	if byTeam[second.ID].Wins != 0 || byTeam[second.ID].Losses != 1 {
		t.Errorf("second team record = %d-%d, want 0-1", byTeam[second.ID].Wins, byTeam[second.ID].Losses)
	}
}
