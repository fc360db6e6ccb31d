package services

import (
	"testing"
	"time"

	"core/models"
)

func TestGetStats(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 4)
	matchSvc := NewMatchService(db)
	editSvc := NewMatchEditService(db, matchSvc)
	statsSvc := NewStatsService(db)

	recent := time.Now().Add(-time.Hour)
	m1 := submitMatch(t, matchSvc, tt, tt.ids(0, 1), tt.ids(2, 3), 21, 10, recent)

	if _, err := editSvc.EditMatch(m1.ID, models.EditMatchRequest{
		SquadA: tt.ids(0, 1),
		SquadB: tt.ids(2, 3),
		ScoreA: 10,
		ScoreB: 21,
	}); err != nil {
		t.Fatalf("EditMatch: %v", err)
	}

	stats, err := statsSvc.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalPlayers != 4 {
		t.Errorf("total players = %d, want 4", stats.TotalPlayers)
	}
	if stats.TotalTeams != 1 {
		t.Errorf("total teams = %d, want 1", stats.TotalTeams)
	}
	if stats.TotalMatches != 1 {
		t.Errorf("total matches = %d, want 1", stats.TotalMatches)
	}
	if stats.MatchesLast7Days != 1 {
		t.Errorf("matches last 7 days = %d, want 1", stats.MatchesLast7Days)
	}
	if stats.EditsLast7Days != 1 {
		t.Errorf("edits last 7 days = %d, want 1", stats.EditsLast7Days)
	}
}
