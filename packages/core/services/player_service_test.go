package services

import (
	"errors"
	"testing"
	"time"

	"core/models"
)

func TestCreatePlayerRejectsEmptyName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPlayerService(db)

	_, err := svc.CreatePlayer(models.CreatePlayerRequest{})
	var validationErr *models.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetAllPlayersPagination(t *testing.T) {
	db := setupTestDB(t)
	seedTeam(t, db, 5)
	svc := NewPlayerService(db)

	resp, err := svc.GetAllPlayers(2, 2)
	if err != nil {
		t.Fatalf("GetAllPlayers: %v", err)
	}
	if resp.Total != 5 {
		t.Errorf("total = %d, want 5", resp.Total)
	}
	if len(resp.Data) != 2 {
		t.Errorf("page size = %d, want 2", len(resp.Data))
	}
	if resp.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", resp.TotalPages)
	}
}

func TestGetPlayerHistoryNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 4)
	matchSvc := NewMatchService(db)
	playerSvc := NewPlayerService(db)

	m1 := submitMatch(t, matchSvc, tt, tt.ids(0, 1), tt.ids(2, 3), 21, 10, testBaseDate)
	m2 := submitMatch(t, matchSvc, tt, tt.ids(0, 1), tt.ids(2, 3), 8, 15, testBaseDate.Add(time.Hour))

	history, err := playerSvc.GetPlayerHistory(tt.players[0].ID, 10)
	if err != nil {
		t.Fatalf("GetPlayerHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
	if history[0].MatchID != m2.ID || history[1].MatchID != m1.ID {
		t.Errorf("history not newest first: %d, %d", history[0].MatchID, history[1].MatchID)
	}
}

func TestGetPlayerHistoryOmitsDeletedMatches(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 4)
	matchSvc := NewMatchService(db)
	editSvc := NewMatchEditService(db, matchSvc)
	playerSvc := NewPlayerService(db)

	m1 := submitMatch(t, matchSvc, tt, tt.ids(0, 1), tt.ids(2, 3), 21, 10, testBaseDate)
	m2 := submitMatch(t, matchSvc, tt, tt.ids(0, 1), tt.ids(2, 3), 8, 15, testBaseDate.Add(time.Hour))

	if err := editSvc.DeleteMatch(m2.ID); err != nil {
		t.Fatalf("DeleteMatch: %v", err)
	}

	history, err := playerSvc.GetPlayerHistory(tt.players[0].ID, 10)
	if err != nil {
		t.Fatalf("GetPlayerHistory: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry after delete, got %d", len(history))
	}
	if history[0].MatchID != m1.ID {
		t.Errorf("expected match %d, got %d", m1.ID, history[0].MatchID)
	}
}
