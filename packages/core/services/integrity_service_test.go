package services

import (
	"testing"
	"time"

	"core/models"
)

func TestAuditTeamCleanHistory(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 4)
	matchSvc := NewMatchService(db)

	submitMatch(t, matchSvc, tt, tt.ids(0, 1), tt.ids(2, 3), 21, 10, testBaseDate)
	submitMatch(t, matchSvc, tt, tt.ids(0, 2), tt.ids(1, 3), 9, 15, testBaseDate.Add(time.Hour))

	report, err := NewIntegrityService(db).AuditTeam(tt.team.ID)
	if err != nil {
		t.Fatalf("AuditTeam: %v", err)
	}
	if !report.OK() {
		t.Fatalf("unexpected violations: %+v", report.Violations)
	}
	if report.PlayersChecked != 4 {
		t.Errorf("players checked = %d, want 4", report.PlayersChecked)
	}
}

func TestAuditTeamDetectsDivergedLiveRow(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 4)
	matchSvc := NewMatchService(db)

	submitMatch(t, matchSvc, tt, tt.ids(0, 1), tt.ids(2, 3), 21, 10, testBaseDate)

	// Corrupt one live rating row behind the ledger's back.
	err := db.Model(&models.PlayerTeamRating{}).
		Where("player_id = ? AND team_id = ?", tt.players[0].ID, tt.team.ID).
		Update("elo", 9000).Error
	if err != nil {
		t.Fatalf("corrupt rating row: %v", err)
	}

	report, err := NewIntegrityService(db).AuditTeam(tt.team.ID)
	if err != nil {
		t.Fatalf("AuditTeam: %v", err)
	}
	if report.OK() {
		t.Fatal("expected a violation for the diverged live row")
	}
	found := false
	for _, v := range report.Violations {
		if v.PlayerID == tt.players[0].ID {
			found = true
		}
	}
	if !found {
		t.Errorf("violation does not name the corrupted player: %+v", report.Violations)
	}
}

func TestAuditTeamDetectsBrokenChain(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 4)
	matchSvc := NewMatchService(db)

	m1 := submitMatch(t, matchSvc, tt, tt.ids(0, 1), tt.ids(2, 3), 21, 10, testBaseDate)
	submitMatch(t, matchSvc, tt, tt.ids(0, 1), tt.ids(2, 3), 8, 15, testBaseDate.Add(time.Hour))

	// Tamper with an intermediate after snapshot so it no longer links to the
	// next match's before snapshot.
	err := db.Model(&models.MatchParticipation{}).
		Where("match_id = ? AND player_id = ?", m1.ID, tt.players[0].ID).
		Update("after_elo", 1).Error
	if err != nil {
		t.Fatalf("tamper with ledger: %v", err)
	}

	report, err := NewIntegrityService(db).AuditTeam(tt.team.ID)
	if err != nil {
		t.Fatalf("AuditTeam: %v", err)
	}
	if report.OK() {
		t.Fatal("expected a chain violation")
	}
}

func TestAuditTeamDetectsWrongWinPercent(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 4)
	matchSvc := NewMatchService(db)

	m1 := submitMatch(t, matchSvc, tt, tt.ids(0, 1), tt.ids(2, 3), 21, 10, testBaseDate)

	// A 1-0 record stores 100; rewrite it so it disagrees with the record.
	err := db.Model(&models.MatchParticipation{}).
		Where("match_id = ? AND player_id = ?", m1.ID, tt.players[0].ID).
		Update("after_win_percent", 50).Error
	if err != nil {
		t.Fatalf("tamper with ledger: %v", err)
	}

	report, err := NewIntegrityService(db).AuditTeam(tt.team.ID)
	if err != nil {
		t.Fatalf("AuditTeam: %v", err)
	}
	found := false
	for _, v := range report.Violations {
		if v.PlayerID == tt.players[0].ID && v.MatchID == m1.ID && v.Detail == "win percent does not match the win/loss record" {
			found = true
		}
	}
	if !found {
		t.Errorf("no win percent violation reported: %+v", report.Violations)
	}
}

func TestAuditAllTeams(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 4)
	matchSvc := NewMatchService(db)

	submitMatch(t, matchSvc, tt, tt.ids(0, 1), tt.ids(2, 3), 21, 10, testBaseDate)

	reports, err := NewIntegrityService(db).AuditAllTeams()
	if err != nil {
		t.Fatalf("AuditAllTeams: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	if !reports[0].OK() {
		t.Errorf("unexpected violations: %+v", reports[0].Violations)
	}
}
