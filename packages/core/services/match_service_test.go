package services

import (
	"errors"
	"testing"
	"time"

	"core/models"
)

func TestSubmitMatchWritesLedgerAndLiveRatings(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 4)
	svc := NewMatchService(db)

	match := submitMatch(t, svc, tt, tt.ids(0, 1), tt.ids(2, 3), 21, 10, testBaseDate)

	if len(match.Participations) != 4 {
		t.Fatalf("expected 4 participations, got %d", len(match.Participations))
	}

	for _, idx := range []int{0, 1} {
		p := participationFor(t, db, match.ID, tt.players[idx].ID)
		if !p.IsWinner {
			t.Errorf("player %d should be a winner", p.PlayerID)
		}
		if p.Before != models.DefaultRatingSnapshot() {
			t.Errorf("player %d before state should be the default, got %+v", p.PlayerID, p.Before)
		}
		if p.After.Elo <= p.Before.Elo {
			t.Errorf("player %d after elo %d not above before elo %d", p.PlayerID, p.After.Elo, p.Before.Elo)
		}
		if live := liveRating(t, db, tt.team.ID, p.PlayerID); live != p.After {
			t.Errorf("player %d live rating diverges from after snapshot", p.PlayerID)
		}
	}
	for _, idx := range []int{2, 3} {
		p := participationFor(t, db, match.ID, tt.players[idx].ID)
		if p.IsWinner {
			t.Errorf("player %d should be a loser", p.PlayerID)
		}
		if p.After.Elo >= p.Before.Elo {
			t.Errorf("player %d after elo %d not below before elo %d", p.PlayerID, p.After.Elo, p.Before.Elo)
		}
		if live := liveRating(t, db, tt.team.ID, p.PlayerID); live != p.After {
			t.Errorf("player %d live rating diverges from after snapshot", p.PlayerID)
		}
	}
}

func TestSubmitMatchRejectsInvalidRequests(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 4)
	svc := NewMatchService(db)

	date := testBaseDate
	base := models.CreateMatchRequest{
		TeamID:    tt.team.ID,
		SquadAID:  tt.squadA.ID,
		SquadBID:  tt.squadB.ID,
		SquadA:    tt.ids(0, 1),
		SquadB:    tt.ids(2, 3),
		ScoreA:    21,
		ScoreB:    10,
		MatchDate: &date,
	}

	cases := []struct {
		name   string
		mutate func(*models.CreateMatchRequest)
	}{
		{"tied scores", func(r *models.CreateMatchRequest) { r.ScoreB = r.ScoreA }},
		{"negative score", func(r *models.CreateMatchRequest) { r.ScoreB = -1 }},
		{"duplicate player in squad", func(r *models.CreateMatchRequest) { r.SquadA = tt.ids(0, 0) }},
		{"player on both squads", func(r *models.CreateMatchRequest) { r.SquadB = tt.ids(1, 3) }},
		{"unknown weight", func(r *models.CreateMatchRequest) { r.Weight = "ranked" }},
		{"same squad twice", func(r *models.CreateMatchRequest) { r.SquadBID = r.SquadAID }},
		{"empty roster", func(r *models.CreateMatchRequest) { r.SquadA = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			_, err := svc.SubmitMatch(req)
			var validationErr *models.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSubmitMatchRejectsUnknownPlayer(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 3)
	svc := NewMatchService(db)

	date := testBaseDate
	_, err := svc.SubmitMatch(models.CreateMatchRequest{
		TeamID:    tt.team.ID,
		SquadAID:  tt.squadA.ID,
		SquadBID:  tt.squadB.ID,
		SquadA:    tt.ids(0, 1),
		SquadB:    []uint{tt.players[2].ID, 9999},
		ScoreA:    21,
		ScoreB:    10,
		MatchDate: &date,
	})

	var notFoundErr *models.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestSubmitMatchRejectsForeignSquad(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 4)
	svc := NewMatchService(db)

	other := models.Team{Name: "Other", Slug: "other"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create team: %v", err)
	}
	foreign := models.Squad{TeamID: other.ID, Name: "Strangers"}
	if err := db.Create(&foreign).Error; err != nil {
		t.Fatalf("create squad: %v", err)
	}

	date := testBaseDate
	_, err := svc.SubmitMatch(models.CreateMatchRequest{
		TeamID:    tt.team.ID,
		SquadAID:  tt.squadA.ID,
		SquadBID:  foreign.ID,
		SquadA:    tt.ids(0, 1),
		SquadB:    tt.ids(2, 3),
		ScoreA:    21,
		ScoreB:    10,
		MatchDate: &date,
	})

	var validationErr *models.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitMatchRejectsBackdating(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 4)
	svc := NewMatchService(db)

	submitMatch(t, svc, tt, tt.ids(0, 1), tt.ids(2, 3), 21, 10, testBaseDate)

	earlier := testBaseDate.Add(-time.Hour)
	_, err := svc.SubmitMatch(models.CreateMatchRequest{
		TeamID:    tt.team.ID,
		SquadAID:  tt.squadA.ID,
		SquadBID:  tt.squadB.ID,
		SquadA:    tt.ids(0, 1),
		SquadB:    tt.ids(2, 3),
		ScoreA:    15,
		ScoreB:    9,
		MatchDate: &earlier,
	})

	var validationErr *models.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for backdated match, got %v", err)
	}
}

func TestSubmitMatchChainsSnapshots(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 4)
	svc := NewMatchService(db)

	m1 := submitMatch(t, svc, tt, tt.ids(0, 1), tt.ids(2, 3), 21, 10, testBaseDate)
	m2 := submitMatch(t, svc, tt, tt.ids(0, 1), tt.ids(2, 3), 8, 15, testBaseDate.Add(time.Hour))

	for _, player := range tt.players {
		p1 := participationFor(t, db, m1.ID, player.ID)
		p2 := participationFor(t, db, m2.ID, player.ID)
		if p1.After != p2.Before {
			t.Errorf("player %d: match %d after != match %d before", player.ID, m1.ID, m2.ID)
		}
	}
}

func TestSubmitMatchWhileTeamLocked(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 4)
	svc := NewMatchService(db)

	release, err := ratingLocks.Acquire(tt.team.ID)
	if err != nil {
		t.Fatalf("acquire team lock: %v", err)
	}
	defer release()

	date := testBaseDate
	_, err = svc.SubmitMatch(models.CreateMatchRequest{
		TeamID:    tt.team.ID,
		SquadAID:  tt.squadA.ID,
		SquadBID:  tt.squadB.ID,
		SquadA:    tt.ids(0, 1),
		SquadB:    tt.ids(2, 3),
		ScoreA:    21,
		ScoreB:    10,
		MatchDate: &date,
	})

	if !errors.Is(err, models.ErrTeamBusy) {
		t.Fatalf("expected ErrTeamBusy, got %v", err)
	}
}

func TestGetMatchesFiltersByPlayer(t *testing.T) {
	db := setupTestDB(t)
	tt := seedTeam(t, db, 6)
	svc := NewMatchService(db)

	m1 := submitMatch(t, svc, tt, tt.ids(0, 1), tt.ids(2, 3), 21, 10, testBaseDate)
	submitMatch(t, svc, tt, tt.ids(4, 5), tt.ids(2, 3), 5, 15, testBaseDate.Add(time.Hour))

	playerID := tt.players[0].ID
	resp, err := svc.GetMatches(MatchFilters{PlayerID: &playerID, Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("GetMatches: %v", err)
	}
	if resp.Total != 1 || len(resp.Data) != 1 {
		t.Fatalf("expected exactly one match for player %d, got %d", playerID, resp.Total)
	}
	if resp.Data[0].ID != m1.ID {
		t.Errorf("expected match %d, got %d", m1.ID, resp.Data[0].ID)
	}
}
