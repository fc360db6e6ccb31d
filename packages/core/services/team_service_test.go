package services

import (
	"errors"
	"testing"

	"core/models"
)

func TestCreateTeamGeneratesUniqueSlugs(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	first, err := svc.CreateTeam(models.CreateTeamRequest{Name: "Lyon Ultimate"})
	if err != nil {
		t.Fatalf("create first team: %v", err)
	}
	second, err := svc.CreateTeam(models.CreateTeamRequest{Name: "Lyon Ultimate"})
	if err != nil {
		t.Fatalf("create second team: %v", err)
	}

	if first.Slug != "lyon-ultimate" {
		t.Errorf("first slug = %q, want %q", first.Slug, "lyon-ultimate")
	}
	if second.Slug == first.Slug {
		t.Errorf("slugs collide: %q", second.Slug)
	}
	if second.Slug != "lyon-ultimate-2" {
		t.Errorf("second slug = %q, want %q", second.Slug, "lyon-ultimate-2")
	}
}

func TestCreateTeamRejectsEmptyName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	_, err := svc.CreateTeam(models.CreateTeamRequest{})
	var validationErr *models.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateSquadForUnknownTeam(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	_, err := svc.CreateSquad(123, models.CreateSquadRequest{Name: "Red"})
	var notFoundErr *models.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestGetTeamSquads(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeamService(db)

	team, err := svc.CreateTeam(models.CreateTeamRequest{Name: "Grenoble"})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	for _, name := range []string{"Zulu", "Alpha"} {
		if _, err := svc.CreateSquad(team.ID, models.CreateSquadRequest{Name: name}); err != nil {
			t.Fatalf("create squad %q: %v", name, err)
		}
	}

	squads, err := svc.GetTeamSquads(team.ID)
	if err != nil {
		t.Fatalf("GetTeamSquads: %v", err)
	}
	if len(squads) != 2 {
		t.Fatalf("expected 2 squads, got %d", len(squads))
	}
	if squads[0].Name != "Alpha" || squads[1].Name != "Zulu" {
		t.Errorf("squads not ordered by name: %q, %q", squads[0].Name, squads[1].Name)
	}
}
