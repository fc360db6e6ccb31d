package services

import (
	"errors"
	"testing"

	"core/models"
)

func TestTeamLockSerializesPerTeam(t *testing.T) {
	release, err := ratingLocks.Acquire(71)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	if _, err := ratingLocks.Acquire(71); !errors.Is(err, models.ErrTeamBusy) {
		t.Fatalf("second acquire: expected ErrTeamBusy, got %v", err)
	}

	// Other teams are unaffected.
	otherRelease, err := ratingLocks.Acquire(72)
	if err != nil {
		t.Fatalf("acquire other team: %v", err)
	}
	otherRelease()

	release()

	release, err = ratingLocks.Acquire(71)
	if err != nil {
		t.Fatalf("reacquire after release: %v", err)
	}
	release()
}
