package services

import (
	"sync"

	"core/models"
)

// ratingLocks serializes every rating mutation (submission, edit, delete)
// per team. Cascades on different teams are independent; two cascades on
// the same team would interleave reads and writes of the same rating rows.
var ratingLocks = &teamLockRegistry{}

type teamLockRegistry struct {
	locks sync.Map // teamID -> *sync.Mutex
}

// Acquire takes the team's lock without blocking. Callers must invoke the
// returned release func once their transaction is finished.
func (r *teamLockRegistry) Acquire(teamID uint) (func(), error) {
	v, _ := r.locks.LoadOrStore(teamID, &sync.Mutex{})
	m := v.(*sync.Mutex)
	if !m.TryLock() {
		return nil, models.ErrTeamBusy
	}
	return m.Unlock, nil
}
