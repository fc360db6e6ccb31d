package models

import (
	"errors"
	"fmt"
)

// ErrTeamBusy is returned when another rating mutation already holds the
// team's serialization lock.
var ErrTeamBusy = errors.New("another rating update is in progress for this team")

// ValidationError reports malformed input (roster, score, weight). It is
// returned before any side effect takes place.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing match, player, team or rating row.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func NewNotFoundError(resource string, id uint) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// CascadeError reports a failure partway through a replay. Position is the
// zero-based index of the failing match within the cascade, so operators can
// tell how far the (rolled back) run got.
type CascadeError struct {
	MatchID  uint
	Position int
	Err      error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascade failed at match %d (position %d): %v", e.MatchID, e.Position, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}
