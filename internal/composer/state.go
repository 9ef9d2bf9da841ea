package composer

import (
	"errors"

	"github.com/dmitrijs2005/giftbox/internal/gift"
)

// State is the composer lifecycle position.
type State int

const (
	StateIdle State = iota
	StateValidating
	StatePersisting
	StateSucceeded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StatePersisting:
		return "persisting"
	case StateSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

var (
	ErrSubmissionPending = errors.New("a submission is already in progress")
	ErrAlreadySucceeded  = errors.New("gift already created; reset to compose another")
)

// Result is a successful submission.
type Result struct {
	Gift *gift.Gift
	Link string
}

// Status is a snapshot for the UI. Err holds the last failure while the
// composer is back in Idle.
type Status struct {
	State     State
	Gift      *gift.Gift
	Link      string
	Err       error
	CanSubmit bool
}
