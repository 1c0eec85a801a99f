package model

// Status is the booking lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// transitions is the allowed state machine for non-admin actors.
// Cancelled is terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
}

func (s Status) String() string {
	return string(s)
}

// IsValid reports whether s is a known booking status.
func (s Status) IsValid() bool {
	_, ok := transitions[s]

	return ok
}

// IsTerminal reports whether no further transition is allowed from s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// CanTransition reports whether the state machine allows moving from s to target.
// A transition to the current status is not a transition at all and returns false;
// callers treat it as a no-op.
func (s Status) CanTransition(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}

	return false
}
