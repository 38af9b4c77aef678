package job

import (
	"fmt"
)

// Status represents the lifecycle state of a freight job.
// It implements a state machine with defined transitions to ensure
// jobs follow the correct business workflow.
//
// State transitions:
//
//	Open ──> Requested ──> Assigned ──> PickedUp ──> Delivered ──> Paid
//
// The sequence is strictly monotonic; no transition skips a state and
// Paid is a terminal state with no outgoing transitions.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Open is the initial status when a job is first posted.
	// Jobs in this status are visible to matching and backhaul pairing.
	Open

	// Requested indicates a carrier has claimed the job and holds a
	// time-boxed lock while a dispatcher confirms the assignment.
	Requested

	// Assigned indicates a dispatcher has confirmed the requesting carrier.
	Assigned

	// PickedUp indicates the assigned carrier has collected the load.
	PickedUp

	// Delivered indicates the load has reached its destination.
	Delivered

	// Paid indicates the job has been settled. This is a terminal state.
	Paid
)

// getStatusStrings returns a map of Status values to their string representations.
// The tokens match the status column values used by the job store and the HTTP API.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Open:      "open",
		Requested: "requested",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		Delivered: "delivered",
		Paid:      "paid",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Open:      "open",
		Requested: "requested",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		Delivered: "delivered",
		Paid:      "paid",
	}
}

// ParseStatus converts a raw string token into a Status.
// Returns ErrInvalidStateTransition-unrelated validation failure for unknown tokens,
// so callers can reject malformed input before touching the state machine.
func ParseStatus(s string) (Status, error) {
	for status, token := range getValidStatusStrings() {
		if token == s {
			return status, nil
		}
	}
	return Unknown, fmt.Errorf("unknown job status %q", s)
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Open, Requested, Assigned, PickedUp, Delivered, Paid.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return fmt.Errorf("%d is not a valid job status", s)
	}
	return nil
}

// String returns the persistence/API token of the status.
//
// Returns "unknown" for invalid status values. This method implements the
// fmt.Stringer interface and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == Paid
}

// Next returns the only status that may follow s in the lifecycle,
// or Unknown if s is terminal or invalid.
func (s Status) Next() Status {
	switch s {
	case Open:
		return Requested
	case Requested:
		return Assigned
	case Assigned:
		return PickedUp
	case PickedUp:
		return Delivered
	case Delivered:
		return Paid
	default:
		return Unknown
	}
}

// CanTransitionTo reports whether moving from s to target is permitted by the
// state machine. The lifecycle is a single forward chain, so only the
// immediate successor is ever allowed.
func (s Status) CanTransitionTo(target Status) bool {
	next := s.Next()
	return next != Unknown && next == target
}

// Request transitions the status to Requested.
//
// Valid transitions:
//   - Open -> Requested (carrier claims the job)
//
// Returns:
//   - (Requested, nil) on valid transition
//   - (0, error) wrapping ErrInvalidJobState if the job is not Open
func (s Status) Request() (Status, error) {
	if s != Open {
		return 0, fmt.Errorf("%w: job is %s, expected %s", ErrInvalidJobState, s, Open)
	}

	return Requested, nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Requested -> Assigned (dispatcher confirms the claim)
//
// Returns:
//   - (Assigned, nil) on valid transition
//   - (0, error) wrapping ErrInvalidStateTransition otherwise
func (s Status) Assign() (Status, error) {
	if s != Requested {
		return 0, s.transitionError(Assigned)
	}

	return Assigned, nil
}

// PickUp transitions the status to PickedUp.
//
// Valid transitions:
//   - Assigned -> PickedUp (carrier collects the load)
//
// Returns:
//   - (PickedUp, nil) on valid transition
//   - (0, error) wrapping ErrInvalidStateTransition otherwise
func (s Status) PickUp() (Status, error) {
	if s != Assigned {
		return 0, s.transitionError(PickedUp)
	}

	return PickedUp, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - PickedUp -> Delivered (load reaches its destination)
//
// Returns:
//   - (Delivered, nil) on valid transition
//   - (0, error) wrapping ErrInvalidStateTransition otherwise
func (s Status) Deliver() (Status, error) {
	if s != PickedUp {
		return 0, s.transitionError(Delivered)
	}

	return Delivered, nil
}

// Pay transitions the status to Paid, the terminal state.
//
// Valid transitions:
//   - Delivered -> Paid (settlement complete)
//
// Returns:
//   - (Paid, nil) on valid transition
//   - (0, error) wrapping ErrInvalidStateTransition otherwise
func (s Status) Pay() (Status, error) {
	if s != Delivered {
		return 0, s.transitionError(Paid)
	}

	return Paid, nil
}

func (s Status) transitionError(target Status) error {
	return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidStateTransition, s, target)
}
