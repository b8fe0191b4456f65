package order

import (
	"errors"
	"fmt"

	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"
)

var (
	// ErrInvalidStatus is returned when a status string is not a member of the enumeration.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidTransition is returned when the active transition table forbids a move.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Status represents the stage of an order in the kitchen workflow.
//
// Logical flow:
//
//	RECEIVED ──> PREPARING ──> READY ──> COMPLETED
//	    │            │           │
//	    └────────────┴───────────┴──────> CANCELLED
//
// The flow above is descriptive. Which moves are enforced is decided by a
// Transitions table; the nil table accepts any enumerated target.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Received is the initial status of every order.
	Received

	// Preparing means the kitchen started cooking; entering it notifies production.
	Preparing

	// Ready means the order waits for pickup.
	Ready

	// Completed is terminal: the order was handed over.
	Completed

	// Cancelled is terminal: the order will not be produced.
	Cancelled
)

//nolint:gochecknoglobals // read-only lookup tables
var (
	statusNames = map[Status]string{
		Received:  "RECEIVED",
		Preparing: "PREPARING",
		Ready:     "READY",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
	}

	statusByName = map[string]Status{
		"RECEIVED":  Received,
		"PREPARING": Preparing,
		"READY":     Ready,
		"COMPLETED": Completed,
		"CANCELLED": Cancelled,
	}
)

// AllStatuses returns every valid status in logical order.
func AllStatuses() []Status {
	return []Status{Received, Preparing, Ready, Completed, Cancelled}
}

// ActiveStatuses returns the non-terminal statuses shown on the kitchen queue.
func ActiveStatuses() []Status {
	return []Status{Received, Preparing, Ready}
}

// ParseStatus converts the wire representation into a Status.
//
// Matching is exact: "preparing" or " READY" are rejected rather than coerced.
// The returned error matches both ErrInvalidStatus and errs.ErrValueIsInvalid.
func ParseStatus(s string) (Status, error) {
	if status, ok := statusByName[s]; ok {
		return status, nil
	}
	return Unknown, fmt.Errorf("%w: %w", ErrInvalidStatus,
		errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s)))
}

// ParseStatuses parses every element, failing on the first unknown value.
func ParseStatuses(values []string) ([]Status, error) {
	statuses := make([]Status, 0, len(values))
	for _, v := range values {
		status, err := ParseStatus(v)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// Validate returns an error for Unknown and any out-of-range value.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return fmt.Errorf("%w: %w", ErrInvalidStatus,
			errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s)))
	}
	return nil
}

// String returns the wire name, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further business transition is expected.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// StatusStrings renders statuses in their wire form.
func StatusStrings(statuses []Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s.String())
	}
	return out
}
