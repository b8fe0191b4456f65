package order

import (
	"fmt"
	"slices"
)

// Transitions maps a current status to the targets it may move to.
//
// A nil table is permissive: any valid status may follow any other.
// Moving to the current status is always allowed.
type Transitions map[Status][]Status

// KitchenTransitions is the forward-only workflow with cancellation from any
// non-terminal stage.
func KitchenTransitions() Transitions {
	return Transitions{
		Received:  {Preparing, Cancelled},
		Preparing: {Ready, Cancelled},
		Ready:     {Completed, Cancelled},
	}
}

// Allows reports whether the table permits moving from current to target.
func (t Transitions) Allows(current, target Status) bool {
	if t == nil || current == target {
		return true
	}
	return slices.Contains(t[current], target)
}

// Check returns ErrInvalidTransition when the move is not allowed.
func (t Transitions) Check(current, target Status) error {
	if t.Allows(current, target) {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
}

// Validate makes sure every status in the table is a member of the enumeration.
func (t Transitions) Validate() error {
	for from, targets := range t {
		if err := from.Validate(); err != nil {
			return err
		}
		for _, to := range targets {
			if err := to.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}
