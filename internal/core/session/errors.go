package session

import (
	"errors"
	"fmt"
)

// ErrNotAllowedInState indicates a command that is disabled in the current phase.
var ErrNotAllowedInState = errors.New("command not allowed in current state")

// NotAllowedError describes a rejected command.
type NotAllowedError struct {
	Command string
	Phase   Phase
}

func (err *NotAllowedError) Error() string {
	return fmt.Sprintf("%s while %s: %v", err.Command, err.Phase, ErrNotAllowedInState)
}

func (err *NotAllowedError) Unwrap() error { return ErrNotAllowedInState }

// InvariantViolation is raised as a panic when the controller meets a phase it
// does not know. It signals a programming defect.
type InvariantViolation struct {
	Phase Phase
}

func (violation InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: unknown phase %q", string(violation.Phase))
}
