package lifecycle

import "fmt"

// ValidationError reports a malformed or missing input field. The caller can
// correct the input and retry.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// AuthorizationError reports that the acting identity lacks the privilege for
// the requested operation, including the self-review rule.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string { return e.Reason }

func denied(format string, args ...interface{}) error {
	return &AuthorizationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports that a referenced task or proof id does not resolve.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// InvalidTransitionError reports a status change that is not permitted from
// the current state.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %q to %q", e.From, e.To)
}

// ConflictError reports that a precondition changed between read and write
// time. Callers may re-read and retry once before surfacing it.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }
