package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of a resource.
var ErrConflict = errors.New("resource state conflict")

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
	// ErrUnavailable is returned when an external dependency failed and no fallback exists.
	ErrUnavailable = errors.New("service unavailable")
)

// ErrTerminalState is matched by transition attempts out of collected or bounced.
var ErrTerminalState = errors.New("document is in a terminal state")

// ErrInvalidTransition is matched by transitions missing from the allowed-edges table.
var ErrInvalidTransition = errors.New("invalid status transition")

// AppError carries an HTTP-ish code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError returns an error matching ErrValidation.
func NewValidationError(message string) error {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewNotFoundError returns an error matching ErrNotFound.
func NewNotFoundError(message string) error {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// TransitionError is returned by the document status machine.
// Kind is either ErrTerminalState or ErrInvalidTransition.
type TransitionError struct {
	From string
	To   string
	Kind error
}

func (e *TransitionError) Error() string {
	if errors.Is(e.Kind, ErrTerminalState) {
		return fmt.Sprintf("document status %q is terminal, cannot move to %q", e.From, e.To)
	}
	return fmt.Sprintf("transition from %q to %q is not allowed", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == e.Kind
}

// NewTerminalStateError builds a TransitionError of kind ErrTerminalState.
func NewTerminalStateError(from, to string) error {
	return &TransitionError{From: from, To: to, Kind: ErrTerminalState}
}

// NewInvalidTransitionError builds a TransitionError of kind ErrInvalidTransition.
func NewInvalidTransitionError(from, to string) error {
	return &TransitionError{From: from, To: to, Kind: ErrInvalidTransition}
}

// Code returns a stable machine-readable code for err, used in bulk responses.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrTerminalState):
		return "terminal_state"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrDuplicate):
		return "duplicate"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	default:
		return "internal"
	}
}
