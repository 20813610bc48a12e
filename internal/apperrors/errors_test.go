package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionError_Is(t *testing.T) {
	terminal := NewTerminalStateError("collected", "at_bank")
	assert.ErrorIs(t, terminal, ErrTerminalState)
	assert.NotErrorIs(t, terminal, ErrInvalidTransition)
	assert.Contains(t, terminal.Error(), "terminal")

	invalid := fmt.Errorf("transition document: %w", NewInvalidTransitionError("at_bank", "endorsed"))
	assert.ErrorIs(t, invalid, ErrInvalidTransition)
	assert.NotErrorIs(t, invalid, ErrTerminalState)

	var te *TransitionError
	assert.True(t, errors.As(invalid, &te))
	assert.Equal(t, "at_bank", te.From)
	assert.Equal(t, "endorsed", te.To)
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewValidationError("amount must be positive")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "amount must be positive")

	nf := NewNotFoundError("document abc not found")
	assert.ErrorIs(t, nf, ErrNotFound)

	wrapped := NewAppError(500, "failed to insert document", errors.New("boom"))
	assert.Equal(t, "failed to insert document: boom", wrapped.Error())
	assert.Equal(t, 500, wrapped.Code)
}

func TestCode(t *testing.T) {
	assert.Equal(t, "", Code(nil))
	assert.Equal(t, "not_found", Code(fmt.Errorf("find: %w", ErrNotFound)))
	assert.Equal(t, "terminal_state", Code(NewTerminalStateError("bounced", "at_bank")))
	assert.Equal(t, "invalid_transition", Code(NewInvalidTransitionError("at_bank", "endorsed")))
	assert.Equal(t, "validation", Code(NewValidationError("bad")))
	assert.Equal(t, "conflict", Code(ErrConflict))
	assert.Equal(t, "internal", Code(errors.New("boom")))
}
