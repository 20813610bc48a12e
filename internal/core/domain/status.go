package domain

import (
	"sort"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
)

// DocumentStatus is the lifecycle state of a Document.
type DocumentStatus string

const (
	StatusPortfolio DocumentStatus = "portfolio" // Initial: held, not yet deposited
	StatusAtBank    DocumentStatus = "at_bank"
	StatusEndorsed  DocumentStatus = "endorsed" // Ciro: passed to a third party
	StatusCollected DocumentStatus = "collected"
	StatusBounced   DocumentStatus = "bounced"
)

// allowedTransitions is the full edge set of the status machine.
// A status with an empty set is terminal.
var allowedTransitions = map[DocumentStatus]map[DocumentStatus]struct{}{
	StatusPortfolio: {StatusAtBank: {}, StatusEndorsed: {}, StatusBounced: {}},
	StatusAtBank:    {StatusCollected: {}, StatusBounced: {}},
	StatusEndorsed:  {StatusCollected: {}, StatusBounced: {}},
	StatusCollected: {},
	StatusBounced:   {},
}

// AllStatuses lists every status in lifecycle order.
func AllStatuses() []DocumentStatus {
	return []DocumentStatus{StatusPortfolio, StatusAtBank, StatusEndorsed, StatusCollected, StatusBounced}
}

// IsValid reports whether s is one of the enumerated statuses.
func (s DocumentStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal reports whether no transition leaves s.
func (s DocumentStatus) IsTerminal() bool {
	next, ok := allowedTransitions[s]
	return ok && len(next) == 0
}

// NextStatuses returns the statuses reachable from s in one step, sorted for stable output.
func (s DocumentStatus) NextStatuses() []DocumentStatus {
	next := make([]DocumentStatus, 0, len(allowedTransitions[s]))
	for to := range allowedTransitions[s] {
		next = append(next, to)
	}
	sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
	return next
}

// CanTransition reports whether from -> to is an edge of the machine.
func CanTransition(from, to DocumentStatus) bool {
	_, ok := allowedTransitions[from][to]
	return ok
}

// ValidateTransition checks a requested status change and returns a typed error
// matching apperrors.ErrValidation, ErrTerminalState or ErrInvalidTransition.
func ValidateTransition(from, to DocumentStatus) error {
	if !to.IsValid() {
		return apperrors.NewValidationError("unknown target status " + string(to))
	}
	if !from.IsValid() {
		return apperrors.NewValidationError("unknown current status " + string(from))
	}
	if from.IsTerminal() {
		return apperrors.NewTerminalStateError(string(from), string(to))
	}
	if !CanTransition(from, to) {
		return apperrors.NewInvalidTransitionError(string(from), string(to))
	}
	return nil
}
