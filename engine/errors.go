package engine

import (
	"errors"
	"fmt"
)

// ErrLedgerInconsistency marks any violation of the money-conservation
// invariants: a pool total changing unexpectedly across a rebalance, a bet
// exceeding the available bankroll, or a negative bankroll. These indicate a
// programming defect; the affected trip is aborted with a diagnostic.
var ErrLedgerInconsistency = errors.New("ledger inconsistency")

// ErrConfiguration marks an invalid parameter combination, rejected at
// initialization.
var ErrConfiguration = errors.New("invalid configuration")

// LedgerErrorf wraps ErrLedgerInconsistency with a diagnostic.
func LedgerErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrLedgerInconsistency}, args...)...)
}

// FailureReason classifies how a session ended early. Bankruptcy is a
// recognized terminal outcome of the simulated economics, not an error.
type FailureReason uint8

const (
	// FailureNone means the session did not fail.
	FailureNone FailureReason = iota
	// FailureBankruptcy is the hard outcome: team or individual capital is
	// insufficient even after redistribution.
	FailureBankruptcy
	// FailureOutOfExchanges is the softer outcome: a player exhausted the
	// per-session exchange budget before their bankroll covered the bet.
	FailureOutOfExchanges
)

func (r FailureReason) String() string {
	switch r {
	case FailureBankruptcy:
		return "bankruptcy"
	case FailureOutOfExchanges:
		return "ran out of exchanges"
	default:
		return "none"
	}
}
