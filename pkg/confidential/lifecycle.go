package confidential

import (
	"fmt"
	"math"

	"github.com/sss-labs/sss-go/pkg/state"
)

// The transition functions below are pure: they validate the operation
// against a snapshot and return the successor state without touching the
// network. The facade runs them before submission so statically knowable
// failures never burn a transaction, and the tests run them to pin the
// lifecycle rules without a validator.

// Deposit credits amount from the owner's public balance into pending.
// Requires a configured account and a counter slot below the program's
// per-apply credit ceiling.
func Deposit(s AccountState, amount uint64) (AccountState, error) {
	if !s.Configured {
		return s, errUnconfigured("deposit")
	}
	if amount == 0 {
		return s, &state.ValidationError{
			Code:    state.ErrZeroAmount,
			Message: "deposit amount must be greater than zero",
		}
	}
	if s.PendingBalance > math.MaxUint64-amount {
		return s, &state.ValidationError{
			Code:    state.ErrInvalidAmount,
			Message: "deposit would overflow the pending balance",
		}
	}
	if s.MaxPendingCredits > 0 && s.PendingCreditCounter >= s.MaxPendingCredits {
		return s, &state.PreconditionError{
			Code:    state.ErrPendingLimitReached,
			Message: "pending credit counter at maximum, apply pending balance first",
		}
	}

	s.PendingBalance += amount
	s.PendingCreditCounter++
	return s, nil
}

// ApplyPending acknowledges the entire pending balance into available.
// expectedCounter must be the credit counter read from the live account; the
// program uses it to reject replayed or interleaved applies, so a mismatch
// against the snapshot is surfaced rather than submitted.
func ApplyPending(s AccountState, expectedCounter uint64) (AccountState, error) {
	if !s.Configured {
		return s, errUnconfigured("apply pending balance")
	}
	if s.PendingBalance == 0 {
		return s, &state.PreconditionError{
			Code:    state.ErrZeroPendingBalance,
			Message: "no pending balance to apply",
		}
	}
	if expectedCounter != s.PendingCreditCounter {
		return s, &state.PreconditionError{
			Code:    state.ErrStaleCreditCounter,
			Message: fmt.Sprintf("expected credit counter %d, account is at %d", expectedCounter, s.PendingCreditCounter),
		}
	}

	s.AvailableBalance += s.PendingBalance
	s.PendingBalance = 0
	s.PendingCreditCounter = 0
	return s, nil
}

// Withdraw debits amount from available back to the public balance. The
// on-chain instruction is proof-gated; this transition only validates the
// spendable balance.
func Withdraw(s AccountState, amount uint64) (AccountState, error) {
	if !s.Configured {
		return s, errUnconfigured("withdraw")
	}
	if amount == 0 {
		return s, &state.ValidationError{
			Code:    state.ErrZeroAmount,
			Message: "withdraw amount must be greater than zero",
		}
	}
	if amount > s.AvailableBalance {
		return s, &state.PreconditionError{
			Code:    state.ErrInsufficientBalance,
			Message: fmt.Sprintf("withdraw of %d exceeds available balance %d", amount, s.AvailableBalance),
		}
	}

	s.AvailableBalance -= amount
	return s, nil
}

// Transfer debits amount from the sender's available balance. The recipient's
// pending credit happens on chain; only the sender's snapshot is modeled.
func Transfer(s AccountState, amount uint64) (AccountState, error) {
	if !s.Configured {
		return s, errUnconfigured("transfer")
	}
	if amount == 0 {
		return s, &state.ValidationError{
			Code:    state.ErrZeroAmount,
			Message: "transfer amount must be greater than zero",
		}
	}
	if amount > s.AvailableBalance {
		return s, &state.PreconditionError{
			Code:    state.ErrInsufficientBalance,
			Message: fmt.Sprintf("transfer of %d exceeds available balance %d", amount, s.AvailableBalance),
		}
	}

	s.AvailableBalance -= amount
	return s, nil
}

func errUnconfigured(op string) error {
	return &state.PreconditionError{
		Code:    state.ErrUnconfiguredAccount,
		Message: op + " requires a configured confidential account",
	}
}
