// Package state error types.
//
// These are the locally-raised members of the client error taxonomy: failures
// detectable without touching the network. Program-reported and transport
// failures live in pkg/client, derivation failures in pkg/pda.
package state

import "fmt"

// ValidationError is returned for malformed local input: unknown role or
// preset names, out-of-range amounts, over-long metadata strings. It is
// always raised before any network interaction.
type ValidationError struct {
	Code    string // Error code (e.g. ErrUnknownRole)
	Message string // Human-readable error message
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [%s]: %s", e.Code, e.Message)
}

// PreconditionError is returned when fetched account state rules an operation
// out before submission. The failure shape is statically knowable, so the
// client fails fast instead of burning a transaction.
type PreconditionError struct {
	Code    string // Error code (e.g. ErrZeroPendingBalance)
	Message string // Human-readable error message
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed [%s]: %s", e.Code, e.Message)
}

// CorruptStateError is returned when decoded account data violates a program
// invariant, e.g. total burned exceeding total minted. Always fatal; the
// client never auto-corrects or clamps.
type CorruptStateError struct {
	Code    string // Error code (e.g. ErrNegativeSupply)
	Message string // Human-readable error message
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt state [%s]: %s", e.Code, e.Message)
}

// Validation error codes.
const (
	ErrUnknownRole     = "UNKNOWN_ROLE"     // Role name outside the closed set
	ErrUnknownPreset   = "UNKNOWN_PRESET"   // Preset identifier outside sss-1..sss-3
	ErrInvalidAddress  = "INVALID_ADDRESS"  // Malformed base58 address
	ErrInvalidAmount   = "INVALID_AMOUNT"   // Negative, non-numeric, or out-of-range amount
	ErrAmountPrecision = "AMOUNT_PRECISION" // More fractional digits than the mint's decimals
	ErrZeroAmount      = "ZERO_AMOUNT"      // Amount must be greater than zero
	ErrNameTooLong     = "NAME_TOO_LONG"    // Name exceeds 32 characters
	ErrSymbolTooLong   = "SYMBOL_TOO_LONG"  // Symbol exceeds 10 characters
	ErrURITooLong      = "URI_TOO_LONG"     // URI exceeds 200 characters
	ErrReasonTooLong   = "REASON_TOO_LONG"  // Blacklist reason exceeds 512 characters
)

// Precondition error codes.
const (
	ErrUnconfiguredAccount = "UNCONFIGURED_ACCOUNT"  // Confidential op before account configuration
	ErrZeroPendingBalance  = "ZERO_PENDING_BALANCE"  // ApplyPendingBalance with nothing pending
	ErrStaleCreditCounter  = "STALE_CREDIT_COUNTER"  // Supplied counter does not match account state
	ErrPendingLimitReached = "PENDING_LIMIT_REACHED" // Pending credit counter at its maximum
	ErrInsufficientBalance = "INSUFFICIENT_BALANCE"  // Amount exceeds the available balance
	ErrPresetMismatch      = "PRESET_MISMATCH"       // Mint extensions do not match the requested preset
)

// Corrupt-state error codes.
const (
	ErrNegativeSupply    = "NEGATIVE_SUPPLY"     // totalBurned > totalMinted
	ErrCapBelowSupply    = "CAP_BELOW_SUPPLY"    // supplyCap < computed current supply
	ErrBadDiscriminator  = "BAD_DISCRIMINATOR"   // Account data is not the expected Anchor type
	ErrTruncatedAccount  = "TRUNCATED_ACCOUNT"   // Account data shorter than its fixed layout
	ErrMalformedAccount  = "MALFORMED_ACCOUNT"   // Account data fails Borsh decoding
	ErrUnknownRoleCode   = "UNKNOWN_ROLE_CODE"   // Stored role byte outside the closed set
	ErrUnknownPresetCode = "UNKNOWN_PRESET_CODE" // Stored preset byte outside 1..3
)
