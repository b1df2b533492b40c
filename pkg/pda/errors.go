// Package pda error types.
package pda

import "fmt"

// DerivationError is returned when an address cannot be derived.
//
// Code ErrOnCurve is an internal signal consumed by FindProgramAddress's bump
// loop. Code ErrExhausted indicates every bump produced an on-curve point,
// which is expected never to happen for real seed material and must be
// treated as a defect, not retried.
type DerivationError struct {
	Code    string // Error code (e.g. ErrExhausted)
	Message string // Human-readable error message
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("derivation error [%s]: %s", e.Code, e.Message)
}

// Derivation error codes.
const (
	ErrOnCurve      = "ON_CURVE"             // Candidate address is a valid curve point
	ErrExhausted    = "DERIVATION_EXHAUSTED" // All 256 bumps produced on-curve points
	ErrTooManySeeds = "TOO_MANY_SEEDS"       // More than 16 seeds supplied
	ErrSeedTooLong  = "SEED_TOO_LONG"        // A seed exceeds 32 bytes
)
