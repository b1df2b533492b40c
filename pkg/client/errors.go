// Package client error types: the network-facing members of the error
// taxonomy. Local validation failures live in pkg/state, derivation failures
// in pkg/pda.
package client

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/sss-labs/sss-go/pkg/pda"
)

// ErrAccountNotFound is returned by AccountFetcher implementations when the
// requested account does not exist. For role and blacklist reads, absence is
// meaningful state rather than a failure; the facade translates it.
var ErrAccountNotFound = errors.New("account not found")

// ErrNoProofProvider is returned by proof-gated confidential operations when
// the client was constructed without a proof service.
var ErrNoProofProvider = errors.New("no proof provider configured")

// ErrorKind is the coarse classification of a program rejection, used by
// callers that branch on outcome without caring about the exact code.
type ErrorKind string

const (
	KindUnauthorized      ErrorKind = "unauthorized"
	KindPaused            ErrorKind = "paused"
	KindSupplyCapExceeded ErrorKind = "supply-cap-exceeded"
	KindBlacklisted       ErrorKind = "blacklisted"
	KindInvalidRole       ErrorKind = "invalid-role"
	KindOther             ErrorKind = "other"
)

// ProgramError is a typed rejection from one of the on-chain programs. The
// numeric code is preserved even when unrecognized so nothing is discarded.
type ProgramError struct {
	Code uint32    // Raw program error code
	Name string    // Program-declared error name, empty if unknown
	Kind ErrorKind // Coarse classification
}

func (e *ProgramError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("program error %d", e.Code)
	}
	return fmt.Sprintf("program error %d (%s)", e.Code, e.Name)
}

// TransportError wraps a network-layer failure: timeout, connection refused,
// simulation failure. Retryable by the caller; never retried here.
type TransportError struct {
	Op  string // RPC operation that failed
	Err error  // Underlying failure
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// programErr pairs a declared error name with its classification.
type programErr struct {
	name string
	kind ErrorKind
}

// Error tables transcribed from the programs' #[error_code] enums. Anchor
// numbers custom errors from 6000 in declaration order.
var coreErrors = map[uint32]programErr{
	6000: {"Paused", KindPaused},
	6001: {"NotPaused", KindOther},
	6002: {"SupplyCapExceeded", KindSupplyCapExceeded},
	6003: {"Unauthorized", KindUnauthorized},
	6004: {"InvalidPreset", KindOther},
	6005: {"LastAdmin", KindOther},
	6006: {"ArithmeticOverflow", KindOther},
	6007: {"MintMismatch", KindOther},
	6008: {"InvalidSupplyCap", KindOther},
	6009: {"ZeroAmount", KindOther},
	6010: {"InvalidRole", KindInvalidRole},
	6011: {"InvalidOracleData", KindOther},
	6012: {"InvalidOraclePrice", KindOther},
	6013: {"QuotaExceeded", KindSupplyCapExceeded},
	6014: {"NameTooLong", KindOther},
	6015: {"SymbolTooLong", KindOther},
	6016: {"UriTooLong", KindOther},
}

var hookErrors = map[uint32]programErr{
	6000: {"SenderBlacklisted", KindBlacklisted},
	6001: {"ReceiverBlacklisted", KindBlacklisted},
	6002: {"ReasonTooLong", KindOther},
	6003: {"Unauthorized", KindUnauthorized},
}

// MapProgramError translates a raw error code from the given program into a
// typed ProgramError. Unknown codes map to KindOther with the code preserved.
func MapProgramError(program solana.PublicKey, code uint32) *ProgramError {
	var table map[uint32]programErr
	switch program {
	case pda.CoreProgramID:
		table = coreErrors
	case pda.HookProgramID:
		table = hookErrors
	}
	if entry, ok := table[code]; ok {
		return &ProgramError{Code: code, Name: entry.name, Kind: entry.kind}
	}
	return &ProgramError{Code: code, Kind: KindOther}
}
