// Package confidential models the confidential balance lifecycle of a
// Token-2022 confidential-transfer account: public funds deposited into an
// encrypted pending balance, acknowledged into an available balance, and
// spent via proof-gated transfers and withdrawals.
//
// On chain the balances are ElGamal ciphertexts the client cannot read.
// The lifecycle therefore operates on plaintext amounts known to the caller
// (the depositor knows what it deposited; the proof service decrypts for
// transfer/withdraw), while DecodeAccountState recovers only the plaintext
// fields of the on-chain extension: the configured flag and the credit
// counters that guard ApplyPendingBalance against replay.
package confidential

import (
	"encoding/binary"
	"fmt"

	"github.com/sss-labs/sss-go/pkg/state"
)

// Status is the lifecycle position of a confidential account.
type Status uint8

const (
	// StatusNoAccount means the owner has no configured confidential
	// extension on their token account. Configuration is an external
	// prerequisite; no operation here performs it.
	StatusNoAccount Status = iota

	// StatusConfigured means the extension exists with zero balances.
	StatusConfigured

	// StatusPendingNonZero means deposits are waiting to be acknowledged.
	StatusPendingNonZero

	// StatusAvailableOnly means all credited funds are spendable.
	StatusAvailableOnly
)

func (s Status) String() string {
	switch s {
	case StatusNoAccount:
		return "no-account"
	case StatusConfigured:
		return "configured"
	case StatusPendingNonZero:
		return "pending-non-zero"
	case StatusAvailableOnly:
		return "available-only"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// AccountState is a snapshot of one (mint, owner) confidential account.
// PendingBalance and AvailableBalance are plaintext values supplied by the
// caller; the chain stores only their encryptions.
type AccountState struct {
	Configured           bool   // Extension initialized and approved for the account
	PendingBalance       uint64 // Deposits awaiting ApplyPendingBalance
	AvailableBalance     uint64 // Spendable balance
	PendingCreditCounter uint64 // Credits applied since the last ApplyPendingBalance
	MaxPendingCredits    uint64 // Program-enforced credit ceiling between applies
}

// Status derives the lifecycle position from the snapshot.
func (s AccountState) Status() Status {
	switch {
	case !s.Configured:
		return StatusNoAccount
	case s.PendingBalance > 0:
		return StatusPendingNonZero
	case s.AvailableBalance > 0:
		return StatusAvailableOnly
	default:
		return StatusConfigured
	}
}

// Confidential-transfer account extension layout. Fixed by Token-2022; the
// client only reads the plaintext fields, skipping over the ciphertexts.
const (
	extensionLen = 295

	offApproved          = 0   // 1 byte
	offPendingCounter    = 263 // u64, follows pubkey + ciphertexts + credit flags
	offMaxPendingCredits = 271 // u64
)

const (
	tokenAccountBaseLen  = 165
	accountTypeTokenAcct = 2
)

// DecodeAccountState scans a Token-2022 token account image for the
// confidential-transfer extension and extracts its plaintext fields. A token
// account without the extension decodes to the zero AccountState, which is a
// valid "not configured" snapshot, not an error.
func DecodeAccountState(data []byte) (AccountState, error) {
	var st AccountState

	if len(data) < tokenAccountBaseLen {
		return st, &state.CorruptStateError{
			Code:    state.ErrTruncatedAccount,
			Message: fmt.Sprintf("token account is %d bytes, want at least %d", len(data), tokenAccountBaseLen),
		}
	}
	if len(data) <= tokenAccountBaseLen+1 {
		return st, nil // base account, no extensions
	}
	if data[tokenAccountBaseLen] != accountTypeTokenAcct {
		return st, &state.CorruptStateError{
			Code:    state.ErrMalformedAccount,
			Message: fmt.Sprintf("extended account type %d is not a token account", data[tokenAccountBaseLen]),
		}
	}

	tlv := data[tokenAccountBaseLen+1:]
	for len(tlv) >= 4 {
		extType := state.ExtensionType(binary.LittleEndian.Uint16(tlv[0:2]))
		extLen := int(binary.LittleEndian.Uint16(tlv[2:4]))
		if extType == 0 {
			break
		}
		if len(tlv) < 4+extLen {
			return st, &state.CorruptStateError{
				Code:    state.ErrTruncatedAccount,
				Message: fmt.Sprintf("extension %d claims %d bytes past end of account", extType, extLen),
			}
		}
		if extType == state.ExtConfidentialTransferAccount {
			value := tlv[4 : 4+extLen]
			if extLen < extensionLen {
				return st, &state.CorruptStateError{
					Code:    state.ErrTruncatedAccount,
					Message: fmt.Sprintf("confidential extension is %d bytes, want %d", extLen, extensionLen),
				}
			}
			st.Configured = value[offApproved] != 0
			st.PendingCreditCounter = binary.LittleEndian.Uint64(value[offPendingCounter : offPendingCounter+8])
			st.MaxPendingCredits = binary.LittleEndian.Uint64(value[offMaxPendingCredits : offMaxPendingCredits+8])
			return st, nil
		}
		tlv = tlv[4+extLen:]
	}
	return st, nil
}
