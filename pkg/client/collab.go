package client

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// AccountFetcher reads one account's raw data from the ledger. Reads are
// idempotent; a missing account is reported as ErrAccountNotFound, never as
// nil data, so callers can distinguish absence from an empty account.
type AccountFetcher interface {
	FetchAccount(ctx context.Context, address solana.PublicKey) ([]byte, error)
}

// TransactionExecutor signs and submits an ordered instruction list as one
// atomic transaction. It owns keys, fee payment, confirmation, and retry
// policy; the facade never retries at this boundary. Failures come back as
// *ProgramError for on-chain rejections and *TransportError for everything
// else.
type TransactionExecutor interface {
	Execute(ctx context.Context, instructions []solana.Instruction, signers []solana.PublicKey) (solana.Signature, error)
}
