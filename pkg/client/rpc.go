package client

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// RPCFetcher is the AccountFetcher backed by a Solana JSON-RPC node.
type RPCFetcher struct {
	rpc *rpc.Client
}

// NewRPCFetcher connects an RPCFetcher to the given endpoint.
func NewRPCFetcher(endpoint string) *RPCFetcher {
	return &RPCFetcher{rpc: rpc.New(endpoint)}
}

// FetchAccount implements AccountFetcher. A node-level "not found" becomes
// ErrAccountNotFound; every other failure is a TransportError.
func (f *RPCFetcher) FetchAccount(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	out, err := f.rpc.GetAccountInfo(ctx, address)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, &TransportError{Op: "getAccountInfo", Err: err}
	}
	if out == nil || out.Value == nil {
		return nil, ErrAccountNotFound
	}
	return out.Value.Data.GetBinary(), nil
}
