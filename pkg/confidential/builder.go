package confidential

import (
	"context"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"github.com/sss-labs/sss-go/pkg/pda"
)

// Confidential-transfer extension opcodes. The Token-2022 program routes
// extension instructions through a one-byte prefix followed by the
// extension's own sub-opcode.
const (
	extensionPrefix = 27

	opDeposit      = 5
	opWithdraw     = 6
	opTransfer     = 7
	opApplyPending = 8
)

// ProofOp names the operation a proof is requested for.
type ProofOp string

const (
	ProofOpTransfer ProofOp = "transfer"
	ProofOpWithdraw ProofOp = "withdraw"
)

// ProofRequest carries everything the proof service needs: the operation,
// the sender's snapshot, and the plaintext amount being proven.
type ProofRequest struct {
	Op     ProofOp
	State  AccountState
	Amount uint64
}

// ProofProvider is the zero-knowledge proof service boundary. Implementations
// are external; the client treats the returned bytes as an opaque blob and
// splices them into the instruction without interpretation.
type ProofProvider interface {
	GenerateProof(ctx context.Context, req ProofRequest) ([]byte, error)
}

// Builder encodes confidential-transfer instructions for one token program
// deployment.
type Builder struct {
	TokenProgram solana.PublicKey
}

// NewBuilder returns a Builder targeting the canonical Token-2022 program.
func NewBuilder() *Builder {
	return &Builder{TokenProgram: pda.Token2022ProgramID}
}

// Instruction is an encoded confidential-transfer instruction. Same
// submission contract as pkg/instruction: satisfies solana.Instruction.
type Instruction struct {
	program  solana.PublicKey
	accounts []*solana.AccountMeta
	data     []byte
}

func (ix *Instruction) ProgramID() solana.PublicKey     { return ix.program }
func (ix *Instruction) Accounts() []*solana.AccountMeta { return ix.accounts }
func (ix *Instruction) Data() ([]byte, error)           { return ix.data, nil }

// Deposit builds the proof-free public-to-pending instruction.
func (b *Builder) Deposit(tokenAccount, mint, owner solana.PublicKey, amount uint64, decimals uint8) *Instruction {
	data := make([]byte, 11)
	data[0] = extensionPrefix
	data[1] = opDeposit
	binary.LittleEndian.PutUint64(data[2:10], amount)
	data[10] = decimals

	return &Instruction{
		program: b.TokenProgram,
		accounts: []*solana.AccountMeta{
			solana.Meta(tokenAccount).WRITE(),
			solana.Meta(mint),
			solana.Meta(owner).SIGNER(),
		},
		data: data,
	}
}

// ApplyPendingBalance builds the proof-free pending-to-available
// acknowledgment. expectedCounter must be the credit counter read from the
// live account immediately before building.
func (b *Builder) ApplyPendingBalance(tokenAccount, owner solana.PublicKey, expectedCounter uint64) *Instruction {
	data := make([]byte, 10)
	data[0] = extensionPrefix
	data[1] = opApplyPending
	binary.LittleEndian.PutUint64(data[2:10], expectedCounter)

	return &Instruction{
		program: b.TokenProgram,
		accounts: []*solana.AccountMeta{
			solana.Meta(tokenAccount).WRITE(),
			solana.Meta(owner).SIGNER(),
		},
		data: data,
	}
}

// Withdraw builds the proof-gated available-to-public instruction. proof is
// the opaque range-proof blob from a ProofProvider, appended to the payload
// verbatim.
func (b *Builder) Withdraw(tokenAccount, mint, owner solana.PublicKey, amount uint64, decimals uint8, proof []byte) *Instruction {
	data := make([]byte, 11, 11+len(proof))
	data[0] = extensionPrefix
	data[1] = opWithdraw
	binary.LittleEndian.PutUint64(data[2:10], amount)
	data[10] = decimals
	data = append(data, proof...)

	return &Instruction{
		program: b.TokenProgram,
		accounts: []*solana.AccountMeta{
			solana.Meta(tokenAccount).WRITE(),
			solana.Meta(mint),
			solana.Meta(owner).SIGNER(),
		},
		data: data,
	}
}

// Transfer builds the proof-gated confidential transfer. proof covers both
// the range and validity statements; the program credits the destination's
// pending balance.
func (b *Builder) Transfer(source, mint, destination, owner solana.PublicKey, proof []byte) *Instruction {
	data := make([]byte, 2, 2+len(proof))
	data[0] = extensionPrefix
	data[1] = opTransfer
	data = append(data, proof...)

	return &Instruction{
		program: b.TokenProgram,
		accounts: []*solana.AccountMeta{
			solana.Meta(source).WRITE(),
			solana.Meta(mint),
			solana.Meta(destination).WRITE(),
			solana.Meta(owner).SIGNER(),
		},
		data: data,
	}
}
