// Package instruction builds wire-level instructions for the SSS programs.
//
// Every builder is a pure function from typed, pre-validated arguments to an
// encoded instruction: program target, ordered account list, and an Anchor
// payload (8-byte discriminator + Borsh-packed arguments, little-endian, no
// padding). Builders never perform I/O and never mutate shared state, so
// identical inputs always produce byte-identical output.
//
// Account orders are part of the program contract and are transcribed from
// the #[derive(Accounts)] structs in:
//   - sss-programs/sss-core/src/instructions/ (all sss-core operations)
//   - sss-programs/sss-transfer-hook/src/instructions/ (hook operations)
//
// Authorization is enforced by the programs, not here: builders resolve the
// role PDA the program will check and place it in the account list, nothing
// more.
package instruction

import (
	"bytes"
	"crypto/sha256"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/sss-labs/sss-go/pkg/pda"
)

// Instruction is an encoded, submission-ready instruction. It satisfies
// solana.Instruction so it can be handed straight to a transaction builder.
type Instruction struct {
	program  solana.PublicKey
	accounts []*solana.AccountMeta
	data     []byte
}

// ProgramID returns the target program.
func (ix *Instruction) ProgramID() solana.PublicKey { return ix.program }

// Accounts returns the ordered account list. Order is part of the contract.
func (ix *Instruction) Accounts() []*solana.AccountMeta { return ix.accounts }

// Data returns the encoded payload.
func (ix *Instruction) Data() ([]byte, error) { return ix.data, nil }

// Discriminator computes the 8-byte Anchor instruction discriminator:
// sha256("global:<name>")[..8].
func Discriminator(name string) []byte {
	sum := sha256.Sum256([]byte("global:" + name))
	return sum[:8]
}

// encode assembles discriminator + Borsh-packed args. A nil args value emits
// the bare discriminator.
func encode(name string, args interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(Discriminator(name))
	if args != nil {
		if err := bin.NewBorshEncoder(&buf).Encode(args); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Builder resolves accounts and encodes instructions for one deployment of
// the SSS programs. The zero-value program fields are not usable; construct
// with NewBuilder and override for test validators.
type Builder struct {
	Core         solana.PublicKey // sss-core program
	Hook         solana.PublicKey // sss-transfer-hook program
	TokenProgram solana.PublicKey // Token-2022
}

// NewBuilder returns a Builder targeting the canonical deployed program IDs.
func NewBuilder() *Builder {
	return &Builder{
		Core:         pda.CoreProgramID,
		Hook:         pda.HookProgramID,
		TokenProgram: pda.Token2022ProgramID,
	}
}

// configFor derives the config PDA for a mint.
func (b *Builder) configFor(mint solana.PublicKey) (solana.PublicKey, error) {
	config, _, err := pda.ConfigAddress(b.Core, mint)
	return config, err
}

// roleFor derives the role PDA for a holder under a config.
func (b *Builder) roleFor(config, holder solana.PublicKey, code uint8) (solana.PublicKey, error) {
	role, _, err := pda.RoleAddress(b.Core, config, holder, code)
	return role, err
}
