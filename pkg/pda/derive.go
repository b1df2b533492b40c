// Package pda implements program-derived address (PDA) computation for the
// SSS stablecoin programs.
//
// Every persistent entity the client touches (config, role grants, blacklist
// entries, transfer-hook metadata) lives at an address derived
// deterministically from fixed string seeds plus discriminating values,
// namespaced under the owning program ID. Derivation is pure: the same inputs
// always produce the same address, so the package is used both to resolve
// accounts before signing and to verify addresses after fetching.
//
// This corresponds to the Anchor seed constraints in:
//   - sss-programs/sss-core/src/state/config.rs (SSS_CONFIG_SEED)
//   - sss-programs/sss-core/src/state/role.rs (SSS_ROLE_SEED)
//   - sss-programs/sss-transfer-hook/src/state/blacklist.rs (BLACKLIST_SEED)
//   - sss-programs/sss-transfer-hook/src/instructions/initialize.rs
//     (extra-account-metas)
//
// A derived address must be off-curve: it has no corresponding ed25519
// private key, so it can never collide with a wallet key or sign anything.
// The bump discriminant is searched in descending order (255 down to 0) until
// the SHA-256 output decompresses to nothing, matching the runtime's
// find_program_address.
package pda

import (
	"crypto/sha256"
	"errors"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"
)

// Entity seed namespaces. Fixed by the on-chain programs; changing any of
// these derives addresses the programs will never recognize.
const (
	ConfigSeed            = "sss-config"
	RoleSeed              = "sss-role"
	BlacklistSeed         = "blacklist"
	ExtraAccountMetasSeed = "extra-account-metas"
)

// derivedMarker is the domain-separation suffix the runtime appends before
// hashing, guaranteeing PDAs cannot collide with other SHA-256 uses.
const derivedMarker = "ProgramDerivedAddress"

// Seed constraints enforced by the runtime.
const (
	MaxSeeds   = 16 // maximum number of seeds per derivation
	MaxSeedLen = 32 // maximum length of a single seed in bytes
)

// IsOnCurve reports whether a public key is a valid ed25519 curve point.
//
// Wallet keys are always on-curve; derived addresses must never be, since an
// on-curve derived address would have a usable private key.
func IsOnCurve(key solana.PublicKey) bool {
	_, err := new(edwards25519.Point).SetBytes(key[:])
	return err == nil
}

// CreateProgramAddress derives the address for an exact seed list.
//
// The address is SHA-256(seeds || programID || "ProgramDerivedAddress"). If the
// digest happens to be a valid curve point the derivation is rejected; the
// caller (normally FindProgramAddress) must vary the bump seed and retry.
func CreateProgramAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, error) {
	if len(seeds) > MaxSeeds {
		return solana.PublicKey{}, &DerivationError{
			Code:    ErrTooManySeeds,
			Message: "derivation uses more seeds than the runtime allows",
		}
	}

	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return solana.PublicKey{}, &DerivationError{
				Code:    ErrSeedTooLong,
				Message: "seed exceeds the 32-byte runtime limit",
			}
		}
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(derivedMarker))

	var addr solana.PublicKey
	copy(addr[:], h.Sum(nil))

	if IsOnCurve(addr) {
		return solana.PublicKey{}, &DerivationError{
			Code:    ErrOnCurve,
			Message: "derived address lies on the ed25519 curve",
		}
	}
	return addr, nil
}

// FindProgramAddress derives the canonical address and bump for a seed list.
//
// Bumps are tried in descending order from 255; the first bump whose digest
// is off-curve wins. Exhausting all 256 bumps returns a DerivationError with
// code ErrExhausted, a defect condition that should never occur in practice
// and must not be retried.
func FindProgramAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		bumped := make([][]byte, len(seeds), len(seeds)+1)
		copy(bumped, seeds)
		bumped = append(bumped, []byte{uint8(bump)})

		addr, err := CreateProgramAddress(bumped, programID)
		if err == nil {
			return addr, uint8(bump), nil
		}
		var derr *DerivationError
		if errors.As(err, &derr) && derr.Code == ErrOnCurve {
			continue
		}
		// Seed-shape errors cannot be fixed by a different bump.
		return solana.PublicKey{}, 0, err
	}
	return solana.PublicKey{}, 0, &DerivationError{
		Code:    ErrExhausted,
		Message: "no off-curve address found in 256 bump attempts",
	}
}

// ConfigAddress derives the StablecoinConfig PDA for a mint.
//
// Seeds: ["sss-config", mint].
func ConfigAddress(coreProgram, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return FindProgramAddress([][]byte{[]byte(ConfigSeed), mint[:]}, coreProgram)
}

// RoleAddress derives the RoleAccount PDA for a (config, holder, role) triple.
//
// Seeds: ["sss-role", config, holder, [roleCode]]. The existence of the
// account at this address IS the grant; there is no separate flag.
func RoleAddress(coreProgram, config, holder solana.PublicKey, roleCode uint8) (solana.PublicKey, uint8, error) {
	return FindProgramAddress([][]byte{
		[]byte(RoleSeed),
		config[:],
		holder[:],
		{roleCode},
	}, coreProgram)
}

// BlacklistAddress derives the BlacklistEntry PDA for a (mint, target) pair.
//
// Seeds: ["blacklist", mint, target], namespaced under the transfer-hook
// program rather than sss-core.
func BlacklistAddress(hookProgram, mint, target solana.PublicKey) (solana.PublicKey, uint8, error) {
	return FindProgramAddress([][]byte{
		[]byte(BlacklistSeed),
		mint[:],
		target[:],
	}, hookProgram)
}

// ExtraAccountMetasAddress derives the transfer-hook metadata PDA for a mint.
//
// Seeds: ["extra-account-metas", mint]. Token-2022 resolves this account on
// every transfer of a hooked mint.
func ExtraAccountMetasAddress(hookProgram, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return FindProgramAddress([][]byte{
		[]byte(ExtraAccountMetasSeed),
		mint[:],
	}, hookProgram)
}

// AssociatedTokenAddress derives the associated token account for an owner
// and mint under the given token program.
//
// Seeds: [owner, tokenProgram, mint], namespaced under the associated-token
// program.
func AssociatedTokenAddress(owner, mint, tokenProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	return FindProgramAddress([][]byte{
		owner[:],
		tokenProgram[:],
		mint[:],
	}, AssociatedTokenProgramID)
}
