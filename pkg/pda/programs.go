package pda

import "github.com/gagliardetto/solana-go"

// Fixed program identifiers all derivations are namespaced under.
//
// Core and hook IDs come from the declare_id! blocks in
// sss-programs/sss-core/src/lib.rs and sss-transfer-hook/src/lib.rs. The
// client config may override core and hook for local test validators; the
// token and associated-token IDs are network-wide constants.
var (
	// CoreProgramID is the deployed sss-core token-logic program.
	CoreProgramID = solana.MustPublicKeyFromBase58("SSSCFmmtaU1oToJ9eMqzTtPbK9EAyoXdivUG4irBHVP")

	// HookProgramID is the deployed sss-transfer-hook compliance program.
	HookProgramID = solana.MustPublicKeyFromBase58("HookFvKFaoF9KL8TUXUnQK5r2mJoMYdBENu549seRyXW")

	// Token2022ProgramID is the SPL Token-2022 program that owns all SSS mints.
	Token2022ProgramID = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1pHnBqCXEpPxuEb")

	// AssociatedTokenProgramID derives per-owner token accounts.
	AssociatedTokenProgramID = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")

	// SystemProgramID funds and allocates new accounts.
	SystemProgramID = solana.SystemProgramID
)
