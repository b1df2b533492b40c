// Package client provides the high-level API for operating an SSS stablecoin.
//
// The Client facade orchestrates the lower layers into complete operations:
//
//  1. CreateStablecoin / LoadStablecoin - config lifecycle
//  2. Mint / Burn / Seize - supply movement
//  3. Freeze / Thaw / Pause / Unpause - circuit breakers
//  4. GrantRole / RevokeRole / HasRole - access control
//  5. AddToBlacklist / RemoveFromBlacklist / IsBlacklisted - compliance list
//  6. ConfidentialDeposit / ApplyPendingBalance / ConfidentialWithdraw /
//     ConfidentialTransfer - encrypted balance lifecycle
//
// Every operation derives addresses and builds instructions locally, runs
// the precondition checks that are statically knowable from fetched state,
// and delegates signing and submission to the TransactionExecutor. The
// client holds no persistent state of its own; the ledger is the sole
// source of truth.
package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"github.com/sss-labs/sss-go/pkg/confidential"
	"github.com/sss-labs/sss-go/pkg/instruction"
	"github.com/sss-labs/sss-go/pkg/pda"
	"github.com/sss-labs/sss-go/pkg/state"
)

// Client is the stablecoin control-plane facade. Construct with NewClient;
// the zero value is not usable.
type Client struct {
	fetcher  AccountFetcher
	executor TransactionExecutor
	proofs   confidential.ProofProvider

	builder  *instruction.Builder
	cbuilder *confidential.Builder
	log      zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger attaches a structured logger. The default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithProofProvider attaches the external proof service required by
// ConfidentialWithdraw and ConfidentialTransfer.
func WithProofProvider(p confidential.ProofProvider) Option {
	return func(c *Client) { c.proofs = p }
}

// WithPrograms overrides the canonical program IDs, for local test
// validators running freshly deployed copies.
func WithPrograms(core, hook solana.PublicKey) Option {
	return func(c *Client) {
		c.builder.Core = core
		c.builder.Hook = hook
	}
}

// NewClient assembles a facade over the given collaborators.
func NewClient(fetcher AccountFetcher, executor TransactionExecutor, opts ...Option) *Client {
	c := &Client{
		fetcher:  fetcher,
		executor: executor,
		builder:  instruction.NewBuilder(),
		cbuilder: confidential.NewBuilder(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ============================================================================
// Config lifecycle
// ============================================================================

// CreateStablecoin initializes the config for a pre-created Token-2022 mint.
//
// The mint is fetched first and its extensions checked against what the
// preset (plus any overrides) requires; a mint created without a required
// extension fails fast with PRESET_MISMATCH rather than attempting a
// runtime retrofit. Under a hook-enabled preset the extra-account-metas
// bootstrap is included in the same atomic transaction.
func (c *Client) CreateStablecoin(ctx context.Context, p instruction.InitializeParams) (solana.Signature, error) {
	data, err := c.fetcher.FetchAccount(ctx, p.Mint)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return solana.Signature{}, &state.PreconditionError{
				Code:    state.ErrPresetMismatch,
				Message: "mint account does not exist",
			}
		}
		return solana.Signature{}, c.defect(err)
	}
	mintInfo, err := state.DecodeMintInfo(data)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}

	features := resolveFeatures(p)
	if err := checkPresetFeatures(mintInfo, features); err != nil {
		return solana.Signature{}, c.defect(err)
	}

	init, err := c.builder.Initialize(p)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	ixs := []solana.Instruction{init}
	if features.TransferHook {
		metas, err := c.builder.InitializeExtraAccountMetas(p.Authority, p.Mint)
		if err != nil {
			return solana.Signature{}, c.defect(err)
		}
		ixs = append(ixs, metas)
	}

	sig, err := c.executor.Execute(ctx, ixs, []solana.PublicKey{p.Authority})
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	c.log.Info().
		Stringer("mint", p.Mint).
		Str("preset", p.Preset.ID()).
		Stringer("signature", sig).
		Msg("stablecoin created")
	return sig, nil
}

// resolveFeatures applies per-feature overrides to the preset defaults.
func resolveFeatures(p instruction.InitializeParams) state.Features {
	f := p.Preset.Features()
	if p.EnablePermanentDelegate != nil {
		f.PermanentDelegate = *p.EnablePermanentDelegate
	}
	if p.EnableTransferHook != nil {
		f.TransferHook = *p.EnableTransferHook
	}
	if p.DefaultAccountFrozen != nil {
		f.DefaultAccountFrozen = *p.DefaultAccountFrozen
	}
	return f
}

// checkPresetFeatures verifies the mint carries every extension the feature
// set requires.
func checkPresetFeatures(mint *state.MintInfo, f state.Features) error {
	required := map[state.ExtensionType]bool{
		state.ExtPermanentDelegate:        f.PermanentDelegate,
		state.ExtTransferHook:             f.TransferHook,
		state.ExtDefaultAccountState:      f.DefaultAccountFrozen,
		state.ExtConfidentialTransferMint: f.ConfidentialTransfer,
	}
	for ext, want := range required {
		if want && !mint.HasExtension(ext) {
			return &state.PreconditionError{
				Code:    state.ErrPresetMismatch,
				Message: fmt.Sprintf("mint was created without required extension %d", ext),
			}
		}
	}
	return nil
}

// LoadStablecoin fetches and decodes the config for a mint.
func (c *Client) LoadStablecoin(ctx context.Context, mint solana.PublicKey) (*state.Config, error) {
	config, _, err := pda.ConfigAddress(c.builder.Core, mint)
	if err != nil {
		return nil, c.defect(err)
	}
	data, err := c.fetcher.FetchAccount(ctx, config)
	if err != nil {
		return nil, err
	}
	return state.DecodeConfig(data)
}

// ============================================================================
// Supply movement
// ============================================================================

// Mint credits amount (base units) to the recipient's associated token
// account. priceFeed, when non-nil, makes the program re-denominate the
// supply cap through the oracle before its cap check.
func (c *Client) Mint(ctx context.Context, minter, mint, recipient solana.PublicKey, amount uint64, priceFeed *solana.PublicKey) (solana.Signature, error) {
	dest, _, err := pda.AssociatedTokenAddress(recipient, mint, c.builder.TokenProgram)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	ix, err := c.builder.MintTokens(minter, mint, dest, amount, priceFeed)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	return c.execute(ctx, "mint", mint, ix, minter)
}

// Burn debits amount (base units) from the holder's associated token account
// through the permanent delegate.
func (c *Client) Burn(ctx context.Context, burner, mint, holder solana.PublicKey, amount uint64) (solana.Signature, error) {
	source, _, err := pda.AssociatedTokenAddress(holder, mint, c.builder.TokenProgram)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	ix, err := c.builder.BurnTokens(burner, mint, source, amount)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	return c.execute(ctx, "burn", mint, ix, burner)
}

// Seize moves amount between two token accounts through the permanent
// delegate. Works while paused; that is the point of it.
func (c *Client) Seize(ctx context.Context, seizer, mint, source, destination solana.PublicKey, amount uint64) (solana.Signature, error) {
	ix, err := c.builder.Seize(seizer, mint, source, destination, amount)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	return c.execute(ctx, "seize", mint, ix, seizer)
}

// ============================================================================
// Circuit breakers
// ============================================================================

// Freeze freezes one token account.
func (c *Client) Freeze(ctx context.Context, freezer, mint, tokenAccount solana.PublicKey) (solana.Signature, error) {
	ix, err := c.builder.FreezeAccount(freezer, mint, tokenAccount)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	return c.execute(ctx, "freeze", mint, ix, freezer)
}

// Thaw unfreezes one token account.
func (c *Client) Thaw(ctx context.Context, freezer, mint, tokenAccount solana.PublicKey) (solana.Signature, error) {
	ix, err := c.builder.ThawAccount(freezer, mint, tokenAccount)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	return c.execute(ctx, "thaw", mint, ix, freezer)
}

// Pause halts mint, burn, freeze, and thaw until Unpause.
func (c *Client) Pause(ctx context.Context, pauser, mint solana.PublicKey) (solana.Signature, error) {
	ix, err := c.builder.Pause(pauser, mint)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	return c.execute(ctx, "pause", mint, ix, pauser)
}

// Unpause lifts an emergency pause.
func (c *Client) Unpause(ctx context.Context, pauser, mint solana.PublicKey) (solana.Signature, error) {
	ix, err := c.builder.Unpause(pauser, mint)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	return c.execute(ctx, "unpause", mint, ix, pauser)
}

// ============================================================================
// Access control
// ============================================================================

// GrantRole creates the grant account for (mint, grantee, role).
func (c *Client) GrantRole(ctx context.Context, admin, mint, grantee solana.PublicKey, role state.Role) (solana.Signature, error) {
	ix, err := c.builder.GrantRole(admin, mint, grantee, role)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	return c.execute(ctx, "grant "+role.String(), mint, ix, admin)
}

// RevokeRole closes the grant account for (mint, grantee, role). Revoking an
// ungranted role is not prevented locally; the program's rejection comes
// back as a ProgramError.
func (c *Client) RevokeRole(ctx context.Context, admin, mint, grantee solana.PublicKey, role state.Role) (solana.Signature, error) {
	ix, err := c.builder.RevokeRole(admin, mint, grantee, role)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	return c.execute(ctx, "revoke "+role.String(), mint, ix, admin)
}

// HasRole reports whether holder currently holds role for the mint. The
// grant account's existence is the grant; absence is false, never an error.
func (c *Client) HasRole(ctx context.Context, mint, holder solana.PublicKey, role state.Role) (bool, error) {
	addr, err := c.roleAddress(mint, holder, role)
	if err != nil {
		return false, err
	}
	_, err = c.fetcher.FetchAccount(ctx, addr)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetRoleGrant fetches and decodes the grant account, including quota and
// audit fields. Returns ErrAccountNotFound when the role is not held.
func (c *Client) GetRoleGrant(ctx context.Context, mint, holder solana.PublicKey, role state.Role) (*state.RoleGrant, error) {
	addr, err := c.roleAddress(mint, holder, role)
	if err != nil {
		return nil, err
	}
	data, err := c.fetcher.FetchAccount(ctx, addr)
	if err != nil {
		return nil, err
	}
	return state.DecodeRoleGrant(data)
}

// TransferAuthority hands the config authority to a new address, granting it
// Admin in the same atomic step.
func (c *Client) TransferAuthority(ctx context.Context, admin, mint, newAuthority solana.PublicKey) (solana.Signature, error) {
	ix, err := c.builder.TransferAuthority(admin, mint, newAuthority)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	return c.execute(ctx, "transfer authority", mint, ix, admin)
}

// UpdateSupplyCap replaces the supply cap; nil removes it.
func (c *Client) UpdateSupplyCap(ctx context.Context, admin, mint solana.PublicKey, newCap *uint64) (solana.Signature, error) {
	ix, err := c.builder.UpdateSupplyCap(admin, mint, newCap)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	return c.execute(ctx, "update supply cap", mint, ix, admin)
}

// UpdateMinter replaces a minter's quota; nil means unlimited.
func (c *Client) UpdateMinter(ctx context.Context, admin, mint, minter solana.PublicKey, newQuota *uint64) (solana.Signature, error) {
	ix, err := c.builder.UpdateMinter(admin, mint, minter, newQuota)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	return c.execute(ctx, "update minter", mint, ix, admin)
}

// ============================================================================
// Compliance list
// ============================================================================

// AddToBlacklist creates the blacklist entry for target under the mint.
func (c *Client) AddToBlacklist(ctx context.Context, blacklister, mint, target solana.PublicKey, reason string) (solana.Signature, error) {
	ix, err := c.builder.AddToBlacklist(blacklister, mint, target, reason)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	return c.execute(ctx, "blacklist add", mint, ix, blacklister)
}

// RemoveFromBlacklist closes the blacklist entry for target.
func (c *Client) RemoveFromBlacklist(ctx context.Context, blacklister, mint, target solana.PublicKey) (solana.Signature, error) {
	ix, err := c.builder.RemoveFromBlacklist(blacklister, mint, target)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	return c.execute(ctx, "blacklist remove", mint, ix, blacklister)
}

// IsBlacklisted reports whether target is blacklisted under the mint.
// Entry existence is the state; absence is false, never an error.
func (c *Client) IsBlacklisted(ctx context.Context, mint, target solana.PublicKey) (bool, error) {
	addr, _, err := pda.BlacklistAddress(c.builder.Hook, mint, target)
	if err != nil {
		return false, c.defect(err)
	}
	_, err = c.fetcher.FetchAccount(ctx, addr)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetBlacklistEntry fetches and decodes the entry, including the reason and
// audit fields. Returns ErrAccountNotFound when target is not blacklisted.
func (c *Client) GetBlacklistEntry(ctx context.Context, mint, target solana.PublicKey) (*state.BlacklistEntry, error) {
	addr, _, err := pda.BlacklistAddress(c.builder.Hook, mint, target)
	if err != nil {
		return nil, c.defect(err)
	}
	data, err := c.fetcher.FetchAccount(ctx, addr)
	if err != nil {
		return nil, err
	}
	return state.DecodeBlacklistEntry(data)
}

// ============================================================================
// Confidential balance lifecycle
// ============================================================================

// ConfidentialDeposit moves amount from the owner's public balance into the
// confidential pending balance. Proof-free; fails fast if the owner's token
// account has no configured confidential extension.
func (c *Client) ConfidentialDeposit(ctx context.Context, owner, mint solana.PublicKey, amount uint64) (solana.Signature, error) {
	token, st, err := c.confidentialState(ctx, owner, mint)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	if _, err := confidential.Deposit(st, amount); err != nil {
		return solana.Signature{}, c.defect(err)
	}
	decimals, err := c.mintDecimals(ctx, mint)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}

	ix := c.cbuilder.Deposit(token, mint, owner, amount, decimals)
	return c.execute(ctx, "confidential deposit", mint, ix, owner)
}

// ApplyPendingBalance acknowledges all pending confidential credits into the
// available balance. The live credit counter is read immediately before
// building so the program's replay check passes.
func (c *Client) ApplyPendingBalance(ctx context.Context, owner, mint solana.PublicKey) (solana.Signature, error) {
	token, st, err := c.confidentialState(ctx, owner, mint)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	if !st.Configured {
		return solana.Signature{}, &state.PreconditionError{
			Code:    state.ErrUnconfiguredAccount,
			Message: "apply pending balance requires a configured confidential account",
		}
	}
	if st.PendingCreditCounter == 0 {
		return solana.Signature{}, &state.PreconditionError{
			Code:    state.ErrZeroPendingBalance,
			Message: "no pending credits to apply",
		}
	}

	ix := c.cbuilder.ApplyPendingBalance(token, owner, st.PendingCreditCounter)
	return c.execute(ctx, "apply pending balance", mint, ix, owner)
}

// ConfidentialWithdraw moves amount from the available balance back to the
// public balance. Proof-gated: snapshot is the caller's plaintext view of
// the account, validated locally and handed to the proof service.
func (c *Client) ConfidentialWithdraw(ctx context.Context, owner, mint solana.PublicKey, amount uint64, snapshot confidential.AccountState) (solana.Signature, error) {
	if c.proofs == nil {
		return solana.Signature{}, ErrNoProofProvider
	}
	if _, err := confidential.Withdraw(snapshot, amount); err != nil {
		return solana.Signature{}, c.defect(err)
	}
	token, _, err := pda.AssociatedTokenAddress(owner, mint, c.builder.TokenProgram)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	decimals, err := c.mintDecimals(ctx, mint)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	proof, err := c.proofs.GenerateProof(ctx, confidential.ProofRequest{
		Op:     confidential.ProofOpWithdraw,
		State:  snapshot,
		Amount: amount,
	})
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}

	ix := c.cbuilder.Withdraw(token, mint, owner, amount, decimals, proof)
	return c.execute(ctx, "confidential withdraw", mint, ix, owner)
}

// ConfidentialTransfer moves amount from the owner's available balance into
// the recipient's pending balance. Proof-gated like ConfidentialWithdraw.
func (c *Client) ConfidentialTransfer(ctx context.Context, owner, mint, recipient solana.PublicKey, amount uint64, snapshot confidential.AccountState) (solana.Signature, error) {
	if c.proofs == nil {
		return solana.Signature{}, ErrNoProofProvider
	}
	if _, err := confidential.Transfer(snapshot, amount); err != nil {
		return solana.Signature{}, c.defect(err)
	}
	source, _, err := pda.AssociatedTokenAddress(owner, mint, c.builder.TokenProgram)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	dest, _, err := pda.AssociatedTokenAddress(recipient, mint, c.builder.TokenProgram)
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}
	proof, err := c.proofs.GenerateProof(ctx, confidential.ProofRequest{
		Op:     confidential.ProofOpTransfer,
		State:  snapshot,
		Amount: amount,
	})
	if err != nil {
		return solana.Signature{}, c.defect(err)
	}

	ix := c.cbuilder.Transfer(source, mint, dest, owner, proof)
	return c.execute(ctx, "confidential transfer", mint, ix, owner)
}

// ============================================================================
// Internal helpers
// ============================================================================

// defect logs derivation failures before they propagate. Exhausting the bump
// space should never happen for real seed material, so it is reported as a
// client defect rather than an operational condition.
func (c *Client) defect(err error) error {
	var derr *pda.DerivationError
	if errors.As(err, &derr) {
		c.log.Error().Str("code", derr.Code).Err(derr).Msg("address derivation failed")
	}
	return err
}

func (c *Client) roleAddress(mint, holder solana.PublicKey, role state.Role) (solana.PublicKey, error) {
	config, _, err := pda.ConfigAddress(c.builder.Core, mint)
	if err != nil {
		return solana.PublicKey{}, c.defect(err)
	}
	addr, _, err := pda.RoleAddress(c.builder.Core, config, holder, role.Code())
	return addr, c.defect(err)
}

// confidentialState resolves the owner's associated token account and decodes
// its confidential extension. A missing token account decodes to the
// unconfigured state, which the lifecycle checks then reject.
func (c *Client) confidentialState(ctx context.Context, owner, mint solana.PublicKey) (solana.PublicKey, confidential.AccountState, error) {
	token, _, err := pda.AssociatedTokenAddress(owner, mint, c.builder.TokenProgram)
	if err != nil {
		return solana.PublicKey{}, confidential.AccountState{}, err
	}
	data, err := c.fetcher.FetchAccount(ctx, token)
	if errors.Is(err, ErrAccountNotFound) {
		return token, confidential.AccountState{}, nil
	}
	if err != nil {
		return solana.PublicKey{}, confidential.AccountState{}, err
	}
	st, err := confidential.DecodeAccountState(data)
	if err != nil {
		return solana.PublicKey{}, confidential.AccountState{}, err
	}
	return token, st, nil
}

func (c *Client) mintDecimals(ctx context.Context, mint solana.PublicKey) (uint8, error) {
	data, err := c.fetcher.FetchAccount(ctx, mint)
	if err != nil {
		return 0, err
	}
	info, err := state.DecodeMintInfo(data)
	if err != nil {
		return 0, err
	}
	return info.Decimals, nil
}

// execute submits a single instruction and logs the outcome.
func (c *Client) execute(ctx context.Context, op string, mint solana.PublicKey, ix solana.Instruction, signer solana.PublicKey) (solana.Signature, error) {
	sig, err := c.executor.Execute(ctx, []solana.Instruction{ix}, []solana.PublicKey{signer})
	if err != nil {
		c.log.Error().Str("op", op).Stringer("mint", mint).Err(err).Msg("operation failed")
		return solana.Signature{}, c.defect(err)
	}
	c.log.Debug().Str("op", op).Stringer("mint", mint).Stringer("signature", sig).Msg("operation submitted")
	return sig, nil
}
