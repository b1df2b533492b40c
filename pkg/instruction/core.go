package instruction

import (
	"github.com/gagliardetto/solana-go"

	"github.com/sss-labs/sss-go/pkg/pda"
	"github.com/sss-labs/sss-go/pkg/state"
)

// InitializeParams carries the creation-time arguments for a stablecoin
// config. The mint must already exist as a Token-2022 mint carrying the
// extensions the preset requires; initialization never retrofits extensions.
type InitializeParams struct {
	Authority solana.PublicKey // Payer and initial admin
	Mint      solana.PublicKey // Pre-created Token-2022 mint
	Preset    state.Preset
	Name      string
	Symbol    string
	URI       string
	Decimals  uint8
	SupplyCap *uint64 // nil = uncapped

	// Per-feature overrides of the preset defaults; nil keeps the default.
	EnablePermanentDelegate *bool
	EnableTransferHook      *bool
	DefaultAccountFrozen    *bool
}

type initializeArgs struct {
	Preset                  uint8
	Name                    string
	Symbol                  string
	URI                     string
	Decimals                uint8
	SupplyCap               *uint64 `bin:"optional"`
	EnablePermanentDelegate *bool   `bin:"optional"`
	EnableTransferHook      *bool   `bin:"optional"`
	DefaultAccountFrozen    *bool   `bin:"optional"`
}

// Initialize builds the config-creation instruction. The authority receives
// the Admin role in the same atomic instruction.
func (b *Builder) Initialize(p InitializeParams) (*Instruction, error) {
	if err := state.ValidateMetadata(p.Name, p.Symbol, p.URI); err != nil {
		return nil, err
	}

	config, err := b.configFor(p.Mint)
	if err != nil {
		return nil, err
	}
	adminRole, err := b.roleFor(config, p.Authority, state.RoleAdmin.Code())
	if err != nil {
		return nil, err
	}

	data, err := encode("initialize", initializeArgs{
		Preset:                  p.Preset.Code(),
		Name:                    p.Name,
		Symbol:                  p.Symbol,
		URI:                     p.URI,
		Decimals:                p.Decimals,
		SupplyCap:               p.SupplyCap,
		EnablePermanentDelegate: p.EnablePermanentDelegate,
		EnableTransferHook:      p.EnableTransferHook,
		DefaultAccountFrozen:    p.DefaultAccountFrozen,
	})
	if err != nil {
		return nil, err
	}

	return &Instruction{
		program: b.Core,
		accounts: []*solana.AccountMeta{
			solana.Meta(p.Authority).SIGNER().WRITE(),
			solana.Meta(config).WRITE(),
			solana.Meta(p.Mint),
			solana.Meta(adminRole).WRITE(),
			solana.Meta(b.TokenProgram),
			solana.Meta(pda.SystemProgramID),
		},
		data: data,
	}, nil
}

type amountArgs struct {
	Amount uint64
}

// MintTokens builds a mint instruction crediting the destination token
// account. An optional Pyth price feed may be appended; when present the
// program re-denominates the supply cap from USD to token units before the
// cap check.
func (b *Builder) MintTokens(minter, mint, destination solana.PublicKey, amount uint64, priceFeed *solana.PublicKey) (*Instruction, error) {
	if err := requireNonZero(amount); err != nil {
		return nil, err
	}

	config, err := b.configFor(mint)
	if err != nil {
		return nil, err
	}
	minterRole, err := b.roleFor(config, minter, state.RoleMinter.Code())
	if err != nil {
		return nil, err
	}

	data, err := encode("mint_tokens", amountArgs{Amount: amount})
	if err != nil {
		return nil, err
	}

	accounts := []*solana.AccountMeta{
		solana.Meta(minter).SIGNER(),
		solana.Meta(config).WRITE(),
		solana.Meta(minterRole).WRITE(), // mutable for quota tracking
		solana.Meta(mint).WRITE(),
		solana.Meta(destination).WRITE(),
		solana.Meta(b.TokenProgram),
	}
	if priceFeed != nil {
		accounts = append(accounts, solana.Meta(*priceFeed))
	}

	return &Instruction{program: b.Core, accounts: accounts, data: data}, nil
}

// BurnTokens builds a burn instruction debiting the source token account via
// the config's permanent-delegate authority.
func (b *Builder) BurnTokens(burner, mint, source solana.PublicKey, amount uint64) (*Instruction, error) {
	if err := requireNonZero(amount); err != nil {
		return nil, err
	}

	config, err := b.configFor(mint)
	if err != nil {
		return nil, err
	}
	burnerRole, err := b.roleFor(config, burner, state.RoleBurner.Code())
	if err != nil {
		return nil, err
	}

	data, err := encode("burn_tokens", amountArgs{Amount: amount})
	if err != nil {
		return nil, err
	}

	return &Instruction{
		program: b.Core,
		accounts: []*solana.AccountMeta{
			solana.Meta(burner).SIGNER(),
			solana.Meta(config).WRITE(),
			solana.Meta(burnerRole),
			solana.Meta(mint).WRITE(),
			solana.Meta(source).WRITE(),
			solana.Meta(b.TokenProgram),
		},
		data: data,
	}, nil
}

// freezeThaw builds the shared account shape of freeze_account/thaw_account.
func (b *Builder) freezeThaw(name string, freezer, mint, tokenAccount solana.PublicKey) (*Instruction, error) {
	config, err := b.configFor(mint)
	if err != nil {
		return nil, err
	}
	freezerRole, err := b.roleFor(config, freezer, state.RoleFreezer.Code())
	if err != nil {
		return nil, err
	}

	data, err := encode(name, nil)
	if err != nil {
		return nil, err
	}

	return &Instruction{
		program: b.Core,
		accounts: []*solana.AccountMeta{
			solana.Meta(freezer).SIGNER(),
			solana.Meta(config),
			solana.Meta(freezerRole),
			solana.Meta(mint),
			solana.Meta(tokenAccount).WRITE(),
			solana.Meta(b.TokenProgram),
		},
		data: data,
	}, nil
}

// FreezeAccount builds a freeze instruction for one token account.
func (b *Builder) FreezeAccount(freezer, mint, tokenAccount solana.PublicKey) (*Instruction, error) {
	return b.freezeThaw("freeze_account", freezer, mint, tokenAccount)
}

// ThawAccount builds a thaw instruction for one token account.
func (b *Builder) ThawAccount(freezer, mint, tokenAccount solana.PublicKey) (*Instruction, error) {
	return b.freezeThaw("thaw_account", freezer, mint, tokenAccount)
}

// pauseUnpause builds the shared account shape of pause/unpause.
func (b *Builder) pauseUnpause(name string, pauser, mint solana.PublicKey) (*Instruction, error) {
	config, err := b.configFor(mint)
	if err != nil {
		return nil, err
	}
	pauserRole, err := b.roleFor(config, pauser, state.RolePauser.Code())
	if err != nil {
		return nil, err
	}

	data, err := encode(name, nil)
	if err != nil {
		return nil, err
	}

	return &Instruction{
		program: b.Core,
		accounts: []*solana.AccountMeta{
			solana.Meta(pauser).SIGNER(),
			solana.Meta(config).WRITE(),
			solana.Meta(pauserRole),
		},
		data: data,
	}, nil
}

// Pause builds the pause instruction, halting mint/burn/freeze/thaw.
func (b *Builder) Pause(pauser, mint solana.PublicKey) (*Instruction, error) {
	return b.pauseUnpause("pause", pauser, mint)
}

// Unpause builds the unpause instruction.
func (b *Builder) Unpause(pauser, mint solana.PublicKey) (*Instruction, error) {
	return b.pauseUnpause("unpause", pauser, mint)
}

// Seize builds a permanent-delegate clawback transfer. Seize carries no pause
// gate: it is the one operation that must work during an emergency pause.
func (b *Builder) Seize(seizer, mint, source, destination solana.PublicKey, amount uint64) (*Instruction, error) {
	if err := requireNonZero(amount); err != nil {
		return nil, err
	}

	config, err := b.configFor(mint)
	if err != nil {
		return nil, err
	}
	seizerRole, err := b.roleFor(config, seizer, state.RoleSeizer.Code())
	if err != nil {
		return nil, err
	}

	data, err := encode("seize", amountArgs{Amount: amount})
	if err != nil {
		return nil, err
	}

	return &Instruction{
		program: b.Core,
		accounts: []*solana.AccountMeta{
			solana.Meta(seizer).SIGNER(),
			solana.Meta(config),
			solana.Meta(seizerRole),
			solana.Meta(mint),
			solana.Meta(source).WRITE(),
			solana.Meta(destination).WRITE(),
			solana.Meta(b.TokenProgram),
		},
		data: data,
	}, nil
}

type grantRoleArgs struct {
	Role uint8
}

// GrantRole builds a role-grant instruction. The grant account is created at
// its derived address; the program verifies the caller's own Admin grant.
func (b *Builder) GrantRole(admin, mint, grantee solana.PublicKey, role state.Role) (*Instruction, error) {
	config, err := b.configFor(mint)
	if err != nil {
		return nil, err
	}
	adminRole, err := b.roleFor(config, admin, state.RoleAdmin.Code())
	if err != nil {
		return nil, err
	}
	roleAccount, err := b.roleFor(config, grantee, role.Code())
	if err != nil {
		return nil, err
	}

	data, err := encode("grant_role", grantRoleArgs{Role: role.Code()})
	if err != nil {
		return nil, err
	}

	return &Instruction{
		program: b.Core,
		accounts: []*solana.AccountMeta{
			solana.Meta(admin).SIGNER().WRITE(),
			solana.Meta(config).WRITE(),
			solana.Meta(adminRole),
			solana.Meta(grantee),
			solana.Meta(roleAccount).WRITE(),
			solana.Meta(pda.SystemProgramID),
		},
		data: data,
	}, nil
}

// RevokeRole builds a role-revoke instruction closing the grant account.
// Revoking an ungranted role is not prevented locally; the program reports
// it and the failure is surfaced, never swallowed.
func (b *Builder) RevokeRole(admin, mint, grantee solana.PublicKey, role state.Role) (*Instruction, error) {
	config, err := b.configFor(mint)
	if err != nil {
		return nil, err
	}
	adminRole, err := b.roleFor(config, admin, state.RoleAdmin.Code())
	if err != nil {
		return nil, err
	}
	roleAccount, err := b.roleFor(config, grantee, role.Code())
	if err != nil {
		return nil, err
	}

	data, err := encode("revoke_role", nil)
	if err != nil {
		return nil, err
	}

	return &Instruction{
		program: b.Core,
		accounts: []*solana.AccountMeta{
			solana.Meta(admin).SIGNER().WRITE(),
			solana.Meta(config).WRITE(),
			solana.Meta(adminRole),
			solana.Meta(roleAccount).WRITE(),
		},
		data: data,
	}, nil
}

// TransferAuthority builds the authority-handover instruction, granting the
// new authority an Admin role in the same atomic step.
func (b *Builder) TransferAuthority(admin, mint, newAuthority solana.PublicKey) (*Instruction, error) {
	config, err := b.configFor(mint)
	if err != nil {
		return nil, err
	}
	adminRole, err := b.roleFor(config, admin, state.RoleAdmin.Code())
	if err != nil {
		return nil, err
	}
	newAdminRole, err := b.roleFor(config, newAuthority, state.RoleAdmin.Code())
	if err != nil {
		return nil, err
	}

	data, err := encode("transfer_authority", nil)
	if err != nil {
		return nil, err
	}

	return &Instruction{
		program: b.Core,
		accounts: []*solana.AccountMeta{
			solana.Meta(admin).SIGNER().WRITE(),
			solana.Meta(config).WRITE(),
			solana.Meta(adminRole).WRITE(),
			solana.Meta(newAuthority),
			solana.Meta(newAdminRole).WRITE(),
			solana.Meta(pda.SystemProgramID),
		},
		data: data,
	}, nil
}

type optionalU64Args struct {
	Value *uint64 `bin:"optional"`
}

// UpdateSupplyCap builds the cap-update instruction. A nil cap removes the
// ceiling; the program rejects caps below the current supply.
func (b *Builder) UpdateSupplyCap(admin, mint solana.PublicKey, newCap *uint64) (*Instruction, error) {
	config, err := b.configFor(mint)
	if err != nil {
		return nil, err
	}
	adminRole, err := b.roleFor(config, admin, state.RoleAdmin.Code())
	if err != nil {
		return nil, err
	}

	data, err := encode("update_supply_cap", optionalU64Args{Value: newCap})
	if err != nil {
		return nil, err
	}

	return &Instruction{
		program: b.Core,
		accounts: []*solana.AccountMeta{
			solana.Meta(admin).SIGNER(),
			solana.Meta(config).WRITE(),
			solana.Meta(adminRole),
		},
		data: data,
	}, nil
}

// UpdateMinter builds the per-minter quota update. A nil quota means
// unlimited minting for that grant.
func (b *Builder) UpdateMinter(admin, mint, minter solana.PublicKey, newQuota *uint64) (*Instruction, error) {
	config, err := b.configFor(mint)
	if err != nil {
		return nil, err
	}
	adminRole, err := b.roleFor(config, admin, state.RoleAdmin.Code())
	if err != nil {
		return nil, err
	}
	minterRole, err := b.roleFor(config, minter, state.RoleMinter.Code())
	if err != nil {
		return nil, err
	}

	data, err := encode("update_minter", optionalU64Args{Value: newQuota})
	if err != nil {
		return nil, err
	}

	return &Instruction{
		program: b.Core,
		accounts: []*solana.AccountMeta{
			solana.Meta(admin).SIGNER(),
			solana.Meta(config),
			solana.Meta(adminRole),
			solana.Meta(minterRole).WRITE(),
		},
		data: data,
	}, nil
}

// requireNonZero rejects zero amounts locally; the program enforces the same
// rule with its ZeroAmount error.
func requireNonZero(amount uint64) error {
	if amount == 0 {
		return &state.ValidationError{
			Code:    state.ErrZeroAmount,
			Message: "amount must be greater than zero",
		}
	}
	return nil
}
