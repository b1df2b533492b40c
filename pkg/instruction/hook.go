package instruction

import (
	"github.com/gagliardetto/solana-go"

	"github.com/sss-labs/sss-go/pkg/pda"
	"github.com/sss-labs/sss-go/pkg/state"
)

// InitializeExtraAccountMetas builds the hook bootstrap instruction. The
// extra-account-metas PDA tells Token-2022 which additional accounts to
// resolve on every hooked transfer; it must exist before the first transfer
// of a hook-enabled mint.
func (b *Builder) InitializeExtraAccountMetas(payer, mint solana.PublicKey) (*Instruction, error) {
	metas, _, err := pda.ExtraAccountMetasAddress(b.Hook, mint)
	if err != nil {
		return nil, err
	}

	data, err := encode("initialize_extra_account_metas", nil)
	if err != nil {
		return nil, err
	}

	return &Instruction{
		program: b.Hook,
		accounts: []*solana.AccountMeta{
			solana.Meta(payer).SIGNER().WRITE(),
			solana.Meta(metas).WRITE(),
			solana.Meta(mint),
			solana.Meta(pda.SystemProgramID),
		},
		data: data,
	}, nil
}

type addToBlacklistArgs struct {
	Reason string
}

// AddToBlacklist builds the blacklist-entry creation instruction. The
// blacklister's role grant lives under the core program; the entry itself
// lives under the hook program, keyed by mint and target address.
func (b *Builder) AddToBlacklist(blacklister, mint, target solana.PublicKey, reason string) (*Instruction, error) {
	if len(reason) > state.MaxReasonLen {
		return nil, &state.ValidationError{
			Code:    state.ErrReasonTooLong,
			Message: "blacklist reason exceeds maximum length",
		}
	}

	config, err := b.configFor(mint)
	if err != nil {
		return nil, err
	}
	blacklisterRole, err := b.roleFor(config, blacklister, state.RoleBlacklister.Code())
	if err != nil {
		return nil, err
	}
	entry, _, err := pda.BlacklistAddress(b.Hook, mint, target)
	if err != nil {
		return nil, err
	}

	data, err := encode("add_to_blacklist", addToBlacklistArgs{Reason: reason})
	if err != nil {
		return nil, err
	}

	return &Instruction{
		program: b.Hook,
		accounts: []*solana.AccountMeta{
			solana.Meta(blacklister).SIGNER().WRITE(),
			solana.Meta(blacklisterRole),
			solana.Meta(mint),
			solana.Meta(target),
			solana.Meta(entry).WRITE(),
			solana.Meta(pda.SystemProgramID),
		},
		data: data,
	}, nil
}

// RemoveFromBlacklist builds the entry-removal instruction, closing the entry
// account back to the blacklister.
func (b *Builder) RemoveFromBlacklist(blacklister, mint, target solana.PublicKey) (*Instruction, error) {
	config, err := b.configFor(mint)
	if err != nil {
		return nil, err
	}
	blacklisterRole, err := b.roleFor(config, blacklister, state.RoleBlacklister.Code())
	if err != nil {
		return nil, err
	}
	entry, _, err := pda.BlacklistAddress(b.Hook, mint, target)
	if err != nil {
		return nil, err
	}

	data, err := encode("remove_from_blacklist", nil)
	if err != nil {
		return nil, err
	}

	return &Instruction{
		program: b.Hook,
		accounts: []*solana.AccountMeta{
			solana.Meta(blacklister).SIGNER().WRITE(),
			solana.Meta(blacklisterRole),
			solana.Meta(mint),
			solana.Meta(entry).WRITE(),
		},
		data: data,
	}, nil
}
