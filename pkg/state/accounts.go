package state

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// RoleGrant is a decoded snapshot of an on-chain RoleAccount.
//
// Corresponds to: sss-core/src/state/role.rs (RoleAccount). The account lives
// at a PDA derived from (config, holder, role code); its existence IS the
// grant. Revocation closes the account, so absence means ungranted; there is
// no stored boolean to consult.
type RoleGrant struct {
	Config    solana.PublicKey // Config this grant belongs to
	Address   solana.PublicKey // The grantee
	Role      Role             // Granted role
	GrantedBy solana.PublicKey // Admin that created the grant
	GrantedAt int64            // Unix timestamp of the grant
	Bump      uint8            // Role PDA bump

	// MintQuota caps the cumulative amount this holder may mint; nil means
	// unlimited. Only meaningful for RoleMinter.
	MintQuota *uint64
	// AmountMinted is the cumulative amount minted under this grant.
	AmountMinted uint64
}

type roleGrantWire struct {
	Config       solana.PublicKey
	Address      solana.PublicKey
	Role         uint8
	GrantedBy    solana.PublicKey
	GrantedAt    int64
	Bump         uint8
	MintQuota    *uint64 `bin:"optional"`
	AmountMinted uint64
}

// DecodeRoleGrant decodes a RoleAccount account image.
func DecodeRoleGrant(data []byte) (*RoleGrant, error) {
	payload, err := checkDiscriminator(data, "RoleAccount")
	if err != nil {
		return nil, err
	}

	var w roleGrantWire
	if err := bin.NewBorshDecoder(payload).Decode(&w); err != nil {
		return nil, &CorruptStateError{
			Code:    ErrMalformedAccount,
			Message: fmt.Sprintf("decoding RoleAccount: %v", err),
		}
	}

	role, err := roleFromCode(w.Role)
	if err != nil {
		return nil, err
	}
	return &RoleGrant{
		Config:       w.Config,
		Address:      w.Address,
		Role:         role,
		GrantedBy:    w.GrantedBy,
		GrantedAt:    w.GrantedAt,
		Bump:         w.Bump,
		MintQuota:    w.MintQuota,
		AmountMinted: w.AmountMinted,
	}, nil
}

// EncodeRoleGrant produces the account image DecodeRoleGrant accepts. Test
// and simulator support, like EncodeConfig.
func EncodeRoleGrant(g *RoleGrant) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(accountDiscriminator("RoleAccount"))
	w := roleGrantWire{
		Config:       g.Config,
		Address:      g.Address,
		Role:         g.Role.Code(),
		GrantedBy:    g.GrantedBy,
		GrantedAt:    g.GrantedAt,
		Bump:         g.Bump,
		MintQuota:    g.MintQuota,
		AmountMinted: g.AmountMinted,
	}
	if err := bin.NewBorshEncoder(&buf).Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BlacklistEntry is a decoded snapshot of an on-chain blacklist account.
//
// Corresponds to: sss-transfer-hook/src/state/blacklist.rs (BlacklistEntry).
// Presence of the derived account denotes blacklisted state; removal closes
// the account. Only meaningful under the compliant preset, whose transfer
// hook checks sender and receiver entries on every transfer.
type BlacklistEntry struct {
	Mint    solana.PublicKey // The stablecoin mint this entry applies to
	Address solana.PublicKey // The blacklisted wallet
	AddedBy solana.PublicKey // Blacklister that created the entry
	AddedAt int64            // Unix timestamp of the entry
	Reason  string           // Compliance reason, max 512 chars
	Bump    uint8            // Entry PDA bump
}

type blacklistEntryWire struct {
	Mint    solana.PublicKey
	Address solana.PublicKey
	AddedBy solana.PublicKey
	AddedAt int64
	Reason  string
	Bump    uint8
}

// DecodeBlacklistEntry decodes a BlacklistEntry account image.
func DecodeBlacklistEntry(data []byte) (*BlacklistEntry, error) {
	payload, err := checkDiscriminator(data, "BlacklistEntry")
	if err != nil {
		return nil, err
	}

	var w blacklistEntryWire
	if err := bin.NewBorshDecoder(payload).Decode(&w); err != nil {
		return nil, &CorruptStateError{
			Code:    ErrMalformedAccount,
			Message: fmt.Sprintf("decoding BlacklistEntry: %v", err),
		}
	}
	return &BlacklistEntry{
		Mint:    w.Mint,
		Address: w.Address,
		AddedBy: w.AddedBy,
		AddedAt: w.AddedAt,
		Reason:  w.Reason,
		Bump:    w.Bump,
	}, nil
}

// EncodeBlacklistEntry produces the account image DecodeBlacklistEntry
// accepts.
func EncodeBlacklistEntry(e *BlacklistEntry) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(accountDiscriminator("BlacklistEntry"))
	w := blacklistEntryWire{
		Mint:    e.Mint,
		Address: e.Address,
		AddedBy: e.AddedBy,
		AddedAt: e.AddedAt,
		Reason:  e.Reason,
		Bump:    e.Bump,
	}
	if err := bin.NewBorshEncoder(&buf).Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
