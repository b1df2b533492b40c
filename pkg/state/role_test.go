package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRoleNumericEncoding pins the on-chain role codes. These are PDA seeds;
// renumbering them would re-address every grant on chain.
func TestRoleNumericEncoding(t *testing.T) {
	want := map[Role]uint8{
		RoleAdmin:       0,
		RoleMinter:      1,
		RoleFreezer:     2,
		RolePauser:      3,
		RoleBurner:      4,
		RoleBlacklister: 5,
		RoleSeizer:      6,
	}
	for role, code := range want {
		assert.Equal(t, code, role.Code(), "role %s", role)
	}
}

func TestParseRoleRoundTrip(t *testing.T) {
	for _, role := range Roles() {
		parsed, err := ParseRole(role.String())
		require.NoError(t, err)
		assert.Equal(t, role, parsed)
	}
}

func TestParseRoleUnknown(t *testing.T) {
	for _, name := range []string{"", "Admin", "MINTER", "owner", "seize"} {
		_, err := ParseRole(name)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "name %q", name)
		assert.Equal(t, ErrUnknownRole, verr.Code)
	}
}

func TestParsePresetRoundTrip(t *testing.T) {
	for _, p := range []Preset{PresetMinimal, PresetCompliant, PresetConfidential} {
		parsed, err := ParsePreset(p.ID())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
}

func TestParsePresetUnknown(t *testing.T) {
	for _, id := range []string{"", "sss-0", "sss-4", "minimal", "SSS-1"} {
		_, err := ParsePreset(id)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "id %q", id)
		assert.Equal(t, ErrUnknownPreset, verr.Code)
	}
}

// TestPresetFeatures pins the preset-to-feature derivation table from the
// sss-core initialize handler.
func TestPresetFeatures(t *testing.T) {
	assert.Equal(t, Features{PermanentDelegate: true}, PresetMinimal.Features())
	assert.Equal(t, Features{
		PermanentDelegate:    true,
		TransferHook:         true,
		DefaultAccountFrozen: true,
	}, PresetCompliant.Features())
	assert.Equal(t, Features{
		PermanentDelegate:    true,
		ConfidentialTransfer: true,
	}, PresetConfidential.Features())
}

func TestRoleGrantRoundTrip(t *testing.T) {
	g := &RoleGrant{
		Role:         RoleMinter,
		GrantedAt:    1735689600,
		Bump:         253,
		MintQuota:    u64ptr(5_000_000),
		AmountMinted: 1_000_000,
	}
	data, err := EncodeRoleGrant(g)
	require.NoError(t, err)

	decoded, err := DecodeRoleGrant(data)
	require.NoError(t, err)
	assert.Equal(t, g, decoded)
}

func TestDecodeRoleGrantBadRoleCode(t *testing.T) {
	g := &RoleGrant{Role: Role(9)}
	data, err := EncodeRoleGrant(g)
	require.NoError(t, err)

	_, err = DecodeRoleGrant(data)
	var cerr *CorruptStateError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrUnknownRoleCode, cerr.Code)
}

func TestBlacklistEntryRoundTrip(t *testing.T) {
	e := &BlacklistEntry{
		AddedAt: 1735689600,
		Reason:  "sanctions list match",
		Bump:    251,
	}
	data, err := EncodeBlacklistEntry(e)
	require.NoError(t, err)

	decoded, err := DecodeBlacklistEntry(data)
	require.NoError(t, err)
	assert.Equal(t, e, decoded)
}
