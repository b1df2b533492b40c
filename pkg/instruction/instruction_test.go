package instruction

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sss-labs/sss-go/pkg/pda"
	"github.com/sss-labs/sss-go/pkg/state"
)

func testKeys(t *testing.T, n int) []solana.PublicKey {
	t.Helper()
	keys := make([]solana.PublicKey, n)
	for i := range keys {
		keys[i] = solana.NewWallet().PublicKey()
	}
	return keys
}

func TestDiscriminator(t *testing.T) {
	want := sha256.Sum256([]byte("global:mint_tokens"))
	assert.Equal(t, want[:8], Discriminator("mint_tokens"))

	// Distinct names must yield distinct discriminators.
	assert.NotEqual(t, Discriminator("pause"), Discriminator("unpause"))
}

func TestBuildersAreDeterministic(t *testing.T) {
	b := NewBuilder()
	keys := testKeys(t, 3)

	first, err := b.MintTokens(keys[0], keys[1], keys[2], 1_000_000, nil)
	require.NoError(t, err)
	second, err := b.MintTokens(keys[0], keys[1], keys[2], 1_000_000, nil)
	require.NoError(t, err)

	firstData, _ := first.Data()
	secondData, _ := second.Data()
	assert.Equal(t, firstData, secondData)
	require.Equal(t, len(first.Accounts()), len(second.Accounts()))
	for i := range first.Accounts() {
		assert.Equal(t, first.Accounts()[i], second.Accounts()[i])
	}
}

func TestMintTokensLayout(t *testing.T) {
	b := NewBuilder()
	keys := testKeys(t, 3)
	minter, mint, dest := keys[0], keys[1], keys[2]

	ix, err := b.MintTokens(minter, mint, dest, 500_000_000_000, nil)
	require.NoError(t, err)

	assert.Equal(t, b.Core, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	require.Len(t, data, 16)
	assert.Equal(t, Discriminator("mint_tokens"), data[:8])
	assert.Equal(t, uint64(500_000_000_000), binary.LittleEndian.Uint64(data[8:16]))

	accounts := ix.Accounts()
	require.Len(t, accounts, 6)
	assert.Equal(t, minter, accounts[0].PublicKey)
	assert.True(t, accounts[0].IsSigner)
	assert.False(t, accounts[0].IsWritable)
	assert.True(t, accounts[1].IsWritable) // config
	assert.True(t, accounts[2].IsWritable) // minter role, quota tracking
	assert.Equal(t, mint, accounts[3].PublicKey)
	assert.True(t, accounts[3].IsWritable)
	assert.Equal(t, dest, accounts[4].PublicKey)
	assert.True(t, accounts[4].IsWritable)
	assert.Equal(t, b.TokenProgram, accounts[5].PublicKey)
}

func TestMintTokensWithPriceFeed(t *testing.T) {
	b := NewBuilder()
	keys := testKeys(t, 4)
	feed := keys[3]

	ix, err := b.MintTokens(keys[0], keys[1], keys[2], 1, &feed)
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 7)
	last := accounts[6]
	assert.Equal(t, feed, last.PublicKey)
	assert.False(t, last.IsSigner)
	assert.False(t, last.IsWritable)
}

func TestZeroAmountRejected(t *testing.T) {
	b := NewBuilder()
	keys := testKeys(t, 4)

	builders := map[string]func() (*Instruction, error){
		"mint": func() (*Instruction, error) {
			return b.MintTokens(keys[0], keys[1], keys[2], 0, nil)
		},
		"burn": func() (*Instruction, error) {
			return b.BurnTokens(keys[0], keys[1], keys[2], 0)
		},
		"seize": func() (*Instruction, error) {
			return b.Seize(keys[0], keys[1], keys[2], keys[3], 0)
		},
	}

	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			ix, err := build()
			assert.Nil(t, ix)
			var verr *state.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, state.ErrZeroAmount, verr.Code)
		})
	}
}

func TestInitializeEncoding(t *testing.T) {
	b := NewBuilder()
	keys := testKeys(t, 2)
	cap := uint64(1_000_000_000_000)

	ix, err := b.Initialize(InitializeParams{
		Authority: keys[0],
		Mint:      keys[1],
		Preset:    state.PresetMinimal,
		Name:      "Settlement Dollar",
		Symbol:    "USDX",
		URI:       "https://example.org/usdx.json",
		Decimals:  6,
		SupplyCap: &cap,
	})
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	require.Equal(t, Discriminator("initialize"), data[:8])

	// Walk the Borsh payload field by field.
	body := data[8:]
	assert.Equal(t, uint8(1), body[0]) // preset code
	off := 1
	for _, s := range []string{"Settlement Dollar", "USDX", "https://example.org/usdx.json"} {
		require.Equal(t, uint32(len(s)), binary.LittleEndian.Uint32(body[off:off+4]))
		off += 4
		assert.Equal(t, s, string(body[off:off+len(s)]))
		off += len(s)
	}
	assert.Equal(t, uint8(6), body[off]) // decimals
	off++
	require.Equal(t, uint8(1), body[off]) // supply cap present
	off++
	assert.Equal(t, cap, binary.LittleEndian.Uint64(body[off:off+8]))
	off += 8
	// Three absent feature overrides, one tag byte each.
	require.Equal(t, []byte{0, 0, 0}, body[off:off+3])
	assert.Len(t, body, off+3)

	accounts := ix.Accounts()
	require.Len(t, accounts, 6)
	assert.True(t, accounts[0].IsSigner)
	assert.True(t, accounts[0].IsWritable)
	assert.Equal(t, keys[1], accounts[2].PublicKey) // mint, read-only
	assert.False(t, accounts[2].IsWritable)
}

func TestInitializeRejectsOversizedMetadata(t *testing.T) {
	b := NewBuilder()
	keys := testKeys(t, 2)

	_, err := b.Initialize(InitializeParams{
		Authority: keys[0],
		Mint:      keys[1],
		Preset:    state.PresetMinimal,
		Name:      string(bytes.Repeat([]byte{'x'}, state.MaxNameLen+1)),
		Symbol:    "USDX",
		URI:       "https://example.org",
		Decimals:  6,
	})
	var verr *state.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, state.ErrNameTooLong, verr.Code)
}

func TestGrantRolePayload(t *testing.T) {
	b := NewBuilder()
	keys := testKeys(t, 3)

	ix, err := b.GrantRole(keys[0], keys[1], keys[2], state.RoleFreezer)
	require.NoError(t, err)

	data, _ := ix.Data()
	require.Len(t, data, 9)
	assert.Equal(t, Discriminator("grant_role"), data[:8])
	assert.Equal(t, state.RoleFreezer.Code(), data[8])

	accounts := ix.Accounts()
	require.Len(t, accounts, 6)
	assert.Equal(t, keys[2], accounts[3].PublicKey) // grantee, read-only
	assert.True(t, accounts[4].IsWritable)          // role account being created
}

func TestGrantAndRevokeTargetSameRoleAccount(t *testing.T) {
	b := NewBuilder()
	keys := testKeys(t, 3)

	grant, err := b.GrantRole(keys[0], keys[1], keys[2], state.RolePauser)
	require.NoError(t, err)
	revoke, err := b.RevokeRole(keys[0], keys[1], keys[2], state.RolePauser)
	require.NoError(t, err)

	assert.Equal(t, grant.Accounts()[4].PublicKey, revoke.Accounts()[3].PublicKey)

	data, _ := revoke.Data()
	assert.Equal(t, Discriminator("revoke_role"), data) // no args
}

func TestUpdateSupplyCapOptional(t *testing.T) {
	b := NewBuilder()
	keys := testKeys(t, 2)

	uncapped, err := b.UpdateSupplyCap(keys[0], keys[1], nil)
	require.NoError(t, err)
	data, _ := uncapped.Data()
	require.Len(t, data, 9)
	assert.Equal(t, uint8(0), data[8])

	cap := uint64(42)
	capped, err := b.UpdateSupplyCap(keys[0], keys[1], &cap)
	require.NoError(t, err)
	data, _ = capped.Data()
	require.Len(t, data, 17)
	assert.Equal(t, uint8(1), data[8])
	assert.Equal(t, uint64(42), binary.LittleEndian.Uint64(data[9:17]))
}

func TestTransferAuthorityLayout(t *testing.T) {
	b := NewBuilder()
	keys := testKeys(t, 3)
	admin, mint, next := keys[0], keys[1], keys[2]

	ix, err := b.TransferAuthority(admin, mint, next)
	require.NoError(t, err)

	data, _ := ix.Data()
	assert.Equal(t, Discriminator("transfer_authority"), data) // no args

	accounts := ix.Accounts()
	require.Len(t, accounts, 6)
	assert.Equal(t, admin, accounts[0].PublicKey)
	assert.True(t, accounts[0].IsSigner)
	assert.True(t, accounts[0].IsWritable) // pays for the new role, receives the closed one's lamports
	assert.True(t, accounts[1].IsWritable) // config
	assert.True(t, accounts[2].IsWritable) // caller's admin role, closed by the program
	assert.Equal(t, next, accounts[3].PublicKey)
	assert.False(t, accounts[3].IsWritable)
	assert.True(t, accounts[4].IsWritable) // new authority's admin role, created
	assert.NotEqual(t, accounts[2].PublicKey, accounts[4].PublicKey)
	assert.Equal(t, pda.SystemProgramID, accounts[5].PublicKey)
}

func TestUpdateMinterLayout(t *testing.T) {
	b := NewBuilder()
	keys := testKeys(t, 3)
	admin, mint, minter := keys[0], keys[1], keys[2]

	quota := uint64(250_000_000)
	ix, err := b.UpdateMinter(admin, mint, minter, &quota)
	require.NoError(t, err)

	data, _ := ix.Data()
	require.Len(t, data, 17)
	assert.Equal(t, Discriminator("update_minter"), data[:8])
	assert.Equal(t, uint8(1), data[8])
	assert.Equal(t, quota, binary.LittleEndian.Uint64(data[9:17]))

	accounts := ix.Accounts()
	require.Len(t, accounts, 4)
	assert.Equal(t, admin, accounts[0].PublicKey)
	assert.True(t, accounts[0].IsSigner)
	assert.False(t, accounts[0].IsWritable)
	assert.False(t, accounts[1].IsWritable) // config is read-only here, unlike supply cap updates
	assert.False(t, accounts[2].IsWritable) // admin role proves authorization only
	assert.True(t, accounts[3].IsWritable)  // minter role carries the quota
}

func TestPauseUnpause(t *testing.T) {
	b := NewBuilder()
	keys := testKeys(t, 2)

	pause, err := b.Pause(keys[0], keys[1])
	require.NoError(t, err)
	unpause, err := b.Unpause(keys[0], keys[1])
	require.NoError(t, err)

	pauseData, _ := pause.Data()
	unpauseData, _ := unpause.Data()
	assert.Equal(t, Discriminator("pause"), pauseData)
	assert.Equal(t, Discriminator("unpause"), unpauseData)

	// Same account shape either direction.
	require.Len(t, pause.Accounts(), 3)
	for i := range pause.Accounts() {
		assert.Equal(t, pause.Accounts()[i].PublicKey, unpause.Accounts()[i].PublicKey)
	}
}

func TestFreezeThawShareShape(t *testing.T) {
	b := NewBuilder()
	keys := testKeys(t, 3)

	freeze, err := b.FreezeAccount(keys[0], keys[1], keys[2])
	require.NoError(t, err)
	thaw, err := b.ThawAccount(keys[0], keys[1], keys[2])
	require.NoError(t, err)

	require.Len(t, freeze.Accounts(), 6)
	assert.Equal(t, keys[2], freeze.Accounts()[4].PublicKey)
	assert.True(t, freeze.Accounts()[4].IsWritable)

	fd, _ := freeze.Data()
	td, _ := thaw.Data()
	assert.Equal(t, Discriminator("freeze_account"), fd)
	assert.Equal(t, Discriminator("thaw_account"), td)
}

func TestSeizeAccounts(t *testing.T) {
	b := NewBuilder()
	keys := testKeys(t, 4)
	seizer, mint, from, to := keys[0], keys[1], keys[2], keys[3]

	ix, err := b.Seize(seizer, mint, from, to, 77)
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 7)
	assert.Equal(t, from, accounts[4].PublicKey)
	assert.Equal(t, to, accounts[5].PublicKey)
	assert.True(t, accounts[4].IsWritable)
	assert.True(t, accounts[5].IsWritable)
	assert.False(t, accounts[1].IsWritable) // config untouched by seize
}

func TestHookBuildersTargetHookProgram(t *testing.T) {
	b := NewBuilder()
	keys := testKeys(t, 3)

	add, err := b.AddToBlacklist(keys[0], keys[1], keys[2], "sanctions listing")
	require.NoError(t, err)
	assert.Equal(t, b.Hook, add.ProgramID())

	data, _ := add.Data()
	assert.Equal(t, Discriminator("add_to_blacklist"), data[:8])
	require.Equal(t, uint32(len("sanctions listing")), binary.LittleEndian.Uint32(data[8:12]))
	assert.Equal(t, "sanctions listing", string(data[12:]))

	remove, err := b.RemoveFromBlacklist(keys[0], keys[1], keys[2])
	require.NoError(t, err)
	assert.Equal(t, b.Hook, remove.ProgramID())

	// Add and remove must resolve the same entry account.
	assert.Equal(t, add.Accounts()[4].PublicKey, remove.Accounts()[3].PublicKey)
}

func TestAddToBlacklistRejectsLongReason(t *testing.T) {
	b := NewBuilder()
	keys := testKeys(t, 3)

	_, err := b.AddToBlacklist(keys[0], keys[1], keys[2], string(bytes.Repeat([]byte{'r'}, state.MaxReasonLen+1)))
	var verr *state.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, state.ErrReasonTooLong, verr.Code)
}

func TestInitializeExtraAccountMetas(t *testing.T) {
	b := NewBuilder()
	keys := testKeys(t, 2)

	ix, err := b.InitializeExtraAccountMetas(keys[0], keys[1])
	require.NoError(t, err)

	assert.Equal(t, b.Hook, ix.ProgramID())
	data, _ := ix.Data()
	assert.Equal(t, Discriminator("initialize_extra_account_metas"), data)

	accounts := ix.Accounts()
	require.Len(t, accounts, 4)
	assert.True(t, accounts[0].IsSigner)
	assert.True(t, accounts[1].IsWritable)
}
