package state

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u64ptr(v uint64) *uint64 { return &v }

func defaultConfig() *Config {
	return &Config{
		Authority:               solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"),
		Mint:                    solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112"),
		Preset:                  PresetMinimal,
		Paused:                  false,
		SupplyCap:               nil,
		TotalMinted:             0,
		TotalBurned:             0,
		Bump:                    254,
		Name:                    "Test Stablecoin",
		Symbol:                  "TST",
		URI:                     "https://example.com/metadata.json",
		Decimals:                6,
		EnablePermanentDelegate: true,
		AdminCount:              1,
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := defaultConfig()
	cfg.SupplyCap = u64ptr(1_000_000_000_000)
	cfg.TotalMinted = 500_000
	cfg.TotalBurned = 100_000
	cfg.EnableTransferHook = true
	cfg.Preset = PresetCompliant

	data, err := EncodeConfig(cfg)
	require.NoError(t, err)

	decoded, err := DecodeConfig(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, decoded)
}

func TestConfigRoundTripNoCap(t *testing.T) {
	data, err := EncodeConfig(defaultConfig())
	require.NoError(t, err)

	decoded, err := DecodeConfig(data)
	require.NoError(t, err)
	assert.Nil(t, decoded.SupplyCap)
	assert.Equal(t, uint64(0), decoded.CurrentSupply())
}

func TestCurrentSupply(t *testing.T) {
	cfg := defaultConfig()
	cfg.TotalMinted = 1_000_000
	cfg.TotalBurned = 400_000
	assert.Equal(t, uint64(600_000), cfg.CurrentSupply())
}

func TestCanMintNoCap(t *testing.T) {
	cfg := defaultConfig()

	assert.True(t, cfg.CanMint(1_000_000_000))
	assert.True(t, cfg.CanMint(^uint64(0)/2))

	// Overflow: total minted near the counter's ceiling.
	cfg.TotalMinted = ^uint64(0) - 10
	assert.True(t, cfg.CanMint(10))  // exactly hits the ceiling
	assert.False(t, cfg.CanMint(11)) // overflows
}

func TestCanMintWithCap(t *testing.T) {
	cfg := defaultConfig()
	cfg.SupplyCap = u64ptr(1_000_000)

	assert.True(t, cfg.CanMint(500_000))
	assert.True(t, cfg.CanMint(1_000_000))  // exactly at cap
	assert.False(t, cfg.CanMint(1_000_001)) // over cap

	// After burns, headroom reopens up to the cap.
	cfg.TotalMinted = 800_000
	cfg.TotalBurned = 300_000
	assert.True(t, cfg.CanMint(500_000))
	assert.False(t, cfg.CanMint(500_001))
}

func TestCanMintZero(t *testing.T) {
	cfg := defaultConfig()
	assert.True(t, cfg.CanMint(0))

	cfg.SupplyCap = u64ptr(100)
	cfg.TotalMinted = 100
	assert.True(t, cfg.CanMint(0)) // at cap, zero still fits
}

// TestDecodeNegativeSupplyIsCorrupt verifies that a snapshot whose burned
// counter exceeds its minted counter is rejected rather than clamped.
func TestDecodeNegativeSupplyIsCorrupt(t *testing.T) {
	cfg := defaultConfig()
	cfg.TotalMinted = 100
	cfg.TotalBurned = 200

	data, err := EncodeConfig(cfg)
	require.NoError(t, err)

	_, err = DecodeConfig(data)
	var cerr *CorruptStateError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrNegativeSupply, cerr.Code)
}

func TestDecodeCapBelowSupplyIsCorrupt(t *testing.T) {
	cfg := defaultConfig()
	cfg.TotalMinted = 1_000
	cfg.SupplyCap = u64ptr(500)

	data, err := EncodeConfig(cfg)
	require.NoError(t, err)

	_, err = DecodeConfig(data)
	var cerr *CorruptStateError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrCapBelowSupply, cerr.Code)
}

func TestDecodeWrongDiscriminator(t *testing.T) {
	grant, err := EncodeRoleGrant(&RoleGrant{Role: RoleMinter})
	require.NoError(t, err)

	_, err = DecodeConfig(grant)
	var cerr *CorruptStateError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrBadDiscriminator, cerr.Code)
}

func TestDecodeTruncated(t *testing.T) {
	_, err := DecodeConfig([]byte{1, 2, 3})
	var cerr *CorruptStateError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrTruncatedAccount, cerr.Code)
}

func TestValidateMetadata(t *testing.T) {
	require.NoError(t, ValidateMetadata("Test", "TST", "https://example.com"))

	long := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'a'
		}
		return string(b)
	}

	var verr *ValidationError
	require.ErrorAs(t, ValidateMetadata(long(33), "TST", ""), &verr)
	assert.Equal(t, ErrNameTooLong, verr.Code)
	require.ErrorAs(t, ValidateMetadata("ok", long(11), ""), &verr)
	assert.Equal(t, ErrSymbolTooLong, verr.Code)
	require.ErrorAs(t, ValidateMetadata("ok", "TST", long(201)), &verr)
	assert.Equal(t, ErrURITooLong, verr.Code)
}
