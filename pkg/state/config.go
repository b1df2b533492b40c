package state

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"math"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Metadata string bounds enforced by sss-core.
const (
	MaxNameLen   = 32  // Stablecoin name
	MaxSymbolLen = 10  // Ticker symbol
	MaxURILen    = 200 // Metadata URI
	MaxReasonLen = 512 // Blacklist reason (sss-transfer-hook)
)

// Config is a decoded snapshot of the on-chain StablecoinConfig account.
//
// Corresponds to: sss-core/src/state/config.rs (StablecoinConfig). One config
// exists per mint, at a derived (not random) address; it is created once at
// initialization, mutated only through role-gated instructions, and never
// deleted. The client holds snapshots only; the ledger is the sole source of
// truth.
type Config struct {
	Authority   solana.PublicKey // Current admin authority
	Mint        solana.PublicKey // The Token-2022 mint this config governs
	Preset      Preset           // Creation-time preset, immutable
	Paused      bool             // Pause gate for mint/burn/freeze/thaw (not seize)
	SupplyCap   *uint64          // Optional ceiling on circulating supply
	TotalMinted uint64           // Monotonic mint counter
	TotalBurned uint64           // Monotonic burn counter
	Bump        uint8            // Config PDA bump
	Name        string           // Max 32 chars
	Symbol      string           // Max 10 chars
	URI         string           // Max 200 chars
	Decimals    uint8            // Token decimals (e.g. 6 for USDC-style)

	// Feature flags derived from the preset at creation (with overrides).
	EnablePermanentDelegate bool // Config PDA is permanent delegate on token accounts
	EnableTransferHook      bool // Transfer hook program attached to the mint
	DefaultAccountFrozen    bool // New token accounts frozen until thawed

	// AdminCount tracks active admins so the last one cannot be revoked.
	AdminCount uint32
}

// configWire is the exact Borsh field order of the on-chain account, with
// enum bytes kept raw so they can be validated after decoding.
type configWire struct {
	Authority               solana.PublicKey
	Mint                    solana.PublicKey
	Preset                  uint8
	Paused                  bool
	SupplyCap               *uint64 `bin:"optional"`
	TotalMinted             uint64
	TotalBurned             uint64
	Bump                    uint8
	Name                    string
	Symbol                  string
	URI                     string
	Decimals                uint8
	EnablePermanentDelegate bool
	EnableTransferHook      bool
	DefaultAccountFrozen    bool
	AdminCount              uint32
}

// accountDiscriminator computes the 8-byte Anchor account discriminator:
// sha256("account:<Name>")[..8].
func accountDiscriminator(name string) []byte {
	sum := sha256.Sum256([]byte("account:" + name))
	return sum[:8]
}

// checkDiscriminator strips and validates the leading discriminator,
// returning the Borsh payload.
func checkDiscriminator(data []byte, name string) ([]byte, error) {
	disc := accountDiscriminator(name)
	if len(data) < len(disc) {
		return nil, &CorruptStateError{
			Code:    ErrTruncatedAccount,
			Message: fmt.Sprintf("%s account shorter than its discriminator", name),
		}
	}
	if !bytes.Equal(data[:len(disc)], disc) {
		return nil, &CorruptStateError{
			Code:    ErrBadDiscriminator,
			Message: fmt.Sprintf("account data is not a %s account", name),
		}
	}
	return data[len(disc):], nil
}

// DecodeConfig decodes a StablecoinConfig account image and re-validates its
// supply invariants. A snapshot where totalBurned exceeds totalMinted (a
// negative computed supply) or where a set cap is below the computed supply
// is returned as CorruptStateError, never clamped and never ignored.
func DecodeConfig(data []byte) (*Config, error) {
	payload, err := checkDiscriminator(data, "StablecoinConfig")
	if err != nil {
		return nil, err
	}

	var w configWire
	if err := bin.NewBorshDecoder(payload).Decode(&w); err != nil {
		return nil, &CorruptStateError{
			Code:    ErrMalformedAccount,
			Message: fmt.Sprintf("decoding StablecoinConfig: %v", err),
		}
	}

	preset, err := presetFromCode(w.Preset)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Authority:               w.Authority,
		Mint:                    w.Mint,
		Preset:                  preset,
		Paused:                  w.Paused,
		SupplyCap:               w.SupplyCap,
		TotalMinted:             w.TotalMinted,
		TotalBurned:             w.TotalBurned,
		Bump:                    w.Bump,
		Name:                    w.Name,
		Symbol:                  w.Symbol,
		URI:                     w.URI,
		Decimals:                w.Decimals,
		EnablePermanentDelegate: w.EnablePermanentDelegate,
		EnableTransferHook:      w.EnableTransferHook,
		DefaultAccountFrozen:    w.DefaultAccountFrozen,
		AdminCount:              w.AdminCount,
	}

	if cfg.TotalBurned > cfg.TotalMinted {
		return nil, &CorruptStateError{
			Code: ErrNegativeSupply,
			Message: fmt.Sprintf("total burned %d exceeds total minted %d",
				cfg.TotalBurned, cfg.TotalMinted),
		}
	}
	if cfg.SupplyCap != nil && cfg.CurrentSupply() > *cfg.SupplyCap {
		return nil, &CorruptStateError{
			Code: ErrCapBelowSupply,
			Message: fmt.Sprintf("current supply %d exceeds supply cap %d",
				cfg.CurrentSupply(), *cfg.SupplyCap),
		}
	}
	return cfg, nil
}

// EncodeConfig produces the account image DecodeConfig accepts. Used by tests
// and local simulators; the client itself never writes account data.
func EncodeConfig(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(accountDiscriminator("StablecoinConfig"))
	w := configWire{
		Authority:               cfg.Authority,
		Mint:                    cfg.Mint,
		Preset:                  cfg.Preset.Code(),
		Paused:                  cfg.Paused,
		SupplyCap:               cfg.SupplyCap,
		TotalMinted:             cfg.TotalMinted,
		TotalBurned:             cfg.TotalBurned,
		Bump:                    cfg.Bump,
		Name:                    cfg.Name,
		Symbol:                  cfg.Symbol,
		URI:                     cfg.URI,
		Decimals:                cfg.Decimals,
		EnablePermanentDelegate: cfg.EnablePermanentDelegate,
		EnableTransferHook:      cfg.EnableTransferHook,
		DefaultAccountFrozen:    cfg.DefaultAccountFrozen,
		AdminCount:              cfg.AdminCount,
	}
	if err := bin.NewBorshEncoder(&buf).Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CurrentSupply returns the circulating supply (minted minus burned).
//
// DecodeConfig guarantees the difference is non-negative for any Config that
// reaches callers.
func (c *Config) CurrentSupply() uint64 {
	return c.TotalMinted - c.TotalBurned
}

// CanMint reports whether amount tokens can be minted without exceeding the
// supply cap or overflowing the minted counter. Mirrors the program-side
// check; the program remains authoritative.
func (c *Config) CanMint(amount uint64) bool {
	if amount > math.MaxUint64-c.TotalMinted {
		return false
	}
	if c.SupplyCap == nil {
		return true
	}
	return c.TotalMinted+amount-c.TotalBurned <= *c.SupplyCap
}

// ValidateMetadata checks the creation-time string bounds locally, before an
// Initialize instruction is built.
func ValidateMetadata(name, symbol, uri string) error {
	if len(name) > MaxNameLen {
		return &ValidationError{
			Code:    ErrNameTooLong,
			Message: fmt.Sprintf("name is %d chars, max %d", len(name), MaxNameLen),
		}
	}
	if len(symbol) > MaxSymbolLen {
		return &ValidationError{
			Code:    ErrSymbolTooLong,
			Message: fmt.Sprintf("symbol is %d chars, max %d", len(symbol), MaxSymbolLen),
		}
	}
	if len(uri) > MaxURILen {
		return &ValidationError{
			Code:    ErrURITooLong,
			Message: fmt.Sprintf("uri is %d chars, max %d", len(uri), MaxURILen),
		}
	}
	return nil
}
