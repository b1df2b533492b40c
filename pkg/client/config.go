package client

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"gopkg.in/yaml.v3"

	"github.com/sss-labs/sss-go/pkg/pda"
	"github.com/sss-labs/sss-go/pkg/state"
)

// Config is the explicit client configuration. Nothing in the client reads
// the process environment; callers construct this (or load it from a file)
// and pass it in.
type Config struct {
	RPCEndpoint string `yaml:"rpc_endpoint"` // JSON-RPC node URL
	CoreProgram string `yaml:"core_program"` // Base58 override of the core program ID
	HookProgram string `yaml:"hook_program"` // Base58 override of the hook program ID
	Preset      string `yaml:"preset"`       // Default preset ("sss-1".."sss-3"), optional
}

// DefaultConfig targets a local test validator and the canonical program IDs.
func DefaultConfig() Config {
	return Config{
		RPCEndpoint: "http://127.0.0.1:8899",
		CoreProgram: pda.CoreProgramID.String(),
		HookProgram: pda.HookProgramID.String(),
	}
}

// LoadConfig reads a YAML configuration file, fills unset fields from
// DefaultConfig, and validates program IDs and preset before anything uses
// them.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the base58 program IDs and the optional preset selector.
func (c *Config) Validate() error {
	if _, err := c.corePubkey(); err != nil {
		return err
	}
	if _, err := c.hookPubkey(); err != nil {
		return err
	}
	if c.Preset != "" {
		if _, err := state.ParsePreset(c.Preset); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) corePubkey() (solana.PublicKey, error) {
	return parseProgramID("core_program", c.CoreProgram, pda.CoreProgramID)
}

func (c *Config) hookPubkey() (solana.PublicKey, error) {
	return parseProgramID("hook_program", c.HookProgram, pda.HookProgramID)
}

func parseProgramID(field, value string, fallback solana.PublicKey) (solana.PublicKey, error) {
	if value == "" {
		return fallback, nil
	}
	pk, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, &state.ValidationError{
			Code:    state.ErrInvalidAddress,
			Message: fmt.Sprintf("%s is not a valid base58 address: %v", field, err),
		}
	}
	return pk, nil
}
