// sss-cli - Stablecoin control-plane utility
//
// This CLI demonstrates the sss-go library's offline capabilities: address
// derivation, preset inspection, amount parsing, and instruction encoding.
// Submission belongs to an operator's own transaction pipeline; everything
// here works without a network connection.
//
// Example usage:
//
//	# Derive the config and role addresses for a mint
//	sss-cli derive <mint> [holder role]
//
//	# Convert a human-readable amount to base units
//	sss-cli parse-amount 1500.25 6
//
//	# Show the three presets and their feature sets
//	sss-cli presets
//
//	# Encode a mint instruction and hex-dump it
//	sss-cli build-mint <minter> <mint> <destination> <amount>
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"

	"github.com/sss-labs/sss-go/pkg/instruction"
	"github.com/sss-labs/sss-go/pkg/pda"
	"github.com/sss-labs/sss-go/pkg/state"
)

const version = "0.3.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "derive":
		cmdDerive()
	case "parse-amount":
		cmdParseAmount()
	case "presets":
		cmdPresets()
	case "build-mint":
		cmdBuildMint()
	case "version":
		cmdVersion()
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`sss-cli - Stablecoin control-plane utility

Usage:
  sss-cli <command> [arguments]

Commands:
  derive <mint> [holder role]   Derive config (and optionally role) addresses
  parse-amount <value> <dec>    Convert a decimal amount to base units
  presets                       List presets and their feature sets
  build-mint <minter> <mint> <dest> <amount>
                                Encode a mint instruction and hex-dump it
  version                       Show version information
  help                          Show this help message`)
}

func cmdVersion() {
	fmt.Printf("sss-cli %s\n", version)
	fmt.Printf("core program: %s\n", pda.CoreProgramID)
	fmt.Printf("hook program: %s\n", pda.HookProgramID)
}

func cmdDerive() {
	if len(os.Args) < 3 {
		fatal("usage: sss-cli derive <mint> [holder role]")
	}
	mint := mustPubkey(os.Args[2])

	config, bump, err := pda.ConfigAddress(pda.CoreProgramID, mint)
	if err != nil {
		fatal("deriving config address: %v", err)
	}
	fmt.Printf("config:  %s (bump %d)\n", config, bump)

	if len(os.Args) >= 5 {
		holder := mustPubkey(os.Args[3])
		role, err := state.ParseRole(os.Args[4])
		if err != nil {
			fatal("%v", err)
		}
		addr, bump, err := pda.RoleAddress(pda.CoreProgramID, config, holder, role.Code())
		if err != nil {
			fatal("deriving role address: %v", err)
		}
		fmt.Printf("%s role: %s (bump %d)\n", role, addr, bump)
	}
}

func cmdParseAmount() {
	if len(os.Args) < 4 {
		fatal("usage: sss-cli parse-amount <value> <decimals>")
	}
	var decimals uint8
	if _, err := fmt.Sscanf(os.Args[3], "%d", &decimals); err != nil {
		fatal("decimals must be an integer: %v", err)
	}

	amount, err := state.ParseAmount(os.Args[2], decimals)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("base units: %d\n", amount)
	fmt.Printf("formatted:  %s\n", state.FormatAmount(amount, decimals))
}

func cmdPresets() {
	for _, p := range []state.Preset{state.PresetMinimal, state.PresetCompliant, state.PresetConfidential} {
		f := p.Features()
		fmt.Printf("%s (code %d)\n", p.ID(), p.Code())
		fmt.Printf("  permanent delegate:     %v\n", f.PermanentDelegate)
		fmt.Printf("  transfer hook:          %v\n", f.TransferHook)
		fmt.Printf("  default account frozen: %v\n", f.DefaultAccountFrozen)
		fmt.Printf("  confidential transfer:  %v\n", f.ConfidentialTransfer)
	}
}

func cmdBuildMint() {
	if len(os.Args) < 6 {
		fatal("usage: sss-cli build-mint <minter> <mint> <destination> <amount>")
	}
	minter := mustPubkey(os.Args[2])
	mint := mustPubkey(os.Args[3])
	dest := mustPubkey(os.Args[4])
	var amount uint64
	if _, err := fmt.Sscanf(os.Args[5], "%d", &amount); err != nil {
		fatal("amount must be an unsigned integer: %v", err)
	}

	ix, err := instruction.NewBuilder().MintTokens(minter, mint, dest, amount, nil)
	if err != nil {
		fatal("%v", err)
	}

	data, _ := ix.Data()
	fmt.Printf("program: %s\n", ix.ProgramID())
	fmt.Printf("data:    %s\n", hex.EncodeToString(data))
	fmt.Println("accounts:")
	for i, meta := range ix.Accounts() {
		flags := ""
		if meta.IsSigner {
			flags += "s"
		}
		if meta.IsWritable {
			flags += "w"
		}
		fmt.Printf("  %d. %s [%s]\n", i, meta.PublicKey, flags)
	}
}

func mustPubkey(s string) solana.PublicKey {
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		fatal("invalid address %q: %v", s, err)
	}
	return pk
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
