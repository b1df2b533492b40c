package state

import "fmt"

// Preset is one of the three fixed configuration bundles selected at creation
// time. The selection is immutable: it determines which optional mint
// extensions must exist before initialization and cannot be retrofitted.
type Preset uint8

const (
	// PresetMinimal ("sss-1") wires only the permanent delegate.
	PresetMinimal Preset = 1
	// PresetCompliant ("sss-2") adds the blacklist transfer hook and freezes
	// new token accounts by default.
	PresetCompliant Preset = 2
	// PresetConfidential ("sss-3") adds confidential transfers, no hook.
	PresetConfidential Preset = 3
)

// presetIDs maps each preset to the string identifier used in persisted
// configuration files and as the creation-time selector.
var presetIDs = map[Preset]string{
	PresetMinimal:      "sss-1",
	PresetCompliant:    "sss-2",
	PresetConfidential: "sss-3",
}

// Features describes which optional companion structures a preset wires into
// a config at creation.
type Features struct {
	PermanentDelegate    bool // Config PDA set as permanent delegate (seize/burn authority)
	TransferHook         bool // Blacklist transfer hook attached to the mint
	DefaultAccountFrozen bool // New token accounts start frozen, need explicit thaw
	ConfidentialTransfer bool // Confidential-transfer mint extension required
}

// Features returns the default feature set for the preset, matching the
// derivation table in sss-core's initialize handler.
func (p Preset) Features() Features {
	switch p {
	case PresetCompliant:
		return Features{PermanentDelegate: true, TransferHook: true, DefaultAccountFrozen: true}
	case PresetConfidential:
		return Features{PermanentDelegate: true, ConfidentialTransfer: true}
	default:
		return Features{PermanentDelegate: true}
	}
}

// ID returns the external string identifier ("sss-1".."sss-3").
func (p Preset) ID() string {
	if id, ok := presetIDs[p]; ok {
		return id
	}
	return fmt.Sprintf("preset(%d)", uint8(p))
}

// String returns the external identifier; Preset satisfies fmt.Stringer.
func (p Preset) String() string { return p.ID() }

// Code returns the on-chain numeric encoding (1..3).
func (p Preset) Code() uint8 { return uint8(p) }

// ParsePreset converts an external preset identifier into the enum. Unknown
// identifiers are a ValidationError raised before any network interaction.
func ParsePreset(id string) (Preset, error) {
	for preset, s := range presetIDs {
		if s == id {
			return preset, nil
		}
	}
	return 0, &ValidationError{
		Code:    ErrUnknownPreset,
		Message: fmt.Sprintf("unknown preset %q (want sss-1, sss-2, or sss-3)", id),
	}
}

// presetFromCode validates a preset byte read from account data.
func presetFromCode(code uint8) (Preset, error) {
	if code < 1 || code > 3 {
		return 0, &CorruptStateError{
			Code:    ErrUnknownPresetCode,
			Message: fmt.Sprintf("stored preset code %d outside 1..3", code),
		}
	}
	return Preset(code), nil
}
