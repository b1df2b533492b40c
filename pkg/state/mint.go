package state

import (
	"encoding/binary"
	"fmt"
)

// Token-2022 account layout constants. The base mint occupies 82 bytes; when
// extensions are present the data is padded to the 165-byte account size, an
// account-type byte follows, and extensions are appended as TLV entries.
const (
	mintBaseLen     = 82
	accountBaseLen  = 165
	accountTypeMint = 1
)

// ExtensionType identifies a Token-2022 TLV extension.
type ExtensionType uint16

// Extension types the client inspects. Values are fixed by the Token-2022
// program's ExtensionType enum.
const (
	ExtConfidentialTransferMint    ExtensionType = 4
	ExtConfidentialTransferAccount ExtensionType = 5
	ExtDefaultAccountState         ExtensionType = 6
	ExtPermanentDelegate           ExtensionType = 12
	ExtTransferHook                ExtensionType = 14
	ExtTransferHookAccount         ExtensionType = 15
)

// MintInfo is a decoded snapshot of a Token-2022 mint: the base fields the
// client cares about plus the set of initialized extensions. Used to verify,
// before building an Initialize instruction, that a pre-created mint actually
// carries the extensions its preset requires.
type MintInfo struct {
	Supply      uint64          // Raw token supply in base units
	Decimals    uint8           // Mint decimals
	Initialized bool            // Mint initialization flag
	Extensions  []ExtensionType // Initialized TLV extensions, in storage order
}

// HasExtension reports whether the mint was created with the given extension.
func (m *MintInfo) HasExtension(ext ExtensionType) bool {
	for _, e := range m.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// DecodeMintInfo decodes a Token-2022 mint account image, scanning the TLV
// region for extensions when present.
func DecodeMintInfo(data []byte) (*MintInfo, error) {
	if len(data) < mintBaseLen {
		return nil, &CorruptStateError{
			Code:    ErrTruncatedAccount,
			Message: fmt.Sprintf("mint account is %d bytes, want at least %d", len(data), mintBaseLen),
		}
	}

	info := &MintInfo{
		Supply:      binary.LittleEndian.Uint64(data[36:44]),
		Decimals:    data[44],
		Initialized: data[45] != 0,
	}

	// Base-size mints carry no extensions.
	if len(data) <= accountBaseLen {
		return info, nil
	}
	if data[accountBaseLen] != accountTypeMint {
		return nil, &CorruptStateError{
			Code:    ErrMalformedAccount,
			Message: fmt.Sprintf("extended account type %d is not a mint", data[accountBaseLen]),
		}
	}

	tlv := data[accountBaseLen+1:]
	for len(tlv) >= 4 {
		extType := ExtensionType(binary.LittleEndian.Uint16(tlv[0:2]))
		extLen := int(binary.LittleEndian.Uint16(tlv[2:4]))
		if extType == 0 {
			break // uninitialized padding terminates the TLV region
		}
		if len(tlv) < 4+extLen {
			return nil, &CorruptStateError{
				Code:    ErrTruncatedAccount,
				Message: fmt.Sprintf("extension %d claims %d bytes past end of account", extType, extLen),
			}
		}
		info.Extensions = append(info.Extensions, extType)
		tlv = tlv[4+extLen:]
	}
	return info, nil
}
