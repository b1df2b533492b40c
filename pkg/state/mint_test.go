package state

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMintImage assembles a Token-2022 mint account image with the given
// extensions appended as zero-length-payload TLV entries (payload contents
// are irrelevant to the scanner).
func buildMintImage(supply uint64, decimals uint8, exts ...ExtensionType) []byte {
	data := make([]byte, mintBaseLen)
	binary.LittleEndian.PutUint64(data[36:44], supply)
	data[44] = decimals
	data[45] = 1 // initialized

	if len(exts) == 0 {
		return data
	}

	data = append(data, make([]byte, accountBaseLen-mintBaseLen)...)
	data = append(data, accountTypeMint)
	for _, ext := range exts {
		entry := make([]byte, 4+8)
		binary.LittleEndian.PutUint16(entry[0:2], uint16(ext))
		binary.LittleEndian.PutUint16(entry[2:4], 8)
		data = append(data, entry...)
	}
	return data
}

func TestDecodeMintBase(t *testing.T) {
	info, err := DecodeMintInfo(buildMintImage(42_000_000, 6))
	require.NoError(t, err)
	assert.Equal(t, uint64(42_000_000), info.Supply)
	assert.Equal(t, uint8(6), info.Decimals)
	assert.True(t, info.Initialized)
	assert.Empty(t, info.Extensions)
}

func TestDecodeMintExtensions(t *testing.T) {
	info, err := DecodeMintInfo(buildMintImage(0, 6,
		ExtPermanentDelegate, ExtTransferHook, ExtConfidentialTransferMint))
	require.NoError(t, err)

	assert.True(t, info.HasExtension(ExtPermanentDelegate))
	assert.True(t, info.HasExtension(ExtTransferHook))
	assert.True(t, info.HasExtension(ExtConfidentialTransferMint))
	assert.False(t, info.HasExtension(ExtDefaultAccountState))
}

func TestDecodeMintTruncated(t *testing.T) {
	_, err := DecodeMintInfo(make([]byte, 10))
	var cerr *CorruptStateError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrTruncatedAccount, cerr.Code)
}

func TestDecodeMintTruncatedExtension(t *testing.T) {
	data := buildMintImage(0, 6, ExtTransferHook)
	_, err := DecodeMintInfo(data[:len(data)-4]) // cut into the TLV payload
	var cerr *CorruptStateError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrTruncatedAccount, cerr.Code)
}
