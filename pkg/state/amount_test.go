package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in       string
		decimals uint8
		want     uint64
	}{
		{"1", 6, 1_000_000},
		{"1.5", 6, 1_500_000},
		{"0.000001", 6, 1},
		{"1000000", 6, 1_000_000_000_000},
		{"0", 6, 0},
		{"100", 0, 100},
		{"0.25", 2, 25},
		{"18446744073709.551615", 6, ^uint64(0)},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in, tt.decimals)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseAmountRejects(t *testing.T) {
	tests := []struct {
		in       string
		decimals uint8
		code     string
	}{
		{"-1", 6, ErrInvalidAmount},
		{"-0.5", 6, ErrInvalidAmount},
		{"abc", 6, ErrInvalidAmount},
		{"", 6, ErrInvalidAmount},
		{"1.2.3", 6, ErrInvalidAmount},
		{"0.0000001", 6, ErrAmountPrecision}, // 7 fractional digits at 6 decimals
		{"0.5", 0, ErrAmountPrecision},
		{"18446744073709.551616", 6, ErrInvalidAmount}, // one past uint64 max
		{"99999999999999999999", 6, ErrInvalidAmount},
	}
	for _, tt := range tests {
		_, err := ParseAmount(tt.in, tt.decimals)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "input %q", tt.in)
		assert.Equal(t, tt.code, verr.Code, "input %q", tt.in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1.5", FormatAmount(1_500_000, 6))
	assert.Equal(t, "0.000001", FormatAmount(1, 6))
	assert.Equal(t, "100", FormatAmount(100, 0))
	assert.Equal(t, "0", FormatAmount(0, 6))
}

// TestParseFormatRoundTrip checks the two directions agree.
func TestParseFormatRoundTrip(t *testing.T) {
	for _, amount := range []uint64{0, 1, 999_999, 1_000_000, 123_456_789_012} {
		parsed, err := ParseAmount(FormatAmount(amount, 6), 6)
		require.NoError(t, err)
		assert.Equal(t, amount, parsed)
	}
}
