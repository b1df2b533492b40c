package state

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// maxUint64 as a decimal, for range checks on parsed amounts.
var maxUint64 = decimal.NewFromBigInt(new(big.Int).SetUint64(^uint64(0)), 0)

// ParseAmount converts a human-readable decimal amount ("1.50") into base
// units for a mint with the given decimals.
//
// Rejected with ValidationError before any instruction is built: negative
// values, non-numeric input, amounts whose fractional digits exceed the
// mint's decimals (no implicit rounding, ever), and amounts that do not fit
// in a uint64.
func ParseAmount(s string, decimals uint8) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &ValidationError{
			Code:    ErrInvalidAmount,
			Message: fmt.Sprintf("amount %q is not a number", s),
		}
	}
	if d.IsNegative() {
		return 0, &ValidationError{
			Code:    ErrInvalidAmount,
			Message: fmt.Sprintf("amount %q is negative", s),
		}
	}

	shifted := d.Shift(int32(decimals))
	if !shifted.IsInteger() {
		return 0, &ValidationError{
			Code:    ErrAmountPrecision,
			Message: fmt.Sprintf("amount %q has more than %d fractional digits", s, decimals),
		}
	}
	if shifted.GreaterThan(maxUint64) {
		return 0, &ValidationError{
			Code:    ErrInvalidAmount,
			Message: fmt.Sprintf("amount %q exceeds the 64-bit range in base units", s),
		}
	}
	return shifted.BigInt().Uint64(), nil
}

// FormatAmount renders base units as a human-readable decimal string, the
// inverse of ParseAmount.
func FormatAmount(amount uint64, decimals uint8) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -int32(decimals)).String()
}
