package moredecimal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatUnits renders an integer quantity stored with the given number of
// decimal places, e.g. FormatUnits(12345, 2) is "123.45".
func FormatUnits(units int64, decimals int) string {
	return decimal.New(units, -int32(decimals)).StringFixed(int32(decimals))
}

// ParseUnits converts a decimal string into an integer quantity with the given
// number of decimal places. It fails if the value has more fractional digits
// than the scale allows.
func ParseUnits(s string, decimals int) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return toUnits(d.Shift(int32(decimals)))
}

// toUnits returns d as an int64 if it is an integer that fits.
func toUnits(d decimal.Decimal) (int64, error) {
	if !d.IsInteger() {
		return 0, fmt.Errorf("%s is not a whole number of units", d)
	}
	i := d.BigInt()
	if !i.IsInt64() {
		return 0, fmt.Errorf("%s overflows a 64-bit quantity", d)
	}
	return i.Int64(), nil
}
