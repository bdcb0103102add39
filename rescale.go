package moredecimal

import "github.com/shopspring/decimal"

// maxShift is the largest shift a non-zero int64 quantity survives: 10^19
// exceeds math.MaxInt64.
const maxShift = 18

// Rescale moves quantity shift decimal places to the right (left when shift
// is negative), as needed when a security's scale changes from s to s+shift.
//
// The computation is done in exact decimal arithmetic. It fails with an
// *ExactnessError if digits would be lost or the result does not fit an int64.
func Rescale(quantity int64, shift int) (int64, error) {
	if shift == 0 || quantity == 0 {
		return quantity, nil
	}
	// Beyond maxShift the result is known, and shift may not fit an int32.
	switch {
	case shift > maxShift:
		return 0, &ExactnessError{Quantity: quantity, Shift: shift, Overflow: true}
	case shift < -maxShift:
		return 0, &ExactnessError{Quantity: quantity, Shift: shift}
	}
	scaled := decimal.New(quantity, int32(shift))
	if !scaled.IsInteger() {
		return 0, &ExactnessError{Quantity: quantity, Shift: shift}
	}
	i := scaled.BigInt()
	if !i.IsInt64() {
		return 0, &ExactnessError{Quantity: quantity, Shift: shift, Overflow: true}
	}
	return i.Int64(), nil
}
