package series

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned when the X and Y series differ in length.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// DimensionMismatchError carries both observed lengths of a rejected pair.
type DimensionMismatchError struct {
	XLen int
	YLen int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: len(x)=%d, len(y)=%d", ErrDimensionMismatch, e.XLen, e.YLen)
}

func (e *DimensionMismatchError) Unwrap() error {
	return ErrDimensionMismatch
}

// Pair holds an independent series X and a dependent series Y of equal, non-zero length.
//
// A Pair can only be built by Validate, and it never hands out its backing
// storage, so a validated pair stays valid.
type Pair struct {
	x, y Series
}

// Validate pairs x with y observation by observation.
//
// Returns:
//   - Pair: the validated pair
//   - error: *DimensionMismatchError when the lengths differ (including (0, n)),
//     ErrEmptySeries when both series are empty
func Validate(x, y Series) (Pair, error) {
	if x.Len() != y.Len() {
		return Pair{}, &DimensionMismatchError{XLen: x.Len(), YLen: y.Len()}
	}
	if x.Len() == 0 {
		return Pair{}, ErrEmptySeries
	}

	return Pair{x: x, y: y}, nil
}

// Len returns the number of observations in the pair.
func (p Pair) Len() int {
	return p.x.Len()
}

// X returns the independent series.
func (p Pair) X() Series {
	return p.x
}

// Y returns the dependent series.
func (p Pair) Y() Series {
	return p.y
}

// At returns the i-th observation as (x, y).
func (p Pair) At(i int) (float64, float64) {
	return p.x.values[i], p.y.values[i]
}
