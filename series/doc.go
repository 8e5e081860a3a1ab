// Package series turns raw numeric payloads into validated observation pairs.
//
// Parse converts whitespace separated text into a Series; Validate pairs an
// independent series X with a dependent series Y of the same length. Both are
// pure functions: they never perform I/O and never modify their inputs.
//
//	x, err := series.Parse("1 2 3 4")
//	if err != nil {
//	    return err
//	}
//	y, err := series.Parse("2\n4\n6\n8\n")
//	if err != nil {
//	    return err
//	}
//	pair, err := series.Validate(x, y)
//
// Failures are typed: *ParseError (wrapping ErrMalformedNumericData) names the
// offending token and where it sits in the payload, and *DimensionMismatchError
// (wrapping ErrDimensionMismatch) carries both observed lengths.
package series
