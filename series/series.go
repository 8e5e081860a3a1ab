package series

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"unicode"
)

var (
	// ErrMalformedNumericData is returned when a payload holds a non-numeric token or no numbers at all.
	ErrMalformedNumericData = errors.New("malformed numeric data")
	// ErrEmptySeries is returned when a payload or series holds no observations.
	//
	// It wraps ErrMalformedNumericData, so errors.Is matches either sentinel.
	ErrEmptySeries = fmt.Errorf("empty series: %w", ErrMalformedNumericData)
)

// Series is an ordered, finite sequence of observations.
//
// The zero value is an empty series. Series values returned by Parse always
// hold at least one observation.
type Series struct {
	values []float64
}

// New copies values into a new Series. It does not check the values.
func New(values []float64) Series {
	return Series{values: slices.Clone(values)}
}

// Len returns the number of observations.
func (s Series) Len() int {
	return len(s.values)
}

// At returns the i-th observation.
func (s Series) At(i int) float64 {
	return s.values[i]
}

// Values returns a copy of the observations.
func (s Series) Values() []float64 {
	return slices.Clone(s.values)
}

// ParseError describes a token that could not be parsed as a finite number.
type ParseError struct {
	// Token is the offending text.
	Token string
	// Index is the zero-based position of the token in the series.
	Index int
	// Line and Column locate the token in the payload (one-based, column in runes).
	Line   int
	Column int
	// Err is the underlying strconv error, or nil for non-finite values.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: token %d %q at line %d, column %d is not a finite number",
		ErrMalformedNumericData, e.Index, e.Token, e.Line, e.Column)
}

// Unwrap makes errors.Is(err, ErrMalformedNumericData) hold, and exposes the strconv error.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedNumericData}
	}

	return []error{ErrMalformedNumericData, e.Err}
}

// Parse converts whitespace separated text into a Series, keeping input order.
//
// Tokens are separated by any run of Unicode white space, so newline, tab and
// space delimited documents all parse the same way. Every token must parse as a
// finite float64. NaN and infinities are rejected so they can't reach the solver.
//
// Returns:
//   - Series: at least one observation
//   - error: *ParseError for a bad token, ErrEmptySeries for a blank payload
func Parse(text string) (Series, error) {
	var values []float64

	line, col := 1, 1
	tokStart, tokLine, tokCol := -1, 0, 0

	flush := func(end int) error {
		tok := text[tokStart:end]
		tokStart = -1

		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return &ParseError{Token: tok, Index: len(values), Line: tokLine, Column: tokCol, Err: err}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ParseError{Token: tok, Index: len(values), Line: tokLine, Column: tokCol}
		}
		values = append(values, v)

		return nil
	}

	for i, r := range text {
		if unicode.IsSpace(r) {
			if tokStart >= 0 {
				if err := flush(i); err != nil {
					return Series{}, err
				}
			}
			if r == '\n' {
				line++
				col = 1
			} else {
				col++
			}

			continue
		}

		if tokStart < 0 {
			tokStart, tokLine, tokCol = i, line, col
		}
		col++
	}

	if tokStart >= 0 {
		if err := flush(len(text)); err != nil {
			return Series{}, err
		}
	}

	if len(values) == 0 {
		return Series{}, ErrEmptySeries
	}

	return Series{values: values}, nil
}
