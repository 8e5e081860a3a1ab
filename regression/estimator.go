package regression

import (
	"fmt"
	"strings"
)

// ModelType represents the type of regression model.
type ModelType int

const (
	// ModelTypeLinear represents the linear model: y = a + b * x
	ModelTypeLinear ModelType = iota
)

// modelTypeNames maps ModelType to their string representations.
var modelTypeNames = map[ModelType]string{
	ModelTypeLinear: "linear",
}

// String returns the string representation of the model type.
func (mt ModelType) String() string {
	if name, exists := modelTypeNames[mt]; exists {
		return name
	}

	return "unknown"
}

// Estimator defines the interface of a fitted model used for predictions.
type Estimator interface {
	// Estimate evaluates the model at x.
	Estimate(x float64) float64
	// Type returns the model type.
	Type() ModelType
	// Coefficients returns the model coefficients.
	Coefficients() []float64
	// SetCoefficients updates the coefficients of the model.
	SetCoefficients(coeffs []float64) error
}

// LinearEstimator implements the linear model: y = a + b * x
type LinearEstimator struct {
	a, b   float64
	coeffs []float64 // Cached coefficient slice to avoid allocations
}

var _ Estimator = (*LinearEstimator)(nil)

// NewLinearEstimator creates a new linear estimator with intercept a and slope b.
func NewLinearEstimator(a, b float64) *LinearEstimator {
	return &LinearEstimator{
		a:      a,
		b:      b,
		coeffs: make([]float64, 2),
	}
}

// Estimate calculates y = a + b * x.
func (l *LinearEstimator) Estimate(x float64) float64 {
	return l.a + l.b*x
}

// Type returns the model type.
func (l *LinearEstimator) Type() ModelType {
	return ModelTypeLinear
}

// Coefficients returns the model coefficients [a, b].
// The returned slice is reused across calls.
func (l *LinearEstimator) Coefficients() []float64 {
	l.coeffs[0] = l.a
	l.coeffs[1] = l.b

	return l.coeffs
}

// SetCoefficients updates the coefficients of the linear model.
// Expects exactly 2 coefficients: [a, b] for the formula y = a + b * x.
func (l *LinearEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != 2 {
		return fmt.Errorf("linear model expects exactly 2 coefficients, got %d", len(coeffs))
	}
	l.a = coeffs[0]
	l.b = coeffs[1]

	return nil
}

// NewEstimator creates a new estimator by model name and coefficients.
//
// Parameters:
//   - name: The model name (case-insensitive). Supported names: "linear"
//   - coeffs: The model coefficients, [intercept, slope] for "linear"
//
// Returns:
//   - Estimator: The created estimator instance
//   - error: Returns an error if the name is unknown or coefficients are invalid
func NewEstimator(name string, coeffs []float64) (Estimator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ModelTypeLinear.String():
		est := NewLinearEstimator(0, 0)
		if err := est.SetCoefficients(coeffs); err != nil {
			return nil, err
		}

		return est, nil
	default:
		return nil, fmt.Errorf("unknown model type: %s. Supported types: %s", name, ModelTypeLinear)
	}
}
