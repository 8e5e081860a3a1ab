package regression

import "fmt"

// Result is the outcome of an ordinary least-squares fit.
//
// Fields:
//   - Intercept, Slope: Coefficients of y = Intercept + Slope*x
//   - N: Number of observations
//   - RSquared: Coefficient of determination (1 is a perfect fit, 0 when y is constant)
//   - RMSE: Root mean square error of the residuals
//   - RSS: Residual sum of squares, the quantity OLS minimizes
type Result struct {
	Intercept float64
	Slope     float64
	N         int
	RSquared  float64
	RMSE      float64
	RSS       float64
}

// Coefficients returns (intercept, slope).
func (r *Result) Coefficients() (float64, float64) {
	return r.Intercept, r.Slope
}

// Predict evaluates the fitted line at x.
func (r *Result) Predict(x float64) float64 {
	return r.Intercept + r.Slope*x
}

// Estimator returns a LinearEstimator seeded with the fitted coefficients.
func (r *Result) Estimator() *LinearEstimator {
	return NewLinearEstimator(r.Intercept, r.Slope)
}

// Formula returns a human-readable representation of the fitted line.
func (r *Result) Formula() string {
	return fmt.Sprintf("y = %.6g + %.6g * x", r.Intercept, r.Slope)
}

// String returns a string representation of the result.
func (r *Result) String() string {
	return fmt.Sprintf("Result{N: %d, R²: %.4f, RMSE: %.4f, Formula: %s}",
		r.N, r.RSquared, r.RMSE, r.Formula())
}
