// Package regression fits a best line through paired observations by ordinary least squares.
//
// Given a validated series.Pair, Fit solves the normal equations of the model
// y = a + b*x:
//
//  1. Build the design matrix X with one row [1, x_i] per observation
//  2. Form XᵗX (2×2) and Xᵗy (length 2)
//  3. Invert XᵗX in closed form: 1/(ad-bc) * [[d, -b], [-c, a]]
//  4. β = (XᵗX)⁻¹ Xᵗy, so a = β[0] (intercept) and b = β[1] (slope)
//
// # Usage
//
//	res, err := regression.Fit(pair)
//	if errors.Is(err, regression.ErrSingularDesignMatrix) {
//	    log.Fatal("x has no variation")
//	}
//	fmt.Printf("%s (R²=%.4f)\n", res.Formula(), res.RSquared)
//
//	// Use the estimator for predictions
//	est := res.Estimator()
//	y := est.Estimate(10.0)
//
// # Singularity
//
// XᵗX is singular when all X values are equal. Fit detects this explicitly
// instead of returning NaN or Inf coefficients: the determinant is compared,
// relative to the magnitude of the products it is formed from, against
// n * SingularityTolerance. See SingularityTolerance for the exact rule.
//
// # Diagnostics
//
// R², RMSE and the residual sum of squares are reported with every fit. The
// package does not compute confidence intervals, and it supports neither
// weighted or robust regression nor more than one independent variable.
package regression
