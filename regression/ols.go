package regression

import (
	"errors"
	"fmt"
	"math"

	"github.com/arloliu/linfit/internal/options"
	"github.com/arloliu/linfit/series"
)

// ErrSingularDesignMatrix is returned when XᵗX has no usable inverse, typically
// because every X observation has the same value.
var ErrSingularDesignMatrix = errors.New("singular design matrix: insufficient variation in x")

// FitConfig holds solver parameters.
type FitConfig struct {
	// Tolerance is the per-observation relative singularity threshold.
	Tolerance float64
}

// FitOption is a functional option for FitConfig.
type FitOption = options.Option[*FitConfig]

// WithTolerance overrides SingularityTolerance for a single fit.
func WithTolerance(tol float64) FitOption {
	return options.New(func(cfg *FitConfig) error {
		if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
			return fmt.Errorf("invalid singularity tolerance: %v", tol)
		}
		cfg.Tolerance = tol

		return nil
	})
}

// Fit computes the ordinary least-squares line y = intercept + slope*x for pair.
//
// The solver builds the design matrix with rows [1, x_i], forms the normal
// equations (XᵗX)β = Xᵗy, inverts the 2×2 matrix XᵗX in closed form, and
// returns β = (XᵗX)⁻¹Xᵗy. β[0] is the intercept and β[1] the slope.
//
// Parameters:
//   - pair: Validated observations
//   - opts: Optional solver configuration
//
// Returns:
//   - *Result: Fitted coefficients and goodness-of-fit diagnostics
//   - error: ErrSingularDesignMatrix when XᵗX is singular (e.g. constant X),
//     or when the solution is not finite
//
// Example:
//
//	x, _ := series.Parse("1 2 3 4")
//	y, _ := series.Parse("2 4 6 8")
//	pair, _ := series.Validate(x, y)
//	res, err := regression.Fit(pair)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Intercept, res.Slope) // 0 2
func Fit(pair series.Pair, opts ...FitOption) (*Result, error) {
	cfg := FitConfig{Tolerance: SingularityTolerance}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	n := pair.Len()
	if n == 0 {
		return nil, series.ErrEmptySeries
	}

	x := pair.X().Values()
	y := pair.Y().Values()

	design := NewDesignMatrix(x)
	xtx := design.Gram()
	xty := design.TransposeMul(y)

	inv, err := xtx.Inverse(float64(n) * cfg.Tolerance)
	if err != nil {
		return nil, err
	}

	beta := inv.MulVec(xty)
	if !isFinite(beta[0]) || !isFinite(beta[1]) {
		return nil, fmt.Errorf("%w: non-finite coefficients", ErrSingularDesignMatrix)
	}

	intercept, slope := beta[0], beta[1]
	stats := calculateStats(x, y, intercept, slope)

	return &Result{
		Intercept: intercept,
		Slope:     slope,
		N:         n,
		RSquared:  stats.rSquared,
		RMSE:      stats.rmse,
		RSS:       stats.rss,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
