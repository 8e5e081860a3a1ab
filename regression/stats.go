package regression

import "math"

type fitStats struct {
	rSquared float64
	rmse     float64
	rss      float64
}

// calculateStats computes R², RMSE and the residual sum of squares of the line
// a + b*x in a single pass over the observations.
//
// Formula: R² = 1 - (SS_res / SS_tot), with R² = 0 when SS_tot = 0 (constant y).
func calculateStats(x, y []float64, a, b float64) fitStats {
	n := len(y)
	if n == 0 {
		return fitStats{}
	}

	meanY := calculateMean(y)

	ssTot := 0.0 // Total sum of squares
	ssRes := 0.0 // Residual sum of squares
	for i := range n {
		residual := y[i] - (a + b*x[i])
		ssRes += residual * residual
		ssTot += (y[i] - meanY) * (y[i] - meanY)
	}

	r2 := 0.0
	if ssTot != 0 {
		r2 = 1.0 - (ssRes / ssTot)
	}

	return fitStats{
		rSquared: r2,
		rmse:     math.Sqrt(ssRes / float64(n)),
		rss:      ssRes,
	}
}

// ResidualSumOfSquares returns Σ(y_i - (a + b*x_i))² for equally long x and y.
func ResidualSumOfSquares(x, y []float64, a, b float64) float64 {
	sum := 0.0
	for i := range min(len(x), len(y)) {
		r := y[i] - (a + b*x[i])
		sum += r * r
	}

	return sum
}

// calculateMean calculates the arithmetic mean (0 for an empty slice).
func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
