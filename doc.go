// Package linfit fits a straight line to two numeric series with ordinary
// least squares.
//
// Each series is a whitespace-separated list of decimal numbers read from a
// local file or fetched from an http(s) URL. The pipeline resolves both
// sources concurrently, parses them, pairs them observation by observation
// and solves the 2×2 normal equations in closed form.
//
// # Core Features
//
//   - Local files and remote URLs behind one locator syntax
//   - Transparent decoding of zstd, s2, lz4 and gzip payloads
//   - Exact parse errors with token, index, line and column
//   - Deterministic detection of a singular design matrix (constant X)
//   - Optional on-disk cache for remote payloads
//   - Stage-tagged errors for precise handling by callers
//
// # Basic Usage
//
//	rep, err := linfit.Fit(ctx, "x.txt", "https://example.com/y.txt",
//	    linfit.WithTimeout(10*time.Second))
//	if err != nil {
//	    var se *linfit.StageError
//	    if errors.As(err, &se) {
//	        log.Fatalf("%s failed: %v", se.Stage, se.Err)
//	    }
//	    log.Fatal(err)
//	}
//	fmt.Println(rep.Intercept, rep.Slope)
//
// In-memory data skips resolution and parsing:
//
//	rep, err := linfit.FitSeries([]float64{1, 2, 3, 4}, []float64{2, 4, 6, 8})
//	// rep.Intercept == 0, rep.Slope == 2
//
// # Package Structure
//
//   - source: locator normalization, classification and resolution
//   - series: numeric parsing and pair validation
//   - regression: the OLS solver and its result
//   - report: text and JSON output, and the Renderer hook
//   - config: layered configuration for the command
//   - compress, format: payload codecs and their identifiers
//
// # Error Handling
//
// Errors returned by Fit and FitSeries are *StageError values. Their Err
// wraps one of source.ErrInvalidSource, source.ErrSourceUnavailable,
// series.ErrMalformedNumericData, series.ErrDimensionMismatch or
// regression.ErrSingularDesignMatrix, so errors.Is works on the returned error
// directly. Invalid options are reported as plain errors before any I/O.
package linfit
