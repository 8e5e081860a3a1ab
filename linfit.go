package linfit

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/linfit/regression"
	"github.com/arloliu/linfit/report"
	"github.com/arloliu/linfit/series"
	"github.com/arloliu/linfit/source"
	"github.com/sirupsen/logrus"
)

// Series names used in StageError and log fields.
const (
	SeriesX = "x"
	SeriesY = "y"
)

// Fit resolves, parses, validates and solves the series behind xLocator and
// yLocator.
//
// Both sources are resolved concurrently; the first resolution failure
// cancels the other one and is the error reported. Parsing reports X before
// Y. Every failure is a *StageError.
//
// Parameters:
//   - ctx: Cancels pending fetches
//   - xLocator, yLocator: Local paths or http(s) URLs, optionally quoted
//   - opts: Pipeline options
//
// Returns:
//   - *report.Report: Coefficients, diagnostics, data and source metadata
//   - error: *StageError, or a plain error for invalid options
func Fit(ctx context.Context, xLocator, yLocator string, opts ...Option) (*report.Report, error) {
	p, err := newPipeline(opts)
	if err != nil {
		return nil, err
	}

	var payloads [2]*source.Payload
	g, gctx := errgroup.WithContext(ctx)
	for i, loc := range [2]string{xLocator, yLocator} {
		name := seriesName(i)
		g.Go(func() error {
			payload, err := p.resolver.Resolve(gctx, loc)
			if err != nil {
				p.logger.WithFields(logrus.Fields{
					"stage":  StageResolve.String(),
					"series": name,
				}).WithError(err).Debug("resolution failed")

				return &StageError{Stage: StageResolve, Series: name, Err: err}
			}
			payloads[i] = payload

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var parsed [2]series.Series
	for i, payload := range payloads {
		s, err := series.Parse(payload.Text)
		if err != nil {
			return nil, &StageError{Stage: StageParse, Series: seriesName(i), Err: err}
		}
		parsed[i] = s

		p.logger.WithFields(logrus.Fields{
			"stage":  StageParse.String(),
			"series": seriesName(i),
			"n":      s.Len(),
		}).Debug("series parsed")
	}

	return p.fit(parsed[0], parsed[1],
		sourceOf(SeriesX, payloads[0]),
		sourceOf(SeriesY, payloads[1]),
	)
}

// FitSeries validates and solves in-memory observations. The slices are
// copied and never modified.
func FitSeries(x, y []float64, opts ...Option) (*report.Report, error) {
	p, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return p.fit(series.New(x), series.New(y))
}

func (p *pipeline) fit(x, y series.Series, sources ...report.Source) (*report.Report, error) {
	pair, err := series.Validate(x, y)
	if err != nil {
		return nil, &StageError{Stage: StageValidate, Err: err}
	}

	res, err := regression.Fit(pair, p.fitOpts...)
	if err != nil {
		return nil, &StageError{Stage: StageSolve, Err: err}
	}

	p.logger.WithFields(logrus.Fields{
		"stage":     StageSolve.String(),
		"n":         res.N,
		"intercept": res.Intercept,
		"slope":     res.Slope,
	}).Info("fit complete")

	return report.New(res, pair, sources...), nil
}

func sourceOf(name string, payload *source.Payload) report.Source {
	return report.Source{
		Series:      name,
		Locator:     payload.Locator.String(),
		Kind:        payload.Locator.Kind.String(),
		Digest:      payload.DigestHex(),
		Compression: payload.Compression.String(),
		Bytes:       len(payload.Text),
		Cached:      payload.Cached,
	}
}

func seriesName(i int) string {
	if i == 0 {
		return SeriesX
	}

	return SeriesY
}
