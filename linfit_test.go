package linfit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arloliu/linfit"
	"github.com/arloliu/linfit/compress"
	"github.com/arloliu/linfit/format"
	"github.com/arloliu/linfit/internal/cache"
	"github.com/arloliu/linfit/regression"
	"github.com/arloliu/linfit/series"
	"github.com/arloliu/linfit/source"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func writeSeries(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))

	return path
}

func requireStage(t *testing.T, err error, stage linfit.Stage, seriesName string) *linfit.StageError {
	t.Helper()
	var se *linfit.StageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, stage, se.Stage)
	require.Equal(t, seriesName, se.Series)

	return se
}

func TestFitLocalFiles(t *testing.T) {
	x := writeSeries(t, "x.txt", "1 2 3 4\n")
	y := writeSeries(t, "y.txt", "2.0\n4.0\n6.0\n8.0\n")

	rep, err := linfit.Fit(context.Background(), x, `"`+y+`"`)
	require.NoError(t, err)

	a, b := rep.Coefficients()
	require.InDelta(t, 0.0, a, 1e-12)
	require.InDelta(t, 2.0, b, 1e-12)
	require.Equal(t, 4, rep.N)
	require.Equal(t, []float64{1, 2, 3, 4}, rep.X)
	require.Equal(t, []float64{2, 4, 6, 8}, rep.Y)

	require.Len(t, rep.Sources, 2)
	require.Equal(t, linfit.SeriesX, rep.Sources[0].Series)
	require.Equal(t, x, rep.Sources[0].Locator)
	require.Equal(t, "local", rep.Sources[0].Kind)
	require.Equal(t, y, rep.Sources[1].Locator)
	require.Len(t, rep.Sources[1].Digest, 16)
}

func TestFitRemoteAndLocal(t *testing.T) {
	packed, err := compress.NewZstdCompressor().Compress([]byte("3 5 7 9"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/y.txt":
			_, _ = w.Write([]byte("3 5 7 9"))
		case "/y.txt.zst":
			_, _ = w.Write(packed)
		default:
			http.NotFound(w, req)
		}
	}))
	defer srv.Close()

	x := writeSeries(t, "x.txt", "1 2 3 4")

	for _, path := range []string{"/y.txt", "/y.txt.zst"} {
		rep, err := linfit.Fit(context.Background(), x, srv.URL+path, linfit.WithHTTPClient(srv.Client()))
		require.NoError(t, err, path)
		require.InDelta(t, 1.0, rep.Intercept, 1e-12)
		require.InDelta(t, 2.0, rep.Slope, 1e-12)
		require.Equal(t, "remote", rep.Sources[1].Kind)
	}

	rep, err := linfit.Fit(context.Background(), x, srv.URL+"/y.txt.zst", linfit.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd.String(), rep.Sources[1].Compression)
}

func TestFitSingular(t *testing.T) {
	x := writeSeries(t, "x.txt", "1 1 1")
	y := writeSeries(t, "y.txt", "5 6 7")

	_, err := linfit.Fit(context.Background(), x, y)
	require.ErrorIs(t, err, regression.ErrSingularDesignMatrix)
	requireStage(t, err, linfit.StageSolve, "")
}

func TestFitDimensionMismatch(t *testing.T) {
	x := writeSeries(t, "x.txt", "1 2 3")
	y := writeSeries(t, "y.txt", "1 2 3 4")

	_, err := linfit.Fit(context.Background(), x, y)
	require.ErrorIs(t, err, series.ErrDimensionMismatch)
	requireStage(t, err, linfit.StageValidate, "")

	var dm *series.DimensionMismatchError
	require.ErrorAs(t, err, &dm)
	require.Equal(t, 3, dm.XLen)
	require.Equal(t, 4, dm.YLen)
}

func TestFitMalformed(t *testing.T) {
	good := writeSeries(t, "good.txt", "1 2 3")
	bad := writeSeries(t, "bad.txt", "1.0 2.0 abc")

	_, err := linfit.Fit(context.Background(), good, bad)
	require.ErrorIs(t, err, series.ErrMalformedNumericData)
	requireStage(t, err, linfit.StageParse, linfit.SeriesY)

	var pe *series.ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "abc", pe.Token)
	require.Equal(t, 2, pe.Index)

	// X is reported first when both are malformed.
	_, err = linfit.Fit(context.Background(), bad, bad)
	requireStage(t, err, linfit.StageParse, linfit.SeriesX)
}

func TestFitEmptyPayload(t *testing.T) {
	empty := writeSeries(t, "empty.txt", " \n\t ")

	_, err := linfit.Fit(context.Background(), empty, empty)
	require.ErrorIs(t, err, series.ErrEmptySeries)
	requireStage(t, err, linfit.StageParse, linfit.SeriesX)
}

func TestFitResolutionErrors(t *testing.T) {
	good := writeSeries(t, "good.txt", "1 2 3")

	t.Run("invalid identifier", func(t *testing.T) {
		_, err := linfit.Fit(context.Background(), "  ''  ", good)
		require.ErrorIs(t, err, source.ErrInvalidSource)
		requireStage(t, err, linfit.StageResolve, linfit.SeriesX)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := linfit.Fit(context.Background(), good, filepath.Join(t.TempDir(), "nope.txt"))
		require.ErrorIs(t, err, source.ErrSourceUnavailable)
		requireStage(t, err, linfit.StageResolve, linfit.SeriesY)
	})

	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		_, err := linfit.Fit(context.Background(), good, srv.URL+"/y", linfit.WithHTTPClient(srv.Client()))
		require.ErrorIs(t, err, source.ErrSourceUnavailable)
		requireStage(t, err, linfit.StageResolve, linfit.SeriesY)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			<-req.Context().Done()
		}))
		defer srv.Close()

		_, err := linfit.Fit(context.Background(), srv.URL+"/x", good,
			linfit.WithHTTPClient(srv.Client()),
			linfit.WithTimeout(50*time.Millisecond),
		)
		require.ErrorIs(t, err, source.ErrSourceUnavailable)
		requireStage(t, err, linfit.StageResolve, linfit.SeriesX)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := linfit.Fit(ctx, good, good)
		require.ErrorIs(t, err, source.ErrSourceUnavailable)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestFitRemoteCache(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte("10 20 30"))
	}))
	defer srv.Close()

	c, err := cache.New(t.TempDir())
	require.NoError(t, err)
	x := writeSeries(t, "x.txt", "1 2 3")

	for range 3 {
		rep, err := linfit.Fit(context.Background(), x, srv.URL+"/y", linfit.WithHTTPClient(srv.Client()), linfit.WithCache(c))
		require.NoError(t, err)
		require.InDelta(t, 10.0, rep.Slope, 1e-12)
	}
	require.EqualValues(t, 1, requests.Load())
}

func TestFitWithResolver(t *testing.T) {
	r, err := source.NewResolver(source.WithMaxPayloadBytes(4))
	require.NoError(t, err)
	x := writeSeries(t, "x.txt", "1 2 3 4 5")

	_, err = linfit.Fit(context.Background(), x, x, linfit.WithResolver(r))
	require.ErrorIs(t, err, compress.ErrPayloadTooLarge)
}

func TestFitInvalidOptions(t *testing.T) {
	for _, opt := range []linfit.Option{
		linfit.WithTimeout(0),
		linfit.WithMaxPayloadBytes(0),
		linfit.WithSingularityTolerance(-1),
	} {
		_, err := linfit.Fit(context.Background(), "x", "y", opt)
		require.Error(t, err)

		var se *linfit.StageError
		require.False(t, errors.As(err, &se), "option errors are not stage errors")
	}
}

func TestFitLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	x := writeSeries(t, "x.txt", "1 2 3 4")
	y := writeSeries(t, "y.txt", "2 4 6 8")

	_, err := linfit.Fit(context.Background(), x, y, linfit.WithLogger(logger))
	require.NoError(t, err)

	last := hook.LastEntry()
	require.NotNil(t, last)
	require.Equal(t, "fit complete", last.Message)
	require.Equal(t, 4, last.Data["n"])

	var resolved int
	for _, e := range hook.AllEntries() {
		if e.Message == "source resolved" {
			resolved++
		}
	}
	require.Equal(t, 2, resolved)
}

func TestFitSeries(t *testing.T) {
	tests := []struct {
		name    string
		x, y    []float64
		wantErr error
		stage   linfit.Stage
	}{
		{name: "line", x: []float64{1, 2, 3, 4}, y: []float64{2, 4, 6, 8}},
		{name: "mismatch", x: []float64{1, 2, 3}, y: []float64{1, 2, 3, 4}, wantErr: series.ErrDimensionMismatch, stage: linfit.StageValidate},
		{name: "singular", x: []float64{1, 1, 1}, y: []float64{5, 6, 7}, wantErr: regression.ErrSingularDesignMatrix, stage: linfit.StageSolve},
		{name: "empty", wantErr: series.ErrEmptySeries, stage: linfit.StageValidate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := linfit.FitSeries(tt.x, tt.y)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				requireStage(t, err, tt.stage, "")

				return
			}
			require.NoError(t, err)
			require.InDelta(t, 0.0, rep.Intercept, 1e-12)
			require.InDelta(t, 2.0, rep.Slope, 1e-12)
			require.Empty(t, rep.Sources)
		})
	}
}

func TestFitSeriesTolerance(t *testing.T) {
	x := []float64{1, 1 + 1e-4}
	y := []float64{0, 1}

	_, err := linfit.FitSeries(x, y)
	require.NoError(t, err)

	_, err = linfit.FitSeries(x, y, linfit.WithSingularityTolerance(1e-3))
	require.ErrorIs(t, err, regression.ErrSingularDesignMatrix)
}

func TestStageError(t *testing.T) {
	err := &linfit.StageError{Stage: linfit.StageParse, Series: "y", Err: series.ErrMalformedNumericData}
	require.Equal(t, "parsing of series y: malformed numeric data", err.Error())
	require.ErrorIs(t, err, series.ErrMalformedNumericData)

	err = &linfit.StageError{Stage: linfit.StageSolve, Err: regression.ErrSingularDesignMatrix}
	require.Equal(t, "solving: singular design matrix: insufficient variation in x", err.Error())

	require.Equal(t, "resolution", linfit.StageResolve.String())
	require.Equal(t, "validation", linfit.StageValidate.String())
	require.Equal(t, "unknown", linfit.Stage(0).String())
}
