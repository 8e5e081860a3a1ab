package report

import (
	"context"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/arloliu/linfit/regression"
	"github.com/arloliu/linfit/series"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Source describes where one series of the report came from.
type Source struct {
	// Series is "x" or "y".
	Series      string `json:"series"`
	Locator     string `json:"locator"`
	Kind        string `json:"kind"`
	Digest      string `json:"digest"`
	Compression string `json:"compression"`
	Bytes       int    `json:"bytes"`
	Cached      bool   `json:"cached"`
}

// Report is the outcome of a successful fit together with the data it was fitted on.
//
// A Report owns its observations: X and Y are copies, so mutating them never
// affects the pair that produced the report, and vice versa.
type Report struct {
	Intercept float64
	Slope     float64
	N         int
	RSquared  float64
	RMSE      float64
	RSS       float64
	// Formula is the fitted line in readable form, e.g. "y = 1 + 2 * x".
	Formula string
	X       []float64
	Y       []float64
	Sources []Source
}

// New builds a report from a solver result and the validated pair it came from.
func New(res *regression.Result, pair series.Pair, sources ...Source) *Report {
	return &Report{
		Intercept: res.Intercept,
		Slope:     res.Slope,
		N:         res.N,
		RSquared:  res.RSquared,
		RMSE:      res.RMSE,
		RSS:       res.RSS,
		Formula:   res.Formula(),
		X:         pair.X().Values(),
		Y:         pair.Y().Values(),
		Sources:   append([]Source(nil), sources...),
	}
}

// Coefficients returns (intercept, slope).
func (r *Report) Coefficients() (float64, float64) {
	return r.Intercept, r.Slope
}

// Line evaluates the fitted line at x.
func (r *Report) Line(x float64) float64 {
	return r.Intercept + r.Slope*x
}

// WriteText prints the two coefficients, one per line.
func (r *Report) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "intercept (a): %v\nslope (b): %v\n", r.Intercept, r.Slope)
	return err
}

type document struct {
	Intercept float64   `json:"intercept"`
	Slope     float64   `json:"slope"`
	N         int       `json:"n"`
	RSquared  float64   `json:"r_squared"`
	RMSE      float64   `json:"rmse"`
	RSS       float64   `json:"rss"`
	Formula   string    `json:"formula"`
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
	Sources   []Source  `json:"sources,omitempty"`
}

// MarshalJSON encodes the report with stable snake_case field names.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.document())
}

func (r *Report) document() document {
	return document{
		Intercept: r.Intercept,
		Slope:     r.Slope,
		N:         r.N,
		RSquared:  r.RSquared,
		RMSE:      r.RMSE,
		RSS:       r.RSS,
		Formula:   r.Formula,
		X:         nonNil(r.X),
		Y:         nonNil(r.Y),
		Sources:   r.Sources,
	}
}

// UnmarshalJSON decodes a document written by MarshalJSON.
func (r *Report) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	*r = Report{
		Intercept: doc.Intercept,
		Slope:     doc.Slope,
		N:         doc.N,
		RSquared:  doc.RSquared,
		RMSE:      doc.RMSE,
		RSS:       doc.RSS,
		Formula:   doc.Formula,
		X:         doc.X,
		Y:         doc.Y,
		Sources:   doc.Sources,
	}

	return nil
}

// WriteJSON writes the indented JSON document followed by a newline.
func (r *Report) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r.document(), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	_, err = w.Write(data)

	return err
}

// Renderer draws a report somewhere, e.g. a scatter plot with the fitted line.
// Drawing lives outside this module; implementations receive a finished report.
type Renderer interface {
	Render(ctx context.Context, r *Report) error
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(ctx context.Context, r *Report) error

// Render calls f(ctx, r).
func (f RenderFunc) Render(ctx context.Context, r *Report) error {
	return f(ctx, r)
}

func nonNil(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}

	return v
}
