package linfit

import (
	"fmt"
	"net/http"
	"time"

	"github.com/arloliu/linfit/internal/logging"
	"github.com/arloliu/linfit/internal/options"
	"github.com/arloliu/linfit/regression"
	"github.com/arloliu/linfit/source"
	"github.com/sirupsen/logrus"
)

type pipeline struct {
	resolver *source.Resolver
	logger   logrus.FieldLogger
	fitOpts  []regression.FitOption

	// Used only when no resolver is supplied.
	timeout  time.Duration
	maxBytes int64
	cache    source.Cache
	client   *http.Client
}

// Option configures Fit and FitSeries.
type Option = options.Option[*pipeline]

// WithResolver makes Fit use r as is. The timeout, payload limit, cache and
// HTTP client options are then ignored, since r already carries them.
func WithResolver(r *source.Resolver) Option {
	return options.NoError(func(p *pipeline) {
		p.resolver = r
	})
}

// WithLogger sets the logger for pipeline events.
func WithLogger(l logrus.FieldLogger) Option {
	return options.NoError(func(p *pipeline) {
		if l != nil {
			p.logger = l
		}
	})
}

// WithTimeout bounds each remote fetch.
func WithTimeout(d time.Duration) Option {
	return options.New(func(p *pipeline) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}
		p.timeout = d

		return nil
	})
}

// WithMaxPayloadBytes caps the raw and decoded size of each payload.
func WithMaxPayloadBytes(n int64) Option {
	return options.New(func(p *pipeline) error {
		if n <= 0 {
			return fmt.Errorf("max payload bytes must be positive, got %d", n)
		}
		p.maxBytes = n

		return nil
	})
}

// WithCache enables the remote payload cache.
func WithCache(c source.Cache) Option {
	return options.NoError(func(p *pipeline) {
		p.cache = c
	})
}

// WithHTTPClient sets the client used for remote fetches.
func WithHTTPClient(c *http.Client) Option {
	return options.NoError(func(p *pipeline) {
		p.client = c
	})
}

// WithSingularityTolerance overrides regression.SingularityTolerance.
func WithSingularityTolerance(tol float64) Option {
	return options.New(func(p *pipeline) error {
		opt := regression.WithTolerance(tol)
		if err := options.Apply(&regression.FitConfig{}, opt); err != nil {
			return err
		}
		p.fitOpts = append(p.fitOpts, opt)

		return nil
	})
}

func applyOptions(opts []Option) (*pipeline, error) {
	p := &pipeline{
		logger:   logging.Discard(),
		timeout:  source.DefaultTimeout,
		maxBytes: source.DefaultMaxPayloadBytes,
	}
	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}

	return p, nil
}

func newPipeline(opts []Option) (*pipeline, error) {
	p, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	if p.resolver == nil {
		r, err := source.NewResolver(
			source.WithTimeout(p.timeout),
			source.WithMaxPayloadBytes(p.maxBytes),
			source.WithCache(p.cache),
			source.WithHTTPClient(p.client),
			source.WithLogger(p.logger),
		)
		if err != nil {
			return nil, err
		}
		p.resolver = r
	}

	return p, nil
}
