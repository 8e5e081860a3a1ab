package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/arloliu/linfit/compress"
	"github.com/arloliu/linfit/format"
	"github.com/arloliu/linfit/internal/hash"
	"github.com/arloliu/linfit/internal/logging"
	"github.com/arloliu/linfit/internal/options"
	"github.com/arloliu/linfit/internal/pool"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultTimeout bounds a single remote fetch.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxPayloadBytes caps both the raw and the decoded size of a payload.
	DefaultMaxPayloadBytes int64 = 64 << 20
)

// Cache stores decoded remote payloads by key.
type Cache interface {
	Get(key string) ([]byte, bool)
	Put(key string, data []byte)
}

// Payload is the complete text of a resolved source.
type Payload struct {
	Locator Locator
	// Text is the decoded document.
	Text string
	// Digest is the xxHash64 of Text.
	Digest uint64
	// Compression is the encoding the raw bytes arrived in.
	Compression format.CompressionType
	// Cached reports whether Text came from the payload cache.
	Cached bool
}

// DigestHex returns Digest as 16 hexadecimal digits.
func (p *Payload) DigestHex() string {
	return hash.Hex(p.Digest)
}

// Resolver turns source identifiers into payloads.
//
// A Resolver is safe for concurrent use once constructed.
type Resolver struct {
	client    *http.Client
	timeout   time.Duration
	maxBytes  int64
	cache     Cache
	logger    logrus.FieldLogger
	userAgent string
}

// Option configures a Resolver.
type Option = options.Option[*Resolver]

// WithHTTPClient sets the HTTP client used for remote fetches.
func WithHTTPClient(c *http.Client) Option {
	return options.NoError(func(r *Resolver) {
		if c != nil {
			r.client = c
		}
	})
}

// WithTimeout bounds each remote fetch. The timeout must be positive.
func WithTimeout(d time.Duration) Option {
	return options.New(func(r *Resolver) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}
		r.timeout = d

		return nil
	})
}

// WithMaxPayloadBytes caps the raw and decoded payload size. The limit must be positive.
func WithMaxPayloadBytes(n int64) Option {
	return options.New(func(r *Resolver) error {
		if n <= 0 {
			return fmt.Errorf("max payload bytes must be positive, got %d", n)
		}
		r.maxBytes = n

		return nil
	})
}

// WithCache enables the remote payload cache.
func WithCache(c Cache) Option {
	return options.NoError(func(r *Resolver) {
		r.cache = c
	})
}

// WithLogger sets the logger used for resolution events.
func WithLogger(l logrus.FieldLogger) Option {
	return options.NoError(func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	})
}

// WithUserAgent sets the User-Agent header of remote fetches.
func WithUserAgent(ua string) Option {
	return options.NoError(func(r *Resolver) {
		r.userAgent = ua
	})
}

// NewResolver creates a Resolver with DefaultTimeout, DefaultMaxPayloadBytes,
// http.DefaultClient, no cache, and a discarding logger unless overridden.
func NewResolver(opts ...Option) (*Resolver, error) {
	r := &Resolver{
		client:    http.DefaultClient,
		timeout:   DefaultTimeout,
		maxBytes:  DefaultMaxPayloadBytes,
		logger:    logging.Discard(),
		userAgent: "linfit",
	}
	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	return r, nil
}

// Resolve reads the complete document behind identifier.
//
// The identifier is normalized and classified once, then read with the
// strategy of its kind. Failures are *Error values wrapping ErrInvalidSource
// or ErrSourceUnavailable. Remote fetches are never retried.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (*Payload, error) {
	loc, err := Classify(identifier)
	if err != nil {
		return nil, err
	}

	var payload *Payload
	switch loc.Kind {
	case KindLocal:
		payload, err = r.readLocal(ctx, loc)
	case KindRemote:
		payload, err = r.readRemote(ctx, loc)
	default:
		err = &Error{Op: "resolve", Locator: loc.String(), Err: ErrInvalidSource}
	}
	if err != nil {
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"locator":     loc.String(),
		"kind":        loc.Kind.String(),
		"bytes":       len(payload.Text),
		"compression": payload.Compression.String(),
		"digest":      payload.DigestHex(),
		"cache":       payload.Cached,
	}).Debug("source resolved")

	return payload, nil
}

func (r *Resolver) readLocal(ctx context.Context, loc Locator) (*Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("read", loc.Path, err)
	}

	f, err := os.Open(loc.Path)
	if err != nil {
		return nil, unavailable("read", loc.Path, err)
	}
	defer f.Close()

	return r.decode(loc, f, format.CompressionFromExtension(loc.Path), "read")
}

func (r *Resolver) readRemote(ctx context.Context, loc Locator) (*Payload, error) {
	key := hash.Hex(hash.ID(loc.String()))
	if r.cache != nil {
		if data, ok := r.cache.Get(key); ok {
			return newPayload(loc, string(data), format.CompressionNone, true), nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc.URL.String(), nil)
	if err != nil {
		return nil, unavailable("fetch", loc.String(), err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, unavailable("fetch", loc.String(), err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, unavailable("fetch", loc.String(), fmt.Errorf("unexpected HTTP status %s", resp.Status))
	}

	hint := format.CompressionFromExtension(loc.URL.Path)
	if hint == format.CompressionNone && !resp.Uncompressed {
		if ct, ok := format.ParseCompression(resp.Header.Get("Content-Encoding")); ok {
			hint = ct
		}
	}

	payload, err := r.decode(loc, resp.Body, hint, "fetch")
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.Put(key, []byte(payload.Text))
	}

	return payload, nil
}

// decode reads src completely, within the payload limit, and decompresses it.
func (r *Resolver) decode(loc Locator, src io.Reader, hint format.CompressionType, op string) (*Payload, error) {
	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	if _, err := buf.ReadFromLimit(src, r.maxBytes); err != nil {
		if errors.Is(err, pool.ErrLimitExceeded) {
			err = fmt.Errorf("%w: more than %d bytes", compress.ErrPayloadTooLarge, r.maxBytes)
		}

		return nil, unavailable(op, loc.String(), err)
	}

	text, ct, err := compress.Decode(buf.Bytes(), hint, r.maxBytes)
	if err != nil {
		return nil, unavailable(op, loc.String(), err)
	}

	// string() copies, so the pooled buffer can be reused afterwards.
	return newPayload(loc, string(text), ct, false), nil
}

func newPayload(loc Locator, text string, ct format.CompressionType, cached bool) *Payload {
	return &Payload{
		Locator:     loc,
		Text:        text,
		Digest:      hash.ID(text),
		Compression: ct,
		Cached:      cached,
	}
}
