// Package cache implements the on-disk cache for remote payloads.
//
// Entries are zstd-compressed files named after their key. They expire once
// their modification time is older than the configured TTL. Any failure is
// reported through the logger and treated as a miss, never as an error.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arloliu/linfit/compress"
	"github.com/arloliu/linfit/internal/logging"
	"github.com/arloliu/linfit/internal/options"
	"github.com/sirupsen/logrus"
)

const entrySuffix = ".zst"

// DefaultTTL is the lifetime of an entry unless WithTTL says otherwise.
const DefaultTTL = time.Hour

// Cache is a directory of compressed payload entries.
//
// It is safe for concurrent use, including across processes sharing the
// directory, because entries are replaced by rename.
type Cache struct {
	dir    string
	ttl    time.Duration
	codec  compress.Codec
	logger logrus.FieldLogger
	now    func() time.Time
}

// Option configures a Cache.
type Option = options.Option[*Cache]

// WithTTL sets the entry lifetime. Zero keeps entries forever.
func WithTTL(ttl time.Duration) Option {
	return options.New(func(c *Cache) error {
		if ttl < 0 {
			return fmt.Errorf("cache ttl must not be negative, got %s", ttl)
		}
		c.ttl = ttl

		return nil
	})
}

// WithLogger sets the logger for cache failures and evictions.
func WithLogger(l logrus.FieldLogger) Option {
	return options.NoError(func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	})
}

// New opens the cache in dir, creating the directory when needed.
func New(dir string, opts ...Option) (*Cache, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("cache directory must not be empty")
	}

	c := &Cache{
		dir:    dir,
		ttl:    DefaultTTL,
		codec:  compress.NewZstdCompressor(),
		logger: logging.Discard(),
		now:    time.Now,
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	return c, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Get returns the fresh entry stored under key.
func (c *Cache) Get(key string) ([]byte, bool) {
	path, ok := c.path(key)
	if !ok {
		return nil, false
	}

	fi, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.WithError(err).WithField("cache", key).Warn("cache stat failed")
		}

		return nil, false
	}

	if c.ttl > 0 && c.now().Sub(fi.ModTime()) > c.ttl {
		c.logger.WithField("cache", key).Debug("cache entry expired")
		_ = os.Remove(path)

		return nil, false
	}

	packed, err := os.ReadFile(path)
	if err != nil {
		c.logger.WithError(err).WithField("cache", key).Warn("cache read failed")
		return nil, false
	}

	data, err := c.codec.Decompress(packed)
	if err != nil {
		c.logger.WithError(err).WithField("cache", key).Warn("cache entry corrupt")
		_ = os.Remove(path)

		return nil, false
	}

	return data, true
}

// Put stores data under key, replacing any previous entry atomically.
func (c *Cache) Put(key string, data []byte) {
	if err := c.put(key, data); err != nil {
		c.logger.WithError(err).WithField("cache", key).Warn("cache write failed")
	}
}

func (c *Cache) put(key string, data []byte) error {
	path, ok := c.path(key)
	if !ok {
		return fmt.Errorf("invalid cache key %q", key)
	}

	packed, err := c.codec.Compress(data)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(packed); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return nil
}

// path maps key to its entry file. Keys that are not plain file names are rejected.
func (c *Cache) path(key string) (string, bool) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", false
	}

	return filepath.Join(c.dir, key+entrySuffix), true
}
