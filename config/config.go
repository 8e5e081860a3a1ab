// Package config resolves the runtime configuration of the linfit command.
//
// Values are layered, lowest to highest: built-in defaults, .env files,
// process environment, command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Output formats accepted by Config.Output.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// DefaultEnvFile is read when Load gets no explicit env files. It may be absent.
const DefaultEnvFile = ".env"

// Defaults applied before any other layer.
const (
	DefaultTimeout               = 30 * time.Second
	DefaultMaxPayloadBytes int64 = 64 << 20
	DefaultCacheTTL              = time.Hour
	DefaultLogLevel              = "warn"
	DefaultOutput                = OutputText
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved configuration of one run.
type Config struct {
	XLocator        string
	YLocator        string
	Timeout         time.Duration
	MaxPayloadBytes int64
	// CacheDir enables the remote payload cache when not empty.
	CacheDir   string
	CacheTTL   time.Duration
	LogLevel   string
	Output     string
	ReportFile string
}

type key struct {
	name  string
	env   string
	flag  string
	value any
}

var keys = []key{
	{name: "x_locator", env: "URL_X"},
	{name: "y_locator", env: "URL_Y"},
	{name: "timeout", env: "LINFIT_TIMEOUT", flag: "timeout", value: DefaultTimeout},
	{name: "max_payload_bytes", env: "LINFIT_MAX_PAYLOAD_BYTES", flag: "max-bytes", value: DefaultMaxPayloadBytes},
	{name: "cache_dir", env: "LINFIT_CACHE_DIR", flag: "cache-dir"},
	{name: "cache_ttl", env: "LINFIT_CACHE_TTL", flag: "cache-ttl", value: DefaultCacheTTL},
	{name: "log_level", env: "LINFIT_LOG_LEVEL", flag: "log-level", value: DefaultLogLevel},
	{name: "output", env: "LINFIT_OUTPUT", flag: "output", value: DefaultOutput},
	{name: "report_file", env: "LINFIT_REPORT_FILE", flag: "report-file"},
}

// RegisterFlags adds the configuration flags to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.Duration("timeout", DefaultTimeout, "timeout of each remote fetch")
	flags.Int64("max-bytes", DefaultMaxPayloadBytes, "maximum raw and decoded size of a payload in bytes")
	flags.String("cache-dir", "", "directory of the remote payload cache (disabled when empty)")
	flags.Duration("cache-ttl", DefaultCacheTTL, "lifetime of cached remote payloads, 0 keeps them forever")
	flags.String("log-level", DefaultLogLevel, "log level: trace, debug, info, warn, error")
	flags.String("output", DefaultOutput, "output format: text or json")
	flags.String("report-file", "", "also write the JSON report to this file")
}

// Load resolves the configuration.
//
// envFiles are read with godotenv; when none are given DefaultEnvFile is read
// if it exists. Variables already present in the process environment win over
// file values, and flags set on flags win over both. The process environment
// is never modified. flags may be nil.
func Load(flags *pflag.FlagSet, envFiles ...string) (*Config, error) {
	dotenv, err := readEnvFiles(envFiles)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("LINFIT")
	v.AutomaticEnv()

	for _, k := range keys {
		if k.value != nil {
			v.SetDefault(k.name, k.value)
		}
		if val, ok := dotenv[k.env]; ok {
			v.SetDefault(k.name, val)
		}
		if err := v.BindEnv(k.name, k.env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k.env, err)
		}
		if flags == nil || k.flag == "" {
			continue
		}
		if f := flags.Lookup(k.flag); f != nil {
			if err := v.BindPFlag(k.name, f); err != nil {
				return nil, fmt.Errorf("bind --%s: %w", k.flag, err)
			}
		}
	}

	cfg := &Config{
		XLocator:        v.GetString("x_locator"),
		YLocator:        v.GetString("y_locator"),
		Timeout:         v.GetDuration("timeout"),
		MaxPayloadBytes: v.GetInt64("max_payload_bytes"),
		CacheDir:        v.GetString("cache_dir"),
		CacheTTL:        v.GetDuration("cache_ttl"),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		Output:          strings.ToLower(strings.TrimSpace(v.GetString("output"))),
		ReportFile:      v.GetString("report_file"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}
	if c.MaxPayloadBytes <= 0 {
		return fmt.Errorf("%w: max payload bytes must be positive, got %d", ErrInvalidConfig, c.MaxPayloadBytes)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: cache ttl must not be negative, got %s", ErrInvalidConfig, c.CacheTTL)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.Output)
	}

	return nil
}

// Level returns the parsed log level. It is only meaningful after Validate succeeded.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}

	return lvl
}

// readEnvFiles merges the given files, earlier files winning over later ones
// like godotenv.Load does. A missing DefaultEnvFile is not an error.
func readEnvFiles(files []string) (map[string]string, error) {
	optional := false
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
		optional = true
	}

	merged := make(map[string]string)
	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			if optional && errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return nil, fmt.Errorf("%w: read env file %s: %w", ErrInvalidConfig, file, err)
		}
		for k, val := range values {
			if _, seen := merged[k]; !seen {
				merged[k] = val
			}
		}
	}

	return merged, nil
}
