// Package config loads the TOML settings shared by the rgb2spec tool and
// by programs embedding the spectral package.
//
// A minimal file:
//
//	asset = "data/srgb.coeff"
//	search_paths = ["~/.local/share/spectral"]
//	illuminant = "d65"
//	log_level = "info"
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/spectral"
	"github.com/gogpu/spectral/cie"
	"github.com/gogpu/spectral/resolver"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid value")

// Config holds user settings. The zero value is not valid; start from
// Default.
type Config struct {
	// Asset is the logical name of the coefficient table.
	Asset string `toml:"asset"`

	// SearchPaths are searched before $SPECTRAL_PATH, the working directory
	// and the executable's directory.
	SearchPaths []string `toml:"search_paths"`

	// Illuminant is the reconstruction illuminant: "d65", "e" or "blackbody".
	Illuminant string `toml:"illuminant"`

	// Temperature is the blackbody temperature in kelvin.
	Temperature float64 `toml:"temperature"`

	// Workers bounds parallelism for image conversion; 0 means GOMAXPROCS.
	Workers int `toml:"workers"`

	// CacheCapacity is the per-shard capacity of the colour cache.
	CacheCapacity int `toml:"cache_capacity"`

	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Asset:         spectral.DefaultAsset,
		Illuminant:    cie.D65.String(),
		Temperature:   6504,
		CacheCapacity: 256,
		LogLevel:      "warn",
	}
}

// Load reads path on top of Default. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Decode reads TOML from r on top of Default and validates the result.
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate reports the first setting that is out of range.
func (c *Config) Validate() error {
	if c.Asset == "" {
		return fmt.Errorf("%w: asset is empty", ErrInvalid)
	}
	if _, err := cie.ParseKind(c.Illuminant); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !(c.Temperature > 0) {
		return fmt.Errorf("%w: temperature %v", ErrInvalid, c.Temperature)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}
	if c.CacheCapacity < 0 {
		return fmt.Errorf("%w: cache_capacity %d", ErrInvalid, c.CacheCapacity)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}

// Resolver returns a resolver searching SearchPaths first, then the
// default locations.
func (c *Config) Resolver() *resolver.Resolver {
	r := resolver.FromEnv()
	for i := len(c.SearchPaths) - 1; i >= 0; i-- {
		r.Prepend(c.SearchPaths[i])
	}
	return r
}

// StoreOptions returns the options for spectral.NewStore.
func (c *Config) StoreOptions() []spectral.StoreOption {
	return []spectral.StoreOption{
		spectral.WithAsset(c.Asset),
		spectral.WithResolver(c.Resolver()),
	}
}

// UpsampleOptions returns the options for spectral.UpsampleImage.
func (c *Config) UpsampleOptions() []spectral.UpsampleOption {
	return []spectral.UpsampleOption{
		spectral.WithWorkers(c.Workers),
		spectral.WithCacheCapacity(c.CacheCapacity),
	}
}

// Integrator builds the reconstruction integrator for the configured
// illuminant.
func (c *Config) Integrator() (*spectral.Integrator, error) {
	k, err := cie.ParseKind(c.Illuminant)
	if err != nil {
		return nil, err
	}
	return spectral.NewIntegrator(k,
		spectral.WithIlluminantOptions(cie.WithTemperature(c.Temperature)))
}
