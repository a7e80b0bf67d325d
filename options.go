package spectral

import (
	"github.com/gogpu/spectral/cie"
	"github.com/gogpu/spectral/model"
)

// StoreOption configures a Store during creation.
//
// Example:
//
//	s := spectral.NewStore(
//	    spectral.WithAsset("data/srgb.coeff"),
//	    spectral.WithResolver(resolver.New("/usr/share/spectral")),
//	)
type StoreOption func(*storeOptions)

type storeOptions struct {
	asset    string
	resolver Resolver
	loader   Loader
}

// WithAsset sets the logical name of the coefficient table.
// The default is DefaultAsset.
func WithAsset(name string) StoreOption {
	return func(o *storeOptions) {
		o.asset = name
	}
}

// WithResolver sets how the asset name is turned into a file path.
// The default searches $SPECTRAL_PATH, the working directory and the
// executable's directory.
func WithResolver(r Resolver) StoreOption {
	return func(o *storeOptions) {
		o.resolver = r
	}
}

// WithLoader replaces the function that reads a table from a resolved path.
// The default is model.Open.
func WithLoader(l Loader) StoreOption {
	return func(o *storeOptions) {
		o.loader = l
	}
}

// IntegratorOption configures an Integrator.
type IntegratorOption func(*integratorOptions)

type integratorOptions struct {
	matching   *cie.MatchingTable
	illuminant []cie.Option
}

// WithMatching replaces the CIE 1931 colour-matching functions.
func WithMatching(t *cie.MatchingTable) IntegratorOption {
	return func(o *integratorOptions) {
		o.matching = t
	}
}

// WithIlluminantOptions passes options to cie.New when the integrator is
// created from a Kind.
func WithIlluminantOptions(opts ...cie.Option) IntegratorOption {
	return func(o *integratorOptions) {
		o.illuminant = append(o.illuminant, opts...)
	}
}

// UpsampleOption configures UpsampleImage.
type UpsampleOption func(*upsampleOptions)

type upsampleOptions struct {
	linear   bool
	workers  int
	capacity int
}

// WithLinearInput treats pixel values as linear RGB instead of sRGB-encoded.
func WithLinearInput() UpsampleOption {
	return func(o *upsampleOptions) {
		o.linear = true
	}
}

// WithWorkers sets the number of goroutines used. Zero means GOMAXPROCS.
func WithWorkers(n int) UpsampleOption {
	return func(o *upsampleOptions) {
		o.workers = n
	}
}

// WithCacheCapacity sets the per-shard capacity of the colour cache.
func WithCacheCapacity(n int) UpsampleOption {
	return func(o *upsampleOptions) {
		o.capacity = n
	}
}

// Loader reads a coefficient table from a file.
type Loader func(path string) (*model.Table, error)
