package spectral

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/spectral/model"
	"github.com/gogpu/spectral/resolver"
)

// DefaultAsset is the logical name of the sRGB coefficient table.
const DefaultAsset = "data/srgb.coeff"

// Resolver turns a logical asset name into a readable file path.
// *resolver.Resolver implements it.
type Resolver interface {
	Resolve(name string) (string, error)
}

// Store owns a lazily loaded coefficient table.
//
// The table is read at most once per successful load, however many
// goroutines request it concurrently. A failed load leaves the store empty
// and is retried by the next call.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	asset    string
	resolver Resolver
	loader   Loader

	table  atomic.Pointer[model.Table]
	closed atomic.Bool
	mu     sync.Mutex
}

// NewStore creates a store. No file is touched until the first Load or
// Fetch.
func NewStore(opts ...StoreOption) *Store {
	o := storeOptions{asset: DefaultAsset}
	for _, opt := range opts {
		opt(&o)
	}
	if o.resolver == nil {
		o.resolver = resolver.FromEnv()
	}
	if o.loader == nil {
		o.loader = model.Open
	}
	return &Store{asset: o.asset, resolver: o.resolver, loader: o.loader}
}

// Asset returns the logical name of the table.
func (s *Store) Asset() string {
	return s.asset
}

// Load reads the table if it has not been read yet.
// It returns a *LoadError if the asset cannot be resolved or parsed, and
// ErrClosed after Close.
func (s *Store) Load() error {
	if s.table.Load() != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrClosed
	}
	if s.table.Load() != nil {
		return nil
	}

	path, err := s.resolver.Resolve(s.asset)
	if err != nil {
		return &LoadError{Asset: s.asset, Err: err}
	}
	t, err := s.loader(path)
	if err != nil {
		return &LoadError{Asset: s.asset, Path: path, Err: err}
	}
	s.table.Store(t)

	Logger().Info("spectral: loaded coefficient table",
		"asset", s.asset,
		"path", path,
		"res", t.Res(),
		"bytes", t.Size(),
		"checksum", fmt.Sprintf("%016x", t.Checksum()))
	return nil
}

// Loaded reports whether the table is currently resident.
func (s *Store) Loaded() bool {
	return s.table.Load() != nil
}

// Table returns the loaded table, loading it first if needed.
func (s *Store) Table() (*model.Table, error) {
	if t := s.table.Load(); t != nil {
		return t, nil
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	if t := s.table.Load(); t != nil {
		return t, nil
	}
	return nil, ErrClosed
}

// Fetch returns the spectral coefficients for a linear RGB colour.
//
// RGB (0,0,0) and (1,1,1) return Black and White without touching the
// table, so they succeed even when the table is unavailable. Any other
// colour requires the table; components outside [0, 1] are clamped.
func (s *Store) Fetch(rgb RGB) (Coeff, error) {
	switch rgb {
	case RGB{0, 0, 0}:
		return Black, nil
	case RGB{1, 1, 1}:
		return White, nil
	}
	t, err := s.Table()
	if err != nil {
		return Coeff{}, err
	}
	return Coeff(t.Lookup(rgb)), nil
}

// MustFetch is like Fetch but panics if the table cannot be loaded.
func (s *Store) MustFetch(rgb RGB) Coeff {
	c, err := s.Fetch(rgb)
	if err != nil {
		panic(err)
	}
	return c
}

// FetchAll fetches coefficients for every colour in rgbs into out, which
// must be at least as long as rgbs. On error out is left untouched.
func (s *Store) FetchAll(rgbs []RGB, out []Coeff) error {
	if len(out) < len(rgbs) {
		return fmt.Errorf("spectral: FetchAll: output length %d < input length %d", len(out), len(rgbs))
	}

	var t *model.Table
	for _, rgb := range rgbs {
		if !isSentinel(rgb) {
			var err error
			if t, err = s.Table(); err != nil {
				return err
			}
			break
		}
	}

	for i, rgb := range rgbs {
		switch rgb {
		case RGB{0, 0, 0}:
			out[i] = Black
		case RGB{1, 1, 1}:
			out[i] = White
		default:
			out[i] = Coeff(t.Lookup(rgb))
		}
	}
	return nil
}

func isSentinel(rgb RGB) bool {
	return rgb == RGB{0, 0, 0} || rgb == RGB{1, 1, 1}
}

// Close drops the table. Subsequent operations that need it return
// ErrClosed. Lookups already in progress complete normally.
// Close is safe to call multiple times.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s.table.Swap(nil) != nil {
		Logger().Debug("spectral: released coefficient table", "asset", s.asset)
	}
	return nil
}

var defaultStore = sync.OnceValue(func() *Store {
	return NewStore()
})

// Default returns the process-wide store used by the package-level Fetch.
func Default() *Store {
	return defaultStore()
}

// Fetch returns the coefficients for rgb using the Default store.
func Fetch(rgb RGB) (Coeff, error) {
	return Default().Fetch(rgb)
}
