package spectral

import (
	"testing"

	"github.com/gogpu/spectral/cie"
	"github.com/gogpu/spectral/model"
)

func TestNewStoreDefaults(t *testing.T) {
	s := NewStore()
	defer s.Close()

	if s.Asset() != DefaultAsset {
		t.Errorf("Asset() = %q, want %q", s.Asset(), DefaultAsset)
	}
	if s.resolver == nil {
		t.Error("resolver is nil, expected search-path resolver")
	}
	if s.loader == nil {
		t.Error("loader is nil, expected model.Open")
	}
	if s.Loaded() {
		t.Error("NewStore must not load eagerly")
	}
}

func TestStoreOptions(t *testing.T) {
	var gotPath string
	s := NewStore(
		WithAsset("tables/custom.coeff"),
		WithResolver(staticResolver("/somewhere/custom.coeff")),
		WithLoader(func(path string) (*model.Table, error) {
			gotPath = path
			return constTable(t, 2, Coeff{}), nil
		}),
	)
	defer s.Close()

	if s.Asset() != "tables/custom.coeff" {
		t.Errorf("Asset() = %q", s.Asset())
	}
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/somewhere/custom.coeff" {
		t.Errorf("loader got %q, want resolved path", gotPath)
	}
}

func TestIntegratorOptions(t *testing.T) {
	m := cie.Constant(4, 400, 700, 1)
	ig := NewIntegratorFor(cie.Uniform{Value: 1}, WithMatching(m))
	if ig.Matching() != m {
		t.Error("WithMatching not applied")
	}
	if ig.Samples() != 10 {
		t.Errorf("Samples() = %d, want 10", ig.Samples())
	}
}

func TestUpsampleOptions(t *testing.T) {
	var o upsampleOptions
	for _, opt := range []UpsampleOption{WithLinearInput(), WithWorkers(3), WithCacheCapacity(17)} {
		opt(&o)
	}
	if !o.linear || o.workers != 3 || o.capacity != 17 {
		t.Errorf("options = %+v", o)
	}
}
