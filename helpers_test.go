package spectral

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/gogpu/spectral/model"
)

// smooth is a gently varying spectrum, well inside the sigmoid's linear range.
var smooth = Coeff{2e-5, -0.022, 5.5}

// constTable returns a res×res×res table whose every entry is c.
func constTable(t *testing.T, res int, c Coeff) *model.Table {
	t.Helper()
	scale := make([]float32, res)
	for i := range scale {
		f := float32(i) / float32(res-1)
		scale[i] = f * f
	}
	data := make([]float32, 3*res*res*res*model.NumCoeffs)
	for i := 0; i < len(data); i += model.NumCoeffs {
		copy(data[i:], c[:])
	}
	tab, err := model.New(res, scale, data)
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}
	return tab
}

type staticResolver string

func (r staticResolver) Resolve(string) (string, error) {
	return string(r), nil
}

type failingResolver struct{ err error }

func (r failingResolver) Resolve(string) (string, error) {
	return "", r.err
}

var errNoAsset = errors.New("no asset here")

// countingLoader returns tab and counts how often it was called.
func countingLoader(tab *model.Table, calls *atomic.Int32) Loader {
	return func(string) (*model.Table, error) {
		calls.Add(1)
		return tab, nil
	}
}

// memStore returns a store that serves tab without touching the filesystem.
func memStore(t *testing.T, tab *model.Table) *Store {
	t.Helper()
	s := NewStore(
		WithResolver(staticResolver("mem")),
		WithLoader(func(string) (*model.Table, error) { return tab, nil }),
	)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func near(a, b, tol float64) bool {
	d := a - b
	return d <= tol && d >= -tol
}
