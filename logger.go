package spectral

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record and reports every level as disabled.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger routes the package's diagnostics to l; nil silences them again,
// which is also the initial state.
//
// Records emitted:
//   - Info "spectral: loaded coefficient table", once per successful Store load,
//     with the asset, path, resolution, size and checksum
//   - Debug "spectral: released coefficient table" from Store.Close
//   - Debug "spectral: upsampled image" from UpsampleImage, with cache hit rate
//
// SetLogger may be called while other goroutines are fetching.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger installed by SetLogger. The rgb2spec command
// logs through it too.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
