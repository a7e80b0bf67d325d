package spectral

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by Store operations after Close.
var ErrClosed = errors.New("spectral: store closed")

// LoadError reports a failure to locate or parse the coefficient table.
type LoadError struct {
	// Asset is the logical name of the table, such as "data/srgb.coeff".
	Asset string
	// Path is the resolved file path, empty if resolution failed.
	Path string
	// Err is the underlying error.
	Err error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("spectral: could not load spectral upsampling model (%q): %v", e.Asset, e.Err)
	}
	return fmt.Sprintf("spectral: could not load spectral upsampling model (%q at %s): %v", e.Asset, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
