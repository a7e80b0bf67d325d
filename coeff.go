package spectral

import (
	"fmt"
	"math"
)

// Coeff holds the coefficients (c0, c1, c2) of a sigmoid-normalised
// quadratic reflectance spectrum. Wavelengths are in nanometres.
type Coeff [3]float32

// RGB is a colour in linear sRGB, nominally in [0, 1].
type RGB [3]float32

var (
	// Black is the spectrum that is 0 at every wavelength.
	Black = Coeff{0, 0, float32(math.Inf(-1))}

	// White is the spectrum that is 1 at every wavelength.
	White = Coeff{0, 0, float32(math.Inf(1))}
)

// IsBlack reports whether c is the Black sentinel.
func (c Coeff) IsBlack() bool {
	return c == Black
}

// IsWhite reports whether c is the White sentinel.
func (c Coeff) IsWhite() bool {
	return c == White
}

// String returns a compact representation of c.
func (c Coeff) String() string {
	return fmt.Sprintf("Coeff(%g, %g, %g)", c[0], c[1], c[2])
}
