package cie

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"

	"github.com/gogpu/spectral/internal/quad"
)

// Sentinel errors for the cie package.
var (
	// ErrUnknownKind is returned when an illuminant name is not recognised.
	ErrUnknownKind = errors.New("cie: unknown illuminant")

	// ErrTemperature is returned for non-positive blackbody temperatures.
	ErrTemperature = errors.New("cie: temperature must be positive")
)

// Illuminant is a spectral power distribution.
type Illuminant interface {
	// Eval returns the power at lambda (nanometres).
	Eval(lambda float64) float64
}

// Expander is implemented by composite illuminants that can be replaced by
// an equivalent list of simpler ones.
type Expander interface {
	Expand() []Illuminant
}

// Leaf returns the single element of il's expansion, or il itself when it
// does not expand to exactly one illuminant.
func Leaf(il Illuminant) Illuminant {
	if e, ok := il.(Expander); ok {
		if xs := e.Expand(); len(xs) == 1 {
			return xs[0]
		}
	}
	return il
}

// Kind identifies a built-in illuminant.
type Kind uint8

const (
	// D65 is CIE standard illuminant D65 (noon daylight).
	D65 Kind = iota
	// E is the equal-energy illuminant.
	E
	// Blackbody is a Planckian radiator at a given temperature.
	Blackbody
)

var kindNames = [...]string{
	D65:       "d65",
	E:         "e",
	Blackbody: "blackbody",
}

// String returns the canonical lower-case name of k.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

var fold = cases.Fold()

// ParseKind maps a case-insensitive name to a Kind.
func ParseKind(name string) (Kind, error) {
	s := fold.String(strings.TrimSpace(name))
	for k, n := range kindNames {
		if s == n {
			return Kind(k), nil
		}
	}
	switch s {
	case "daylight":
		return D65, nil
	case "equal-energy", "equalenergy":
		return E, nil
	case "planck", "planckian":
		return Blackbody, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Option configures an illuminant created by New.
type Option func(*options)

type options struct {
	temperature float64
	scale       float64
}

// WithTemperature sets the blackbody temperature in kelvin (default 6504).
func WithTemperature(kelvin float64) Option {
	return func(o *options) {
		o.temperature = kelvin
	}
}

// WithScale multiplies the illuminant by s after normalisation.
func WithScale(s float64) Option {
	return func(o *options) {
		o.scale = s
	}
}

// New creates a built-in illuminant normalised to unit luminance, so that a
// perfect white reflector integrates to Y = 1 against CIE1931.
func New(k Kind, opts ...Option) (Illuminant, error) {
	o := options{temperature: 6504, scale: 1}
	for _, opt := range opts {
		opt(&o)
	}

	switch k {
	case D65:
		return &Scaled{Illuminant: d65, Factor: o.scale / Luminance(d65)}, nil
	case E:
		u := Uniform{Value: 1}
		return Uniform{Value: o.scale / Luminance(u)}, nil
	case Blackbody:
		if !(o.temperature > 0) {
			return nil, fmt.Errorf("%w: %v", ErrTemperature, o.temperature)
		}
		b := &Planck{Temperature: o.temperature, Scale: 1}
		b.Scale = o.scale / Luminance(b)
		return b, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownKind, k)
}

// Luminance integrates il against the CIE 1931 ȳ function using the same
// composite rule as spectral reconstruction.
func Luminance(il Illuminant) float64 {
	n := quad.SampleCount(CIE1931.Len())
	return quad.Integrate(CIE1931.Min, CIE1931.Max, n, func(lambda float64) float64 {
		return il.Eval(lambda) * CIE1931.Eval(lambda)[1]
	})
}

// Regular is a distribution tabulated at uniformly spaced wavelengths
// spanning [Min, Max], linearly interpolated and zero outside.
type Regular struct {
	Min, Max float64
	Values   []float64
}

// Eval implements Illuminant.
func (r *Regular) Eval(lambda float64) float64 {
	n := len(r.Values)
	if n < 2 || lambda < r.Min || lambda > r.Max {
		return 0
	}
	x := (lambda - r.Min) / (r.Max - r.Min) * float64(n-1)
	i := min(int(x), n-2)
	return lerp(r.Values[i], r.Values[i+1], x-float64(i))
}

// Uniform has the same power at every wavelength.
type Uniform struct {
	Value float64
}

// Eval implements Illuminant.
func (u Uniform) Eval(float64) float64 {
	return u.Value
}

// Scaled multiplies another illuminant by a constant factor.
type Scaled struct {
	Illuminant
	Factor float64
}

// Eval implements Illuminant.
func (s *Scaled) Eval(lambda float64) float64 {
	return s.Factor * s.Illuminant.Eval(lambda)
}

// Expand folds the factor into a tabulated distribution. Other inner
// illuminants do not expand.
func (s *Scaled) Expand() []Illuminant {
	switch in := s.Illuminant.(type) {
	case *Regular:
		vals := make([]float64, len(in.Values))
		for i, v := range in.Values {
			vals[i] = v * s.Factor
		}
		return []Illuminant{&Regular{Min: in.Min, Max: in.Max, Values: vals}}
	case Uniform:
		return []Illuminant{Uniform{Value: in.Value * s.Factor}}
	}
	return nil
}

// Physical constants for Planck's law (SI units).
const (
	planckH     = 6.62607015e-34
	lightC      = 299792458.0
	boltzmannKB = 1.380649e-23
)

// Planck is the spectral radiance of a blackbody, multiplied by Scale.
type Planck struct {
	Temperature float64 // kelvin
	Scale       float64
}

// Eval implements Illuminant.
func (p *Planck) Eval(lambda float64) float64 {
	if lambda <= 0 {
		return 0
	}
	l := lambda * 1e-9
	c1 := 2 * planckH * lightC * lightC
	c2 := planckH * lightC / boltzmannKB
	return p.Scale * c1 / (l * l * l * l * l * math.Expm1(c2/(l*p.Temperature)))
}
