package spectral

import (
	"golang.org/x/exp/constraints"

	"github.com/gogpu/spectral/cie"
	"github.com/gogpu/spectral/internal/quad"
)

// Integrator reconstructs tristimulus values from spectral coefficients
// under a fixed illuminant.
//
// The products of quadrature weight, illuminant power and colour-matching
// functions are computed once at construction, in both float64 and float32,
// so each integration costs one spectrum evaluation per sample.
//
// Integrator is immutable and safe for concurrent use.
type Integrator struct {
	illuminant cie.Illuminant
	matching   *cie.MatchingTable
	double     kernel[float64]
	single     kernel[float32]
}

// kernel holds the quadrature wavelengths and the weighted
// illuminant × CMF products in one precision.
type kernel[T constraints.Float] struct {
	lambda  []T
	weights [][3]T
}

// NewIntegrator creates an integrator for a built-in illuminant.
func NewIntegrator(kind cie.Kind, opts ...IntegratorOption) (*Integrator, error) {
	var o integratorOptions
	for _, opt := range opts {
		opt(&o)
	}
	il, err := cie.New(kind, o.illuminant...)
	if err != nil {
		return nil, err
	}
	return NewIntegratorFor(il, opts...), nil
}

// NewIntegratorFor creates an integrator for an arbitrary illuminant.
// An illuminant that expands to exactly one element is replaced by it.
func NewIntegratorFor(il cie.Illuminant, opts ...IntegratorOption) *Integrator {
	o := integratorOptions{matching: cie.CIE1931}
	for _, opt := range opts {
		opt(&o)
	}
	il = cie.Leaf(il)
	return &Integrator{
		illuminant: il,
		matching:   o.matching,
		double:     newKernel[float64](il, o.matching),
		single:     newKernel[float32](il, o.matching),
	}
}

// newKernel samples il and cmf at the quadrature points. Wavelengths,
// weights and products are formed in T.
func newKernel[T constraints.Float](il cie.Illuminant, cmf *cie.MatchingTable) kernel[T] {
	n := quad.SampleCount(cmf.Len())
	k := kernel[T]{
		lambda:  make([]T, n),
		weights: make([][3]T, n),
	}
	if n == 0 {
		return k
	}

	lo, hi := T(cmf.Min), T(cmf.Max)
	h := quad.Step(lo, hi, n)
	for i := range n {
		lambda := lo + T(i)*h
		if i == n-1 {
			lambda = hi
		}
		w := quad.Weight(i, n, h) * T(il.Eval(float64(lambda)))
		xyz := cmf.Eval(float64(lambda))
		k.lambda[i] = lambda
		k.weights[i] = [3]T{w * T(xyz[0]), w * T(xyz[1]), w * T(xyz[2])}
	}
	return k
}

// Illuminant returns the illuminant the integrator was built for.
func (ig *Integrator) Illuminant() cie.Illuminant {
	return ig.illuminant
}

// Matching returns the colour-matching functions in use.
func (ig *Integrator) Matching() *cie.MatchingTable {
	return ig.matching
}

// Samples returns the number of quadrature points.
func (ig *Integrator) Samples() int {
	return len(ig.double.lambda)
}

// IntegrateXYZ returns the CIE XYZ tristimulus values of the reflectance c
// lit by the integrator's illuminant.
//
// For float32 the whole computation, including the quadrature kernel, runs
// in float32. Other types use the float64 kernel.
func IntegrateXYZ[T constraints.Float](ig *Integrator, c Coeff) [3]T {
	if k, ok := any(ig.single).(kernel[T]); ok {
		return accumulate[T](k, c)
	}
	return accumulate[T](ig.double, c)
}

func accumulate[T, K constraints.Float](k kernel[K], c Coeff) [3]T {
	var xyz [3]T
	for i, lambda := range k.lambda {
		r := Eval(c, T(lambda))
		if r == 0 {
			continue
		}
		w := &k.weights[i]
		xyz[0] += T(w[0]) * r
		xyz[1] += T(w[1]) * r
		xyz[2] += T(w[2]) * r
	}
	return xyz
}

// IntegrateRGB returns the linear sRGB colour of the reflectance c lit by
// the integrator's illuminant. The result is neither clamped nor
// gamma-encoded.
func IntegrateRGB[T constraints.Float](ig *Integrator, c Coeff) [3]T {
	return cie.Apply(cie.XYZToSRGB, IntegrateXYZ[T](ig, c))
}

// EvalRGB returns the linear sRGB colour of c under normalised D65.
// It builds a new integrator on every call; hold an Integrator when
// converting many colours.
func EvalRGB[T constraints.Float](c Coeff) [3]T {
	ig, err := NewIntegrator(cie.D65)
	if err != nil {
		panic(err) // D65 has no failure modes
	}
	return IntegrateRGB[T](ig, c)
}
