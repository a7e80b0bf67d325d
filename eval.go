package spectral

import (
	"math"

	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"

	"github.com/gogpu/spectral/cie"
)

// PacketSize is the number of lanes in a Packet.
const PacketSize = 8

// Packet is a fixed-width group of wavelengths or reflectances evaluated
// together.
type Packet[T constraints.Float] [PacketSize]T

// meanSamples is the number of wavelengths averaged by Mean.
const meanSamples = 16

// Eval returns the reflectance of the spectrum c at wavelength lambda.
//
// The result is in [0, 1]. Sentinel spectra (c2 = ±Inf) evaluate to
// exactly 0 or 1.
func Eval[T constraints.Float](c Coeff, lambda T) T {
	if c2 := float64(c[2]); math.IsInf(c2, 0) {
		if c2 > 0 {
			return 1
		}
		return 0
	}

	p := (T(c[0])*lambda+T(c[1]))*lambda + T(c[2])
	d := 1 + p*p
	if d-d != 0 {
		// p² overflowed (or p is NaN): the sigmoid has saturated.
		if p > 0 {
			return 1
		}
		return 0
	}
	return max(0, T(0.5)*p/sqrt(d)+T(0.5))
}

// EvalPacket evaluates c at every lane of lambda.
func EvalPacket[T constraints.Float](c Coeff, lambda Packet[T]) Packet[T] {
	var out Packet[T]
	for i, l := range lambda {
		out[i] = Eval(c, l)
	}
	return out
}

// EvalSlice evaluates c at each wavelength in lambda, storing the results
// in out. out is reallocated if it is too short. The filled slice is
// returned.
func EvalSlice[T constraints.Float](c Coeff, lambda, out []T) []T {
	if cap(out) < len(lambda) {
		out = make([]T, len(lambda))
	}
	out = out[:len(lambda)]
	for i, l := range lambda {
		out[i] = Eval(c, l)
	}
	return out
}

// Mean returns the average reflectance of c over 16 equally spaced
// wavelengths spanning the visible range, endpoints included.
func Mean[T constraints.Float](c Coeff) T {
	step := T(cie.Max-cie.Min) / T(meanSamples-1)
	var sum T
	for i := range meanSamples {
		sum += Eval(c, T(cie.Min)+T(i)*step)
	}
	return sum / meanSamples
}

func sqrt[T constraints.Float](x T) T {
	if v, ok := any(x).(float32); ok {
		return T(math32.Sqrt(v))
	}
	return T(math.Sqrt(float64(x)))
}
