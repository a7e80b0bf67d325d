// Package quad implements the composite Simpson 3/8 rule used to integrate
// spectra against tabulated colour-matching functions.
//
// A table of M samples spans M-1 intervals. Each interval is split into
// three sub-intervals so that every panel of the 3/8 rule lines up with one
// table interval, giving N = 3(M-1)+1 quadrature points.
package quad

import "golang.org/x/exp/constraints"

// SampleCount returns the number of quadrature points for a table of m
// samples. It returns 0 for m < 2.
func SampleCount(m int) int {
	if m < 2 {
		return 0
	}
	return 3*(m-1) + 1
}

// Step returns the spacing of n points spanning [lo, hi].
func Step[T constraints.Float](lo, hi T, n int) T {
	return (hi - lo) / T(n-1)
}

// Weight returns the quadrature weight of point i out of n with spacing h.
//
// The base weight is 3h/8. Endpoints keep it, interior points that close a
// panel ((i-1) mod 3 == 2) get twice the base and all others three times.
func Weight[T constraints.Float](i, n int, h T) T {
	w := T(3) / T(8) * h
	switch {
	case i == 0 || i == n-1:
	case (i-1)%3 == 2:
		w *= 2
	default:
		w *= 3
	}
	return w
}

// Weights returns all n weights for spacing h.
func Weights[T constraints.Float](n int, h T) []T {
	ws := make([]T, n)
	for i := range ws {
		ws[i] = Weight(i, n, h)
	}
	return ws
}

// Integrate applies the rule to f over [lo, hi] using n points.
// n must be of the form 3k+1. The last point is exactly hi.
func Integrate[T constraints.Float](lo, hi T, n int, f func(T) T) T {
	h := Step(lo, hi, n)
	var sum T
	for i := range n {
		x := lo + T(i)*h
		if i == n-1 {
			x = hi
		}
		sum += Weight(i, n, h) * f(x)
	}
	return sum
}
