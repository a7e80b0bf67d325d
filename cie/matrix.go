package cie

import "golang.org/x/exp/constraints"

// Mat3 is a row-major 3x3 matrix.
type Mat3 [3][3]float64

// XYZToSRGB maps CIE XYZ to linear sRGB (D65 white).
var XYZToSRGB = Mat3{
	{3.240479, -1.537150, -0.498535},
	{-0.969256, 1.875991, 0.041556},
	{0.055648, -0.204043, 1.057311},
}

// SRGBToXYZ is the inverse of XYZToSRGB.
var SRGBToXYZ = Mat3{
	{0.412453, 0.357580, 0.180423},
	{0.212671, 0.715160, 0.072169},
	{0.019334, 0.119193, 0.950227},
}

// Mul returns m·v.
func (m Mat3) Mul(v [3]float64) [3]float64 {
	return Apply(m, v)
}

// Apply returns m·v evaluated in the precision of T.
func Apply[T constraints.Float](m Mat3, v [3]T) [3]T {
	var out [3]T
	for r := range 3 {
		out[r] = T(m[r][0])*v[0] + T(m[r][1])*v[1] + T(m[r][2])*v[2]
	}
	return out
}
