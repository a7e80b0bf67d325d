// Package cie provides the colorimetric data used for spectral
// reconstruction: the CIE 1931 2° colour-matching functions, standard
// illuminants and the XYZ to linear sRGB transform.
//
// Built-in illuminants are selected by Kind rather than by name lookup:
//
//	d65, err := cie.New(cie.D65)
//	warm, err := cie.New(cie.Blackbody, cie.WithTemperature(2700))
//
// All built-in illuminants are normalised so that a perfect white reflector
// has luminance Y = 1.
package cie
