// Package spectral converts linear RGB colours into smooth reflectance
// spectra and back.
//
// # Overview
//
// A reflectance spectrum is represented by three coefficients (c0, c1, c2)
// of a quadratic in wavelength, squashed into [0, 1] by a sigmoid:
//
//	p(λ) = (c0·λ + c1)·λ + c2
//	r(λ) = 0.5·p / sqrt(1 + p²) + 0.5
//
// Coefficients for an RGB colour are obtained by interpolating a
// precomputed table (see package model). The table is loaded lazily on first
// use and shared by all goroutines.
//
// # Quick Start
//
//	s := spectral.NewStore()
//	defer s.Close()
//
//	c, err := s.Fetch(spectral.RGB{0.8, 0.3, 0.1})
//	if err != nil {
//	    return err
//	}
//	r := spectral.Eval(c, float32(550)) // reflectance at 550 nm
//	rgb := spectral.EvalRGB[float64](c) // back to linear sRGB under D65
//
// # Sentinels
//
// Pure black and pure white never touch the table: RGB (0,0,0) maps to
// [Black] and RGB (1,1,1) maps to [White], whose spectra are exactly 0 and 1.
//
// # Reconstruction
//
// [Integrator] integrates a spectrum against an illuminant and the CIE 1931
// colour-matching functions with a composite Simpson 3/8 rule, then converts
// XYZ to linear sRGB. Built-in illuminants (see package cie) are normalised
// so that a perfect white reflector has luminance 1.
//
// # Concurrency
//
// Store, Integrator and all coefficient values are safe for concurrent use.
package spectral

// Version is the current version of the library.
const Version = "0.3.0"
