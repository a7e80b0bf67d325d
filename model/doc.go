// Package model reads, writes and queries RGB-to-spectrum coefficient
// tables.
//
// A table maps a linear RGB colour to the three coefficients of a
// sigmoid-normalised quadratic reflectance spectrum. It is organised around
// the dominant channel of the colour: for each of the three possible
// dominant channels there is a res³ grid indexed by the dominant value z
// (through a non-uniform scale) and the two remaining channels divided by z.
//
// # File format
//
// All values are little-endian:
//
//	"SPEC"                       4-byte magic
//	res       uint32             grid resolution, at least 2
//	scale     [res]float32       dominant-channel positions, strictly increasing
//	data      [3][res][res][res][3]float32
//
// Open additionally accepts zstd- and xz-compressed files, detected from
// their magic bytes.
package model
