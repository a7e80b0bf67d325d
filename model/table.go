package model

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/zeebo/xxh3"
)

// NumCoeffs is the number of coefficients per table entry.
const NumCoeffs = 3

// MaxResolution bounds the grid size accepted by Decode.
const MaxResolution = 256

// Table is an immutable RGB-to-coefficient lookup table.
//
// Table is safe for concurrent use by multiple goroutines.
type Table struct {
	res   int
	scale []float32
	data  []float32
	sum   uint64
}

// New builds a table from its raw parts. The slices are retained.
func New(res int, scale, data []float32) (*Table, error) {
	if res < 2 || res > MaxResolution {
		return nil, fmt.Errorf("%w: %d", ErrResolution, res)
	}
	if len(scale) != res || len(data) != dataLen(res) {
		return nil, fmt.Errorf("%w: res %d, scale %d, data %d", ErrSize, res, len(scale), len(data))
	}
	for i := 1; i < res; i++ {
		if !(scale[i] > scale[i-1]) {
			return nil, fmt.Errorf("%w at index %d", ErrScale, i)
		}
	}
	return &Table{res: res, scale: scale, data: data, sum: checksum(scale, data)}, nil
}

// Res returns the grid resolution.
func (t *Table) Res() int {
	return t.res
}

// Scale returns a copy of the dominant-channel axis.
func (t *Table) Scale() []float32 {
	return append([]float32(nil), t.scale...)
}

// Checksum returns the XXH3 hash of the table contents.
func (t *Table) Checksum() uint64 {
	return t.sum
}

// Size returns the in-memory size of the table payload in bytes.
func (t *Table) Size() int {
	return 4 * (len(t.scale) + len(t.data))
}

// Lookup returns the interpolated coefficients for a linear RGB colour.
//
// Components are clamped to [0, 1]. A colour whose clamped maximum is zero
// returns (0, 0, -Inf), the closed form of a black reflectance.
func (t *Table) Lookup(rgb [3]float32) [3]float32 {
	var c [3]float32
	for j, v := range rgb {
		switch {
		case !(v > 0): // also catches NaN
			c[j] = 0
		case v > 1:
			c[j] = 1
		default:
			c[j] = v
		}
	}

	i := 0
	for j := 1; j < 3; j++ {
		if c[j] >= c[i] {
			i = j
		}
	}

	z := c[i]
	if z == 0 {
		return [3]float32{0, 0, float32(math.Inf(-1))}
	}

	res := t.res
	s := float32(res-1) / z
	x := c[(i+1)%3] * s
	y := c[(i+2)%3] * s

	xi := min(int(x), res-2)
	yi := min(int(y), res-2)
	zi := findInterval(t.scale, z)

	offset := (((i*res+zi)*res+yi)*res + xi) * NumCoeffs
	dx := NumCoeffs
	dy := NumCoeffs * res
	dz := NumCoeffs * res * res

	x1 := x - float32(xi)
	x0 := 1 - x1
	y1 := y - float32(yi)
	y0 := 1 - y1
	z1 := (z - t.scale[zi]) / (t.scale[zi+1] - t.scale[zi])
	z0 := 1 - z1

	d := t.data
	var out [3]float32
	for j := range out {
		out[j] = ((d[offset]*x0+d[offset+dx]*x1)*y0+
			(d[offset+dy]*x0+d[offset+dy+dx]*x1)*y1)*z0 +
			((d[offset+dz]*x0+d[offset+dz+dx]*x1)*y0+
				(d[offset+dz+dy]*x0+d[offset+dz+dy+dx]*x1)*y1)*z1
		offset++
	}
	return out
}

// findInterval returns the largest i in [0, len(values)-2] such that
// values[i] <= x, or 0 when x precedes every value.
func findInterval(values []float32, x float32) int {
	left := 0
	last := len(values) - 2
	size := last
	for size > 0 {
		half := size >> 1
		middle := left + half + 1
		if values[middle] <= x {
			left = middle
			size -= half + 1
		} else {
			size = half
		}
	}
	return min(left, last)
}

// Index returns the offset of the first coefficient of grid cell
// (channel, zi, yi, xi) in the flat data layout.
func Index(res, channel, zi, yi, xi int) int {
	return (((channel*res+zi)*res+yi)*res + xi) * NumCoeffs
}

func dataLen(res int) int {
	return 3 * res * res * res * NumCoeffs
}

func checksum(scale, data []float32) uint64 {
	buf := make([]byte, 0, 4*(len(scale)+len(data)))
	buf = appendFloats(buf, scale)
	buf = appendFloats(buf, data)
	return xxh3.Hash(buf)
}

func appendFloats(buf []byte, vs []float32) []byte {
	for _, v := range vs {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}
