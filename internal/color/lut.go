// Package color converts between sRGB-encoded pixel values and the linear
// RGB expected by the spectral upsampling model.
//
// Eight-bit conversions go through lookup tables built at init: 256 entries
// for decoding and 4096 for encoding (12-bit precision is enough to round
// to the correct byte).
package color

import "math"

var decodeLUT [256]float32

var encodeLUT [4096]uint8

func init() {
	for i := range decodeLUT {
		decodeLUT[i] = float32(decode64(float64(i) / 255))
	}
	for i := range encodeLUT {
		encodeLUT[i] = toByte(encode64(float64(i) / 4095))
	}
}

// Decode8 returns the linear value of an 8-bit sRGB component.
func Decode8(s uint8) float32 {
	return decodeLUT[s]
}

// Encode8 returns the 8-bit sRGB encoding of a linear value.
// Input outside [0, 1] is clamped.
func Encode8(l float32) uint8 {
	if !(l > 0) {
		return 0
	}
	if l >= 1 {
		return 255
	}
	return encodeLUT[int(l*4095+0.5)]
}

// DecodeRGB8 decodes an 8-bit sRGB triple.
func DecodeRGB8(r, g, b uint8) [3]float32 {
	return [3]float32{decodeLUT[r], decodeLUT[g], decodeLUT[b]}
}

// EncodeRGB8 encodes a linear triple to 8-bit sRGB, clamping each channel.
func EncodeRGB8(c [3]float32) [3]uint8 {
	return [3]uint8{Encode8(c[0]), Encode8(c[1]), Encode8(c[2])}
}

// Decode16 returns the linear value of a 16-bit sRGB component.
func Decode16(s uint16) float32 {
	return Decode(float32(s) / 65535)
}

// Decode applies the sRGB electro-optical transfer function.
func Decode(s float32) float32 {
	return float32(decode64(float64(s)))
}

// Encode applies the inverse of Decode without clamping.
func Encode(l float32) float32 {
	return float32(encode64(float64(l)))
}

func decode64(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

func encode64(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

func toByte(v float64) uint8 {
	i := int(v*255 + 0.5)
	if i < 0 {
		return 0
	}
	if i > 255 {
		return 255
	}
	return uint8(i) //nolint:gosec // clamped above
}
