package cie

// Wavelength range and sample count of the CIE 1931 table.
const (
	// Min is the shortest tabulated wavelength in nanometres.
	Min = 360.0
	// Max is the longest tabulated wavelength in nanometres.
	Max = 830.0
	// Samples is the number of tabulated wavelengths (5 nm spacing).
	Samples = 95
)

// MatchingTable holds colour-matching functions tabulated at uniformly
// spaced wavelengths spanning [Min, Max].
//
// MatchingTable is immutable after construction and safe for concurrent use.
type MatchingTable struct {
	Min, Max float64
	X, Y, Z  []float64
}

// Len returns the number of tabulated samples.
func (t *MatchingTable) Len() int {
	return len(t.Y)
}

// Eval returns the linearly interpolated (x̄, ȳ, z̄) at lambda.
// Wavelengths outside [Min, Max] yield zero.
func (t *MatchingTable) Eval(lambda float64) [3]float64 {
	n := t.Len()
	if n < 2 || lambda < t.Min || lambda > t.Max {
		return [3]float64{}
	}
	x := (lambda - t.Min) / (t.Max - t.Min) * float64(n-1)
	i := min(int(x), n-2)
	f := x - float64(i)
	return [3]float64{
		lerp(t.X[i], t.X[i+1], f),
		lerp(t.Y[i], t.Y[i+1], f),
		lerp(t.Z[i], t.Z[i+1], f),
	}
}

// Constant returns a table of m samples over [lo, hi] whose three
// functions are all equal to v.
func Constant(m int, lo, hi, v float64) *MatchingTable {
	t := &MatchingTable{
		Min: lo,
		Max: hi,
		X:   make([]float64, m),
		Y:   make([]float64, m),
		Z:   make([]float64, m),
	}
	for i := range m {
		t.X[i], t.Y[i], t.Z[i] = v, v, v
	}
	return t
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}

// CIE1931 is the CIE 1931 2° standard observer, 360–830 nm in 5 nm steps.
var CIE1931 = &MatchingTable{
	Min: Min,
	Max: Max,
	X: []float64{
		0.000129900, 0.000232100, 0.000414900, 0.000741600, 0.001368000,
		0.002236000, 0.004243000, 0.007650000, 0.014310000, 0.023190000,
		0.043510000, 0.077630000, 0.134380000, 0.214770000, 0.283900000,
		0.328500000, 0.348280000, 0.348060000, 0.336200000, 0.318700000,
		0.290800000, 0.251100000, 0.195360000, 0.142100000, 0.095640000,
		0.057950010, 0.032010000, 0.014700000, 0.004900000, 0.002400000,
		0.009300000, 0.029100000, 0.063270000, 0.109600000, 0.165500000,
		0.225749900, 0.290400000, 0.359700000, 0.433449900, 0.512050100,
		0.594500000, 0.678400000, 0.762100000, 0.842500000, 0.916300000,
		0.978600000, 1.026300000, 1.056700000, 1.062200000, 1.045600000,
		1.002600000, 0.938400000, 0.854449900, 0.751400000, 0.642400000,
		0.541900000, 0.447900000, 0.360800000, 0.283500000, 0.218700000,
		0.164900000, 0.121200000, 0.087400000, 0.063600000, 0.046770000,
		0.032900000, 0.022700000, 0.015840000, 0.011359160, 0.008110916,
		0.005790346, 0.004109457, 0.002899327, 0.002049190, 0.001439971,
		0.000999949, 0.000690079, 0.000476021, 0.000332301, 0.000234826,
		0.000166150, 0.000117413, 0.000083075, 0.000058707, 0.000041510,
		0.000029353, 0.000020674, 0.000014560, 0.000010254, 0.000007221,
		0.000005086, 0.000003582, 0.000002523, 0.000001777, 0.000001251,
	},
	Y: []float64{
		0.000003917, 0.000006965, 0.000012390, 0.000022020, 0.000039000,
		0.000064000, 0.000120000, 0.000217000, 0.000396000, 0.000640000,
		0.001210000, 0.002180000, 0.004000000, 0.007300000, 0.011600000,
		0.016840000, 0.023000000, 0.029800000, 0.038000000, 0.048000000,
		0.060000000, 0.073900000, 0.090980000, 0.112600000, 0.139020000,
		0.169300000, 0.208020000, 0.258600000, 0.323000000, 0.407300000,
		0.503000000, 0.608200000, 0.710000000, 0.793200000, 0.862000000,
		0.914850100, 0.954000000, 0.980300000, 0.994950100, 1.000000000,
		0.995000000, 0.978600000, 0.952000000, 0.915400000, 0.870000000,
		0.816300000, 0.757000000, 0.694900000, 0.631000000, 0.566800000,
		0.503000000, 0.441200000, 0.381000000, 0.321000000, 0.265000000,
		0.217000000, 0.175000000, 0.138200000, 0.107000000, 0.081600000,
		0.061000000, 0.044580000, 0.032000000, 0.023200000, 0.017000000,
		0.011920000, 0.008210000, 0.005723000, 0.004102000, 0.002929000,
		0.002091000, 0.001484000, 0.001047000, 0.000740000, 0.000520000,
		0.000361100, 0.000249200, 0.000171900, 0.000120000, 0.000084800,
		0.000060000, 0.000042400, 0.000030000, 0.000021200, 0.000014990,
		0.000010600, 0.000007466, 0.000005258, 0.000003703, 0.000002608,
		0.000001837, 0.000001293, 0.000000911, 0.000000642, 0.000000452,
	},
	Z: []float64{
		0.000606100, 0.001086000, 0.001946000, 0.003486000, 0.006450001,
		0.010549990, 0.020050010, 0.036210000, 0.067850010, 0.110200000,
		0.207400000, 0.371300000, 0.645600000, 1.039050100, 1.385600000,
		1.622960000, 1.747060000, 1.782600000, 1.772110000, 1.744100000,
		1.669200000, 1.528100000, 1.287640000, 1.041900000, 0.812950100,
		0.616200000, 0.465180000, 0.353300000, 0.272000000, 0.212300000,
		0.158200000, 0.111700000, 0.078249990, 0.057250010, 0.042160000,
		0.029840000, 0.020300000, 0.013400000, 0.008749999, 0.005749999,
		0.003900000, 0.002749999, 0.002100000, 0.001800000, 0.001650001,
		0.001400000, 0.001100000, 0.001000000, 0.000800000, 0.000600000,
		0.000340000, 0.000240000, 0.000190000, 0.000100000, 0.000050000,
		0.000030000, 0.000020000, 0.000010000, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
	},
}
