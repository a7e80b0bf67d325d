package cie

// d65Values is the relative spectral power distribution of CIE standard
// illuminant D65, 360–830 nm in 5 nm steps, normalised to 100 at 560 nm.
var d65Values = []float64{
	46.6383, 49.3637, 52.0891, 51.0323, 49.9755,
	52.3118, 54.6482, 68.7015, 82.7549, 87.1204,
	91.4860, 92.4589, 93.4318, 90.0570, 86.6823,
	95.7736, 104.865, 110.936, 117.008, 117.410,
	117.812, 116.336, 114.861, 115.392, 115.923,
	112.367, 108.811, 109.082, 109.354, 108.578,
	107.802, 106.296, 104.790, 106.239, 107.689,
	106.047, 104.405, 104.225, 104.046, 102.023,
	100.000, 98.1671, 96.3342, 96.0611, 95.7880,
	92.2368, 88.6856, 89.3459, 90.0062, 89.8026,
	89.5991, 88.6489, 87.6987, 85.4936, 83.2886,
	83.4939, 83.6992, 81.8630, 80.0268, 80.1207,
	80.2146, 81.2462, 82.2778, 80.2810, 78.2842,
	74.0027, 69.7213, 70.6652, 71.6091, 72.9790,
	74.3490, 67.9765, 61.6040, 65.7448, 69.8856,
	72.4863, 75.0870, 69.3398, 63.5927, 55.0054,
	46.4182, 56.6118, 66.8054, 65.0941, 63.3828,
	63.8434, 64.3040, 61.8779, 59.4519, 55.7054,
	51.9590, 54.6998, 57.4406, 58.8765, 60.3125,
}

// d65 is the unscaled D65 distribution.
var d65 = &Regular{Min: Min, Max: Max, Values: d65Values}
