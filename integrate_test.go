package spectral

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/spectral/cie"
	"github.com/gogpu/spectral/internal/quad"
)

func TestQuadratureUnitIntegrand(t *testing.T) {
	ig := NewIntegratorFor(cie.Uniform{Value: 1},
		WithMatching(cie.Constant(cie.Samples, cie.Min, cie.Max, 1)))

	if got, want := ig.Samples(), 3*(cie.Samples-1)+1; got != want {
		t.Fatalf("Samples() = %d, want %d", got, want)
	}

	got := IntegrateXYZ[float64](ig, White)
	for i, v := range got {
		if !near(v, cie.Max-cie.Min, 1e-9) {
			t.Errorf("IntegrateXYZ(White)[%d] = %v, want %v", i, v, cie.Max-cie.Min)
		}
	}

	got32 := IntegrateXYZ[float32](ig, White)
	if !near(float64(got32[1]), cie.Max-cie.Min, 5e-2) {
		t.Errorf("float32 Y = %v, want %v", got32[1], cie.Max-cie.Min)
	}
}

func TestIntegrateBlackIsZero(t *testing.T) {
	ig, err := NewIntegrator(cie.D65)
	if err != nil {
		t.Fatal(err)
	}
	if got := IntegrateRGB[float64](ig, Black); got != ([3]float64{}) {
		t.Errorf("IntegrateRGB(Black) = %v, want zero", got)
	}
}

func TestEvalRGBWhite(t *testing.T) {
	for i, v := range EvalRGB[float64](White) {
		if !near(v, 1, 3e-2) {
			t.Errorf("EvalRGB(White)[%d] = %v, want ~1", i, v)
		}
	}
}

func TestEvalRGBZeroCoeffIsGrey(t *testing.T) {
	got := EvalRGB[float32](Coeff{})
	for i, v := range got {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("channel %d not finite: %v", i, v)
		}
		if !near(float64(v), 0.5, 2e-2) {
			t.Errorf("channel %d = %v, want ~0.5", i, v)
		}
	}
	white := EvalRGB[float32](White)
	for i := range got {
		if !near(float64(got[i]), 0.5*float64(white[i]), 1e-5) {
			t.Errorf("channel %d = %v, want half of white %v", i, got[i], white[i])
		}
	}
}

func TestIntegrateEqualEnergyLuminance(t *testing.T) {
	ig, err := NewIntegrator(cie.E)
	if err != nil {
		t.Fatal(err)
	}
	if y := IntegrateXYZ[float64](ig, White)[1]; !near(y, 1, 1e-9) {
		t.Errorf("Y(White) under E = %v, want 1", y)
	}
}

func TestIntegratePrecisionsAgree(t *testing.T) {
	ig, err := NewIntegrator(cie.D65)
	if err != nil {
		t.Fatal(err)
	}
	a := IntegrateRGB[float64](ig, smooth)
	b := IntegrateRGB[float32](ig, smooth)
	for i := range a {
		if !near(a[i], float64(b[i]), 1e-4) {
			t.Errorf("channel %d: float64 %v, float32 %v", i, a[i], b[i])
		}
	}
}

func TestNewIntegratorExpandsLeaf(t *testing.T) {
	ig, err := NewIntegrator(cie.D65)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ig.Illuminant().(*cie.Regular); !ok {
		t.Errorf("Illuminant() = %T, want *cie.Regular", ig.Illuminant())
	}
	if ig.Matching() != cie.CIE1931 {
		t.Error("default matching functions should be CIE1931")
	}
}

func TestNewIntegratorBlackbody(t *testing.T) {
	ig, err := NewIntegrator(cie.Blackbody, WithIlluminantOptions(cie.WithTemperature(3000)))
	if err != nil {
		t.Fatal(err)
	}
	rgb := IntegrateRGB[float64](ig, White)
	if !(rgb[0] > rgb[2]) {
		t.Errorf("3000 K white = %v, want red > blue", rgb)
	}

	_, err = NewIntegrator(cie.Blackbody, WithIlluminantOptions(cie.WithTemperature(-1)))
	if !errors.Is(err, cie.ErrTemperature) {
		t.Errorf("err = %v, want ErrTemperature", err)
	}
	_, err = NewIntegrator(cie.Kind(42))
	if !errors.Is(err, cie.ErrUnknownKind) {
		t.Errorf("err = %v, want ErrUnknownKind", err)
	}
}

func TestNewIntegratorDegenerateMatching(t *testing.T) {
	ig := NewIntegratorFor(cie.Uniform{Value: 1}, WithMatching(cie.Constant(1, cie.Min, cie.Max, 1)))
	if ig.Samples() != 0 {
		t.Fatalf("Samples() = %d, want 0", ig.Samples())
	}
	if got := IntegrateXYZ[float64](ig, White); got != ([3]float64{}) {
		t.Errorf("IntegrateXYZ = %v, want zero", got)
	}
}

func TestRoundTrip(t *testing.T) {
	ig, err := NewIntegrator(cie.D65)
	if err != nil {
		t.Fatal(err)
	}
	s := memStore(t, constTable(t, 8, smooth))

	want := IntegrateRGB[float32](ig, smooth)
	c, err := s.Fetch(RGB(want))
	if err != nil {
		t.Fatal(err)
	}
	got := IntegrateRGB[float32](ig, c)
	for i := range want {
		if !near(float64(got[i]), float64(want[i]), 1e-4) {
			t.Errorf("channel %d: round trip %v, want %v", i, got[i], want[i])
		}
	}
}

func TestIntegrateFloat32Kernel(t *testing.T) {
	ig, err := NewIntegrator(cie.D65)
	if err != nil {
		t.Fatal(err)
	}
	il, cmf := ig.Illuminant(), ig.Matching()

	n := quad.SampleCount(cmf.Len())
	lo, hi := float32(cmf.Min), float32(cmf.Max)
	h := quad.Step(lo, hi, n)
	var want [3]float32
	for i := range n {
		lambda := lo + float32(i)*h
		if i == n-1 {
			lambda = hi
		}
		w := quad.Weight(i, n, h) * float32(il.Eval(float64(lambda)))
		xyz := cmf.Eval(float64(lambda))
		r := Eval(smooth, lambda)
		for j := range want {
			want[j] += w * float32(xyz[j]) * r
		}
	}

	got := IntegrateXYZ[float32](ig, smooth)
	for j := range want {
		if !near(float64(got[j]), float64(want[j]), 1e-6*float64(want[j])) {
			t.Errorf("channel %d = %v, want %v", j, got[j], want[j])
		}
	}
}
