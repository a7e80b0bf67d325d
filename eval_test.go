package spectral

import (
	"math"
	"testing"

	"github.com/gogpu/spectral/cie"
)

func TestEvalSentinels(t *testing.T) {
	for _, lambda := range []float64{cie.Min, 450, 555.5, cie.Max, 1e6, -3} {
		if got := Eval(Black, lambda); got != 0 {
			t.Errorf("Eval(Black, %v) = %v, want 0", lambda, got)
		}
		if got := Eval(White, lambda); got != 1 {
			t.Errorf("Eval(White, %v) = %v, want 1", lambda, got)
		}
		if got := Eval(Black, float32(lambda)); got != 0 {
			t.Errorf("Eval(Black, float32 %v) = %v, want 0", lambda, got)
		}
		if got := Eval(White, float32(lambda)); got != 1 {
			t.Errorf("Eval(White, float32 %v) = %v, want 1", lambda, got)
		}
	}
}

func TestEvalZeroIsHalf(t *testing.T) {
	for _, lambda := range []float32{360, 500, 830} {
		if got := Eval(Coeff{}, lambda); got != 0.5 {
			t.Errorf("Eval(Coeff{}, %v) = %v, want 0.5", lambda, got)
		}
	}
}

func TestEvalFormula(t *testing.T) {
	c := Coeff{1e-4, -0.1, 20}
	lambda := 500.0
	p := (float64(c[0])*lambda+float64(c[1]))*lambda + float64(c[2])
	want := 0.5*p/math.Sqrt(1+p*p) + 0.5

	if got := Eval(c, lambda); !near(got, want, 1e-12) {
		t.Errorf("Eval = %v, want %v", got, want)
	}
	if got := Eval(c, float32(lambda)); !near(float64(got), want, 1e-5) {
		t.Errorf("Eval float32 = %v, want %v", got, want)
	}
}

func TestEvalRange(t *testing.T) {
	coeffs := []Coeff{
		smooth,
		{-3e-4, 0.3, -70},
		{1e-3, -1, 250},
		{0, 0, -1e6},
		{0, 0, 1e6},
	}
	for _, c := range coeffs {
		for lambda := cie.Min; lambda <= cie.Max; lambda += 10 {
			r := Eval(c, lambda)
			if r < 0 || r > 1 || math.IsNaN(r) {
				t.Fatalf("Eval(%v, %v) = %v, outside [0, 1]", c, lambda, r)
			}
		}
	}
}

func TestEvalSaturates(t *testing.T) {
	if got := Eval(Coeff{1e30, 0, 0}, float32(500)); got != 1 {
		t.Errorf("large positive = %v, want 1", got)
	}
	if got := Eval(Coeff{-1e30, 0, 0}, float32(500)); got != 0 {
		t.Errorf("large negative = %v, want 0", got)
	}
}

func TestEvalPacketMatchesScalar(t *testing.T) {
	var lambda Packet[float32]
	for i := range lambda {
		lambda[i] = 360 + float32(i)*61.3
	}
	for _, c := range []Coeff{smooth, Black, White, {}, {-3e-4, 0.3, -70}} {
		got := EvalPacket(c, lambda)
		for i := range lambda {
			if want := Eval(c, lambda[i]); got[i] != want {
				t.Errorf("%v lane %d: packet %v, scalar %v", c, i, got[i], want)
			}
		}
	}

	var lambda64 Packet[float64]
	for i := range lambda64 {
		lambda64[i] = float64(lambda[i])
	}
	got := EvalPacket(smooth, lambda64)
	for i := range lambda64 {
		if want := Eval(smooth, lambda64[i]); got[i] != want {
			t.Errorf("float64 lane %d: packet %v, scalar %v", i, got[i], want)
		}
	}
}

func TestEvalSlice(t *testing.T) {
	lambda := []float64{400, 500, 600}
	out := EvalSlice(smooth, lambda, nil)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	for i, l := range lambda {
		if out[i] != Eval(smooth, l) {
			t.Errorf("out[%d] = %v, want %v", i, out[i], Eval(smooth, l))
		}
	}

	buf := make([]float64, 8)
	out = EvalSlice(White, lambda, buf)
	if &out[0] != &buf[0] {
		t.Error("EvalSlice reallocated a large enough buffer")
	}
	if len(out) != 3 || out[2] != 1 {
		t.Errorf("out = %v", out)
	}
}

func TestMean(t *testing.T) {
	if got := Mean[float32](Black); got != 0 {
		t.Errorf("Mean(Black) = %v, want 0", got)
	}
	if got := Mean[float64](White); got != 1 {
		t.Errorf("Mean(White) = %v, want 1", got)
	}
	if got := Mean[float64](Coeff{}); got != 0.5 {
		t.Errorf("Mean(Coeff{}) = %v, want 0.5", got)
	}

	var sum float64
	for i := range 16 {
		sum += Eval(smooth, cie.Min+float64(i)*(cie.Max-cie.Min)/15)
	}
	if got := Mean[float64](smooth); !near(got, sum/16, 1e-12) {
		t.Errorf("Mean(smooth) = %v, want %v", got, sum/16)
	}
}

func TestCoeffString(t *testing.T) {
	if got := (Coeff{1, 2, 3}).String(); got != "Coeff(1, 2, 3)" {
		t.Errorf("String() = %q", got)
	}
}
