package dd

import (
	"math"
	"testing"
)

func TestTwoSumExact(t *testing.T) {
	a, b := 1.0, 1e-20
	s, e := TwoSum(a, b)
	if s != a+b {
		t.Errorf("s = %v, want %v", s, a+b)
	}
	// s+e must reconstruct a+b to full double-double precision; since
	// a+b rounds to a in float64, e should recover the lost 1e-20.
	if math.Abs(e-1e-20) > 1e-35 {
		t.Errorf("e = %v, want ~1e-20", e)
	}
}

func TestTwoProdExact(t *testing.T) {
	a, b := 1.0+1e-10, 1.0-1e-10
	p, e := TwoProd(a, b)
	want := a * b
	if p != want {
		t.Errorf("p = %v, want %v", p, want)
	}
	// The error term must be the exact rounding error of a*b, which a
	// fused multiply-add recovers directly.
	if wantErr := math.FMA(a, b, -p); e != wantErr {
		t.Errorf("e = %v, want %v", e, wantErr)
	}
}

func TestAddMatchesFloat64ToOneUlp(t *testing.T) {
	a, b := 0.1, 0.2
	got := FromFloat64(a).Add(FromFloat64(b))
	want := a + b
	if math.Abs(got.Hi-want) > math.Nextafter(want, want+1)-want {
		t.Errorf("Add hi = %v, want within 1 ulp of %v", got.Hi, want)
	}
}

func TestSquareMatchesMul(t *testing.T) {
	a := FromFloat64(3.14159265)
	viaMul := a.Mul(a)
	viaSquare := a.Square()
	if math.Abs(viaMul.Hi-viaSquare.Hi) > 1e-30 {
		t.Errorf("Mul(a,a).Hi = %v, Square(a).Hi = %v", viaMul.Hi, viaSquare.Hi)
	}
}

func TestSqrtRoundTrip(t *testing.T) {
	for _, x := range []float64{2, 3.5, 1e6, 1e-6, 0.001} {
		v := FromFloat64(x)
		s := v.Sqrt()
		back := s.Square()
		diff := back.Sub(v)
		if math.Abs(diff.Hi) > 2e-32*x {
			t.Errorf("sqrt(%v)^2 = %v, want %v (diff %v)", x, back.Hi, v.Hi, diff.Hi)
		}
	}
}

func TestSqrtNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on sqrt of negative value")
		}
	}()
	FromFloat64(-1).Sqrt()
}

func TestSinCosPythagorean(t *testing.T) {
	for x := -10.0; x <= 10.0; x += 0.37 {
		a := FromFloat64(x)
		s, c := SinCos(a)
		sum := s.Square().Add(c.Square())
		diff := math.Abs(sum.Hi - 1.0)
		if diff > 1e-30 {
			t.Errorf("sin^2+cos^2 at x=%v is %v, off by %v", x, sum.Hi, diff)
		}
	}
}

func TestSinCosAgainstMath(t *testing.T) {
	for x := -6.0; x <= 6.0; x += 0.53 {
		a := FromFloat64(x)
		s, c := SinCos(a)
		if math.Abs(s.Hi-math.Sin(x)) > 1e-12 {
			t.Errorf("Sin(%v) = %v, want ~%v", x, s.Hi, math.Sin(x))
		}
		if math.Abs(c.Hi-math.Cos(x)) > 1e-12 {
			t.Errorf("Cos(%v) = %v, want ~%v", x, c.Hi, math.Cos(x))
		}
	}
}

func TestAtan2Axes(t *testing.T) {
	one := FromFloat64(1)
	zero := Zero
	if got := Atan2(zero, one); got.Hi != 0 {
		t.Errorf("atan2(0,1) = %v, want 0", got.Hi)
	}
	if got := Atan2(one, zero); math.Abs(got.Hi-HalfPi.Hi) > 1e-30 {
		t.Errorf("atan2(1,0) = %v, want pi/2", got.Hi)
	}
}

func TestAtan2ZeroZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on atan2(0,0)")
		}
	}()
	Atan2(Zero, Zero)
}

func TestAtan2AgainstMath(t *testing.T) {
	cases := [][2]float64{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}, {3.3, -0.4}}
	for _, c := range cases {
		y, x := c[0], c[1]
		got := Atan2(FromFloat64(y), FromFloat64(x))
		want := math.Atan2(y, x)
		if math.Abs(got.Hi-want) > 1e-12 {
			t.Errorf("Atan2(%v,%v) = %v, want ~%v", y, x, got.Hi, want)
		}
	}
}

func TestPowMatchesRepeatedMultiplication(t *testing.T) {
	a := FromFloat64(1.0001)
	for _, n := range []int{0, 1, 2, 5, 10} {
		got := a.Pow(n)
		want := FromFloat64(1)
		for i := 0; i < n; i++ {
			want = want.Mul(a)
		}
		diff := got.Sub(want).Abs()
		if diff.Hi > float64(2*n+1)*1e-32 {
			t.Errorf("Pow(a,%d) = %v, want %v", n, got.Hi, want.Hi)
		}
	}
}

func TestPowZeroZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on pow(0,0)")
		}
	}()
	Zero.Pow(0)
}

func TestFormatParseRoundTrip(t *testing.T) {
	values := []float64{1, 3.14159, 0.001, 1234.5678, 1e10, 1e-10}
	for _, x := range values {
		v := FromFloat64(x)
		s := v.Format(32)
		back, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", s, err)
		}
		if math.Abs(back.Hi-v.Hi) > 1e-12*math.Max(1, math.Abs(v.Hi)) {
			t.Errorf("round trip of %v via %q gave %v", x, s, back.Hi)
		}
	}
}

func TestParseMalformedReturnsError(t *testing.T) {
	for _, s := range []string{"", "abc", "1.2.3", "1e", "--1"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) should have failed", s)
		}
	}
}

func TestCompareLexicographic(t *testing.T) {
	a := DD{1, 5}
	b := DD{1, 3}
	if !a.Gt(b) {
		t.Error("expected a > b on lo limb comparison")
	}
	if !b.Lt(a) {
		t.Error("expected b < a")
	}
}
