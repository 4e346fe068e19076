package dd

import "math"

// Pi's limbs are reproduced verbatim from the reference implementation
// this simulator's precision guarantees are derived from; they are not
// re-derived from math.Pi because the low limb encodes the residual
// below float64's 53-bit mantissa that math.Pi alone cannot represent.
var Pi = DD{Hi: 3.141592653589793116e+00, Lo: 1.224646799147353207e-16}

// HalfPi, QuarterPi and TwoPi are exact: scaling a DD by a power of two
// only shifts exponents, so no precision is lost deriving them from Pi.
var (
	HalfPi    = Pi.MulFloat(0.5)
	QuarterPi = Pi.MulFloat(0.25)
	TwoPi     = Pi.MulFloat(2.0)
)

// sinCosThresholdScale sets the Taylor-series cutoff to a relative 1e-34
// of the folded argument, per the reduction scheme below.
const sinCosThresholdScale = 1e-34

// foldedSinCos evaluates sin and cos of t via Taylor series, assuming
// |t| <= pi/4. cos is recovered from sin through sqrt(1-sin^2), valid
// because cos is positive throughout the folded domain.
func foldedSinCos(t DD) (sinT, cosT DD) {
	threshold := sinCosThresholdScale * math.Abs(t.Hi)
	if threshold == 0 {
		threshold = sinCosThresholdScale
	}

	t2 := t.Square()
	term := t
	sinT = t
	k := 1
	for i := 0; i < 60; i++ {
		k += 2
		divisor := FromInt((k - 1) * k)
		term = term.Mul(t2).Div(divisor).Neg()
		sinT = sinT.Add(term)
		if math.Abs(term.Hi) < threshold {
			break
		}
	}

	cosT = FromFloat64(1).Sub(sinT.Square()).Sqrt()
	return
}

// quadrantReduce reduces a to a fold t in [-pi/4, pi/4] and the quadrant
// index j (a's nearest multiple of pi/2) so callers can restore the
// original quadrant with the standard sign/swap identities.
func quadrantReduce(a DD) (t DD, j int) {
	j = int(math.Round(a.Hi / HalfPi.Hi))
	t = a.Sub(HalfPi.MulFloat(float64(j)))
	return
}

// Cos returns cos(a) for any finite dd angle a.
func Cos(a DD) DD {
	t, j := quadrantReduce(a)
	sinT, cosT := foldedSinCos(t)
	switch (((j % 4) + 4) % 4) {
	case 0:
		return cosT
	case 1:
		return sinT.Neg()
	case 2:
		return cosT.Neg()
	default: // 3
		return sinT
	}
}

// Sin returns sin(a). Per the reference algorithm this is implemented in
// terms of Cos rather than duplicating the quadrant/Taylor machinery.
func Sin(a DD) DD {
	return Cos(a.Sub(HalfPi))
}

// SinCos returns both sin and cos of a.
func SinCos(a DD) (sin, cos DD) {
	return Sin(a), Cos(a)
}

// Sin, Cos and Atan2 as methods let DD satisfy scalar.Scalar. Atan2
// treats the receiver as the y coordinate: a.Atan2(x) == Atan2(a, x).
func (a DD) Sin() DD        { return Sin(a) }
func (a DD) Cos() DD        { return Cos(a) }
func (a DD) Atan2(x DD) DD  { return Atan2(a, x) }

// Atan2 returns the angle of the point (x, y) in [-pi, pi], using
// closed-form results on the axes and diagonals and one Newton
// correction of the float64 estimate otherwise. atan2(0,0) is a fatal
// precondition violation.
func Atan2(y, x DD) DD {
	if x.IsZero() && y.IsZero() {
		panic("dd: atan2(0, 0) is undefined")
	}
	if y.IsZero() {
		if x.Hi > 0 {
			return Zero
		}
		return Pi
	}
	if x.IsZero() {
		if y.Hi > 0 {
			return HalfPi
		}
		return HalfPi.Neg()
	}
	if x.Abs().Eq(y.Abs()) {
		switch {
		case x.Hi > 0 && y.Hi > 0:
			return QuarterPi
		case x.Hi < 0 && y.Hi > 0:
			return Pi.Sub(QuarterPi)
		case x.Hi < 0 && y.Hi < 0:
			return QuarterPi.Sub(Pi)
		default: // x.Hi > 0 && y.Hi < 0
			return QuarterPi.Neg()
		}
	}

	z0 := math.Atan2(y.Float64(), x.Float64())
	z := FromFloat64(z0)
	r := x.Square().Add(y.Square()).Sqrt()
	sinZ, cosZ := SinCos(z)

	if math.Abs(cosZ.Hi) > math.Abs(sinZ.Hi) {
		z = z.Add((y.Div(r).Sub(sinZ)).Div(cosZ))
	} else {
		z = z.Sub((x.Div(r).Sub(cosZ)).Div(sinZ))
	}
	return z
}
