// Package scalar defines the arithmetic contract that lets vec3.Vec3 and
// the rest of the simulator run unchanged over either float64 or
// dd.DD (see internal/dd), matching the "runtime/compile-time selected
// scalar implementing a common arithmetic protocol" option the source
// design calls out for parameterizing over precision.
package scalar

import "math"

// Scalar is the minimal arithmetic surface Vec3 and the force evaluators
// need from their element type.
type Scalar[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T
	Sqrt() T
	Sin() T
	Cos() T
	Atan2(x T) T
	Float64() float64
	FromFloat64(float64) T
}

// F64 adapts the builtin float64 to the Scalar contract so the double-
// precision simulation path costs nothing beyond a type alias.
type F64 float64

func (a F64) Add(b F64) F64            { return a + b }
func (a F64) Sub(b F64) F64            { return a - b }
func (a F64) Mul(b F64) F64            { return a * b }
func (a F64) Div(b F64) F64            { return a / b }
func (a F64) Neg() F64                 { return -a }
func (a F64) Float64() float64         { return float64(a) }
func (a F64) FromFloat64(x float64) F64 { return F64(x) }

func (a F64) Sqrt() F64 {
	if a < 0 {
		panic("scalar: sqrt of negative value")
	}
	return F64(math.Sqrt(float64(a)))
}

func (a F64) Sin() F64 { return F64(math.Sin(float64(a))) }
func (a F64) Cos() F64 { return F64(math.Cos(float64(a))) }

// Atan2 treats the receiver as the y coordinate, matching dd.Atan2(y, x).
func (a F64) Atan2(x F64) F64 { return F64(math.Atan2(float64(a), float64(x))) }
