// Package vec3 implements three-component vector algebra generic over any
// type satisfying scalar.Scalar, so the same code serves both the
// double-precision Particle-Mesh path and the double-double precision
// direct-summation path (see internal/dd).
package vec3

import "github.com/postusername/n-body-problem/internal/scalar"

// Vec3 is a three-component vector over scalar type T.
type Vec3[T scalar.Scalar[T]] struct {
	X, Y, Z T
}

// New builds a Vec3 from three components of type T.
func New[T scalar.Scalar[T]](x, y, z T) Vec3[T] {
	return Vec3[T]{x, y, z}
}

// FromFloats builds a Vec3[T] from three plain float64s, using zero's
// FromFloat64 as the constructor for T.
func FromFloats[T scalar.Scalar[T]](zero T, x, y, z float64) Vec3[T] {
	return Vec3[T]{zero.FromFloat64(x), zero.FromFloat64(y), zero.FromFloat64(z)}
}

// Zero returns the zero vector for T, derived from a representative zero
// value of T (needed because generic code cannot spell T{} for arbitrary
// interfaces).
func Zero[T scalar.Scalar[T]](zero T) Vec3[T] {
	z := zero.FromFloat64(0)
	return Vec3[T]{z, z, z}
}

func (v Vec3[T]) Add(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X.Add(o.X), v.Y.Add(o.Y), v.Z.Add(o.Z)}
}

func (v Vec3[T]) Sub(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X.Sub(o.X), v.Y.Sub(o.Y), v.Z.Sub(o.Z)}
}

func (v Vec3[T]) Neg() Vec3[T] {
	return Vec3[T]{v.X.Neg(), v.Y.Neg(), v.Z.Neg()}
}

func (v Vec3[T]) Scale(s T) Vec3[T] {
	return Vec3[T]{v.X.Mul(s), v.Y.Mul(s), v.Z.Mul(s)}
}

func (v Vec3[T]) Dot(o Vec3[T]) T {
	return v.X.Mul(o.X).Add(v.Y.Mul(o.Y)).Add(v.Z.Mul(o.Z))
}

func (v Vec3[T]) Cross(o Vec3[T]) Vec3[T] {
	return Vec3[T]{
		v.Y.Mul(o.Z).Sub(v.Z.Mul(o.Y)),
		v.Z.Mul(o.X).Sub(v.X.Mul(o.Z)),
		v.X.Mul(o.Y).Sub(v.Y.Mul(o.X)),
	}
}

func (v Vec3[T]) MagnitudeSquared() T {
	return v.Dot(v)
}

func (v Vec3[T]) Magnitude() T {
	return v.MagnitudeSquared().Sqrt()
}

// Normalized returns v/|v|, or the zero vector if |v| < eps.
func (v Vec3[T]) Normalized(eps float64) Vec3[T] {
	mag := v.Magnitude()
	if mag.Float64() < eps {
		return Zero(mag)
	}
	return v.Scale(mag.FromFloat64(1).Div(mag))
}

// Floats returns the vector's components as plain float64s, useful for
// display, grid indexing and interop with the PM solver's flat buffers.
func (v Vec3[T]) Floats() (x, y, z float64) {
	return v.X.Float64(), v.Y.Float64(), v.Z.Float64()
}
