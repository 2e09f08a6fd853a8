// pkg/physics/vector.go
package physics

import (
	"github.com/golang/geo/r3"
)

// Body-local basis vectors. Forward is the nose direction, Right the
// starboard wing, Up the canopy. All flight math is expressed in this frame.
var (
	Forward = r3.Vector{X: 0, Y: 0, Z: 1}
	Right   = r3.Vector{X: 1, Y: 0, Z: 0}
	Up      = r3.Vector{X: 0, Y: 1, Z: 0}
)

// SafeNormalize returns the unit vector in the direction of v, or the zero
// vector when v has zero length. Degenerate inputs must never produce NaN.
func SafeNormalize(v r3.Vector) r3.Vector {
	n := v.Norm()
	if n == 0 {
		return r3.Vector{}
	}
	return v.Mul(1 / n)
}

// ProjectOnPlane returns v with its component along the unit normal n removed,
// leaving the projection of v onto the plane orthogonal to n.
func ProjectOnPlane(v, n r3.Vector) r3.Vector {
	return v.Sub(n.Mul(v.Dot(n)))
}

// Hadamard returns the componentwise product of a and b.
func Hadamard(a, b r3.Vector) r3.Vector {
	return r3.Vector{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

// Clamp limits x to the range [min, max].
func Clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// Clamp01 limits x to the range [0, 1].
func Clamp01(x float64) float64 {
	return Clamp(x, 0, 1)
}
