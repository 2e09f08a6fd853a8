// pkg/physics/frame.go
package physics

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// QuatIdentity is the identity orientation (no rotation).
var QuatIdentity = quat.Number{Real: 1}

// QuatFromAxisAngle builds a unit quaternion rotating by angle radians about
// the given axis. The axis does not need to be normalized.
func QuatFromAxisAngle(axis r3.Vector, angle float64) quat.Number {
	u := SafeNormalize(axis)
	s, c := math.Sincos(angle / 2)
	return quat.Number{Real: c, Imag: u.X * s, Jmag: u.Y * s, Kmag: u.Z * s}
}

// RotateVector rotates v by the unit quaternion q, transforming a body-frame
// vector into the world frame.
func RotateVector(q quat.Number, v r3.Vector) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// InverseRotateVector rotates v by the conjugate of the unit quaternion q,
// transforming a world-frame vector into the body frame.
func InverseRotateVector(q quat.Number, v r3.Vector) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(quat.Conj(q), p), q)
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// IntegrateOrientation advances the unit quaternion q by the world-frame
// angular velocity omega (rad/s) over dt seconds, renormalizing the result.
func IntegrateOrientation(q quat.Number, omega r3.Vector, dt float64) quat.Number {
	w := quat.Number{Imag: omega.X, Jmag: omega.Y, Kmag: omega.Z}
	dq := quat.Scale(0.5*dt, quat.Mul(w, q))
	return NormalizeQuat(quat.Add(q, dq))
}

// NormalizeQuat scales q to unit length. The identity is returned for a
// zero quaternion so orientation state can never degenerate.
func NormalizeQuat(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return QuatIdentity
	}
	return quat.Scale(1/n, q)
}
