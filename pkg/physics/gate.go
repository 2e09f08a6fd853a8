// pkg/physics/gate.go
package physics

import (
	"github.com/golang/geo/r3"
)

// Sphere is a spherical trigger volume, used for checkpoint gates.
type Sphere struct {
	Center r3.Vector
	Radius float64
}

// Contains reports whether the point lies inside the sphere.
func (s Sphere) Contains(p r3.Vector) bool {
	return p.Sub(s.Center).Norm2() <= s.Radius*s.Radius
}

// Intersects reports whether two spheres overlap.
func (s Sphere) Intersects(other Sphere) bool {
	r := s.Radius + other.Radius
	return s.Center.Sub(other.Center).Norm2() < r*r
}

// CrossedBy reports whether the segment from a to b passes through the
// sphere. Gate passage is checked against the motion over a whole fixed
// step so a fast aircraft cannot tunnel through a gate between samples.
func (s Sphere) CrossedBy(a, b r3.Vector) bool {
	ab := b.Sub(a)
	lenSq := ab.Norm2()
	if lenSq == 0 {
		return s.Contains(a)
	}
	t := Clamp01(s.Center.Sub(a).Dot(ab) / lenSq)
	closest := a.Add(ab.Mul(t))
	return s.Contains(closest)
}
