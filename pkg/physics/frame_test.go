// pkg/physics/frame_test.go
package physics

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

func TestQuatFromAxisAngle_Rotations(t *testing.T) {
	tests := []struct {
		name     string
		axis     r3.Vector
		angle    float64
		input    r3.Vector
		expected r3.Vector
	}{
		{
			name:     "yaw 90 degrees sends forward to right",
			axis:     Up,
			angle:    math.Pi / 2,
			input:    Forward,
			expected: Right,
		},
		{
			name:     "pitch 90 degrees sends forward to down",
			axis:     Right,
			angle:    math.Pi / 2,
			input:    Forward,
			expected: Up.Mul(-1),
		},
		{
			name:     "roll leaves forward unchanged",
			axis:     Forward,
			angle:    1.234,
			input:    Forward,
			expected: Forward,
		},
		{
			name:     "zero axis yields identity",
			axis:     r3.Vector{},
			angle:    math.Pi,
			input:    r3.Vector{X: 1, Y: 2, Z: 3},
			expected: r3.Vector{X: 1, Y: 2, Z: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromAxisAngle(tt.axis, tt.angle)
			got := RotateVector(q, tt.input)
			if !vectorsClose(got, tt.expected, 1e-12) {
				t.Errorf("RotateVector = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestInverseRotateVector_RoundTrip(t *testing.T) {
	q := QuatFromAxisAngle(r3.Vector{X: 1, Y: 2, Z: -1}, 0.73)
	v := r3.Vector{X: 4, Y: -2, Z: 9}

	world := RotateVector(q, v)
	back := InverseRotateVector(q, world)

	if !vectorsClose(back, v, 1e-12) {
		t.Errorf("round trip = %v, want %v", back, v)
	}
}

func TestIntegrateOrientation_ConstantRate(t *testing.T) {
	// Spin at pi/2 rad/s about up for one second in small steps; the result
	// should approximate a 90 degree yaw.
	q := QuatIdentity
	omega := Up.Mul(math.Pi / 2)
	const steps = 1000
	for i := 0; i < steps; i++ {
		q = IntegrateOrientation(q, omega, 1.0/steps)
	}

	got := RotateVector(q, Forward)
	if !vectorsClose(got, Right, 1e-3) {
		t.Errorf("forward after 1s yaw = %v, want approximately %v", got, Right)
	}
	if math.Abs(quat.Abs(q)-1) > 1e-9 {
		t.Errorf("orientation drifted off unit length: |q| = %v", quat.Abs(q))
	}
}

func TestNormalizeQuat_ZeroInput(t *testing.T) {
	got := NormalizeQuat(quat.Number{})
	if got != QuatIdentity {
		t.Errorf("NormalizeQuat(zero) = %v, want identity", got)
	}
}
