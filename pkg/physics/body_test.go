// pkg/physics/body_test.go
package physics

import (
	"testing"

	"github.com/golang/geo/r3"
)

func newTestBody() *Body {
	return NewBody(2.0, r3.Vector{X: 4, Y: 4, Z: 4})
}

func TestBody_ForceModeScaling(t *testing.T) {
	t.Run("force mode divides by mass", func(t *testing.T) {
		b := newTestBody()
		b.AddLocalForce(r3.Vector{Z: 10}, ForceModeForce)
		b.Step(1.0)

		want := r3.Vector{Z: 5} // 10 N / 2 kg over 1 s
		if !vectorsClose(b.Velocity(), want, 1e-12) {
			t.Errorf("velocity = %v, want %v", b.Velocity(), want)
		}
	})

	t.Run("acceleration mode ignores mass", func(t *testing.T) {
		b := newTestBody()
		b.AddLocalForce(r3.Vector{Z: 10}, ForceModeAcceleration)
		b.Step(1.0)

		want := r3.Vector{Z: 10}
		if !vectorsClose(b.Velocity(), want, 1e-12) {
			t.Errorf("velocity = %v, want %v", b.Velocity(), want)
		}
	})

	t.Run("impulse applies immediately scaled by mass", func(t *testing.T) {
		b := newTestBody()
		b.AddLocalForce(r3.Vector{Z: 10}, ForceModeImpulse)

		want := r3.Vector{Z: 5}
		if !vectorsClose(b.Velocity(), want, 1e-12) {
			t.Errorf("velocity before Step = %v, want %v", b.Velocity(), want)
		}
	})

	t.Run("velocity change applies immediately unscaled", func(t *testing.T) {
		b := newTestBody()
		b.AddLocalForce(r3.Vector{Z: 10}, ForceModeVelocityChange)

		want := r3.Vector{Z: 10}
		if !vectorsClose(b.Velocity(), want, 1e-12) {
			t.Errorf("velocity before Step = %v, want %v", b.Velocity(), want)
		}
	})
}

func TestBody_TorqueModes(t *testing.T) {
	t.Run("force mode torque divides by inertia", func(t *testing.T) {
		b := newTestBody()
		b.AddLocalTorque(r3.Vector{X: 8}, ForceModeForce)
		b.Step(1.0)

		want := r3.Vector{X: 2} // 8 / inertia 4 over 1 s
		if !vectorsClose(b.AngularVelocity(), want, 1e-9) {
			t.Errorf("angular velocity = %v, want %v", b.AngularVelocity(), want)
		}
	})

	t.Run("acceleration mode torque ignores inertia", func(t *testing.T) {
		b := newTestBody()
		b.AddLocalTorque(r3.Vector{X: 8}, ForceModeAcceleration)
		b.Step(1.0)

		want := r3.Vector{X: 8}
		if !vectorsClose(b.AngularVelocity(), want, 1e-9) {
			t.Errorf("angular velocity = %v, want %v", b.AngularVelocity(), want)
		}
	})

	t.Run("velocity change torque is immediate and step independent", func(t *testing.T) {
		b := newTestBody()
		b.AddLocalTorque(r3.Vector{Z: 0.5}, ForceModeVelocityChange)

		want := r3.Vector{Z: 0.5}
		if !vectorsClose(b.AngularVelocity(), want, 1e-12) {
			t.Errorf("angular velocity before Step = %v, want %v", b.AngularVelocity(), want)
		}

		// A subsequent step with no accumulation must not change it again.
		b.Step(0.01)
		if !vectorsClose(b.AngularVelocity(), want, 1e-12) {
			t.Errorf("angular velocity after Step = %v, want %v", b.AngularVelocity(), want)
		}
	})
}

func TestBody_LocalForceFollowsOrientation(t *testing.T) {
	b := newTestBody()
	// Yaw the body 90 degrees so its nose points along world +X.
	b.SetOrientation(QuatFromAxisAngle(Up, 3.14159265358979/2))
	b.AddLocalForce(Forward.Mul(20), ForceModeVelocityChange)

	want := r3.Vector{X: 20}
	if !vectorsClose(b.Velocity(), want, 1e-9) {
		t.Errorf("world velocity = %v, want %v", b.Velocity(), want)
	}
}

func TestBody_StepIntegratesPosition(t *testing.T) {
	b := newTestBody()
	b.SetVelocity(r3.Vector{Z: 3})
	b.Step(0.5)
	b.Step(0.5)

	want := r3.Vector{Z: 3}
	if !vectorsClose(b.Position(), want, 1e-12) {
		t.Errorf("position = %v, want %v", b.Position(), want)
	}
}

func TestBody_AccumulatorsClearAfterStep(t *testing.T) {
	b := newTestBody()
	b.AddLocalForce(r3.Vector{Z: 10}, ForceModeForce)
	b.Step(1.0)
	v1 := b.Velocity()
	b.Step(1.0)

	if !vectorsClose(b.Velocity(), v1, 1e-12) {
		t.Errorf("velocity changed after empty step: %v -> %v", v1, b.Velocity())
	}
}
