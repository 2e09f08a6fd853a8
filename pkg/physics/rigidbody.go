// pkg/physics/rigidbody.go
package physics

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// ForceMode selects how a submitted force or torque affects a rigid body.
type ForceMode int

const (
	// ForceModeForce accumulates a continuous force (or torque) scaled by
	// mass (or inertia) and integrated over the next step.
	ForceModeForce ForceMode = iota
	// ForceModeAcceleration accumulates a continuous acceleration,
	// independent of mass and inertia, integrated over the next step.
	ForceModeAcceleration
	// ForceModeImpulse applies an instantaneous momentum change scaled by
	// mass (or inertia), independent of the step duration.
	ForceModeImpulse
	// ForceModeVelocityChange applies an instantaneous velocity change,
	// independent of mass, inertia and step duration.
	ForceModeVelocityChange
)

// String returns the force mode name used in logs.
func (m ForceMode) String() string {
	switch m {
	case ForceModeForce:
		return "force"
	case ForceModeAcceleration:
		return "acceleration"
	case ForceModeImpulse:
		return "impulse"
	case ForceModeVelocityChange:
		return "velocity_change"
	default:
		return "unknown"
	}
}

// RigidBody is the integrator-side contract the flight model drives. The
// model reads world-frame state, transforms it into the body frame itself,
// and submits body-frame forces and torques back; the integrator owns the
// actual position and orientation update.
type RigidBody interface {
	// Velocity returns the current world-frame linear velocity.
	Velocity() r3.Vector
	// AngularVelocity returns the current world-frame angular velocity in rad/s.
	AngularVelocity() r3.Vector
	// Orientation returns the current body-to-world rotation as a unit quaternion.
	Orientation() quat.Number

	// AddLocalForce submits a body-frame force under the given mode.
	AddLocalForce(force r3.Vector, mode ForceMode)
	// AddLocalTorque submits a body-frame torque under the given mode.
	AddLocalTorque(torque r3.Vector, mode ForceMode)
}
