// pkg/physics/body.go
package physics

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Body is a reference rigid-body integrator implementing RigidBody with
// semi-implicit Euler integration. It stands in for a host engine's
// integrator in the headless engine and in tests; a game embedding the
// flight model in a full physics engine adapts that engine instead.
//
// Inertia is modeled as a diagonal tensor in the body frame. Continuous
// forces and torques accumulate between steps; impulse and velocity-change
// submissions take effect immediately on the call, independent of dt.
type Body struct {
	mass    float64
	inertia r3.Vector // diagonal body-frame inertia tensor

	position    r3.Vector
	orientation quat.Number
	velocity    r3.Vector // world frame
	angularVel  r3.Vector // world frame, rad/s

	forceAccum    r3.Vector // world frame
	accelAccum    r3.Vector // world frame
	torqueAccum   r3.Vector // body frame
	angAccelAccum r3.Vector // body frame
}

// NewBody creates a body at the origin with identity orientation.
// Mass and the inertia diagonal must be positive.
func NewBody(mass float64, inertia r3.Vector) *Body {
	return &Body{
		mass:        mass,
		inertia:     inertia,
		orientation: QuatIdentity,
	}
}

// Mass returns the body's mass.
func (b *Body) Mass() float64 { return b.mass }

// Position returns the world-frame position.
func (b *Body) Position() r3.Vector { return b.position }

// SetPosition places the body in the world frame.
func (b *Body) SetPosition(p r3.Vector) { b.position = p }

// Velocity returns the world-frame linear velocity.
func (b *Body) Velocity() r3.Vector { return b.velocity }

// SetVelocity overwrites the world-frame linear velocity.
func (b *Body) SetVelocity(v r3.Vector) { b.velocity = v }

// AngularVelocity returns the world-frame angular velocity.
func (b *Body) AngularVelocity() r3.Vector { return b.angularVel }

// SetAngularVelocity overwrites the world-frame angular velocity.
func (b *Body) SetAngularVelocity(w r3.Vector) { b.angularVel = w }

// Orientation returns the body-to-world rotation.
func (b *Body) Orientation() quat.Number { return b.orientation }

// SetOrientation overwrites the body-to-world rotation, normalizing it.
func (b *Body) SetOrientation(q quat.Number) { b.orientation = NormalizeQuat(q) }

// AddLocalForce submits a body-frame force under the given mode.
func (b *Body) AddLocalForce(force r3.Vector, mode ForceMode) {
	b.AddForce(RotateVector(b.orientation, force), mode)
}

// AddForce submits a world-frame force under the given mode. The headless
// engine uses this for gravity; the flight model submits local forces only.
func (b *Body) AddForce(world r3.Vector, mode ForceMode) {
	switch mode {
	case ForceModeForce:
		b.forceAccum = b.forceAccum.Add(world)
	case ForceModeAcceleration:
		b.accelAccum = b.accelAccum.Add(world)
	case ForceModeImpulse:
		b.velocity = b.velocity.Add(world.Mul(1 / b.mass))
	case ForceModeVelocityChange:
		b.velocity = b.velocity.Add(world)
	}
}

// AddLocalTorque submits a body-frame torque under the given mode.
func (b *Body) AddLocalTorque(torque r3.Vector, mode ForceMode) {
	switch mode {
	case ForceModeForce:
		b.torqueAccum = b.torqueAccum.Add(torque)
	case ForceModeAcceleration:
		b.angAccelAccum = b.angAccelAccum.Add(torque)
	case ForceModeImpulse:
		b.angularVel = b.angularVel.Add(RotateVector(b.orientation, b.divInertia(torque)))
	case ForceModeVelocityChange:
		b.angularVel = b.angularVel.Add(RotateVector(b.orientation, torque))
	}
}

// Step integrates accumulated forces and torques over dt seconds and
// clears the accumulators. Velocity updates before position so fast spins
// and dives stay stable at arcade timesteps.
func (b *Body) Step(dt float64) {
	accel := b.forceAccum.Mul(1 / b.mass).Add(b.accelAccum)
	b.velocity = b.velocity.Add(accel.Mul(dt))
	b.position = b.position.Add(b.velocity.Mul(dt))

	angAccel := b.divInertia(b.torqueAccum).Add(b.angAccelAccum)
	b.angularVel = b.angularVel.Add(RotateVector(b.orientation, angAccel).Mul(dt))
	b.orientation = IntegrateOrientation(b.orientation, b.angularVel, dt)

	b.forceAccum = r3.Vector{}
	b.accelAccum = r3.Vector{}
	b.torqueAccum = r3.Vector{}
	b.angAccelAccum = r3.Vector{}
}

// divInertia divides a body-frame torque by the diagonal inertia tensor.
func (b *Body) divInertia(torque r3.Vector) r3.Vector {
	return r3.Vector{
		X: torque.X / b.inertia.X,
		Y: torque.Y / b.inertia.Y,
		Z: torque.Z / b.inertia.Z,
	}
}
