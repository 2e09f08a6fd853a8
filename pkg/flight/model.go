// Package flight implements the per-body flight dynamics model: a
// closed-form aerodynamic force computation run once per fixed physics
// step. The model reads the rigid body's world-frame state, derives a
// body-frame snapshot, and submits thrust, lift, induced drag, parasitic
// drag and angular drag back to the integrator. It never moves the body
// itself.
//
// Control input (throttle, steering torques, flap) arrives from the
// variable-rate frame via the exported control methods. A mutex serializes
// those calls against Step so the model stays correct when the host runs
// input and physics on different goroutines; in a single-threaded loop the
// lock is uncontended.
package flight

import (
	"math"
	"sync"

	"github.com/golang/geo/r3"

	"github.com/opd-ai/go-airrace/pkg/physics"
)

const degPerRad = 180 / math.Pi

// Model is the flight dynamics model for a single rigid body. Each
// simulated aircraft owns an independent instance; nothing is shared.
type Model struct {
	mu   sync.Mutex
	cfg  Config
	body physics.RigidBody

	throttle float64
	flap     float64 // radians, added to angle of attack for the wing only

	// Body-frame snapshot, recomputed once at the top of every Step and
	// read-only for the rest of that step.
	localVelocity        r3.Vector
	localAngularVelocity r3.Vector
	angleOfAttack        float64
	sideslip             float64
}

// New creates a flight model bound to the given rigid body. The
// configuration is copied and treated as immutable from here on.
func New(cfg Config, body physics.RigidBody) *Model {
	return &Model{cfg: cfg, body: body}
}

// Step runs one fixed-timestep force computation: snapshot the body-frame
// state, then submit thrust, wing and rudder lift with induced drag,
// parasitic drag and angular drag to the rigid body.
func (m *Model) Step() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deriveState()
	m.applyThrust()
	m.applyLift(m.angleOfAttack+m.flap, physics.Right, m.cfg.WingPower)
	m.applyLift(m.sideslip, physics.Up, m.cfg.RudderPower)
	m.applyParasiticDrag()
	m.applyAngularDrag()
}

// deriveState transforms the body's world-frame velocities into the body
// frame and derives the flow angles for this step.
func (m *Model) deriveState() {
	q := m.body.Orientation()
	m.localVelocity = physics.InverseRotateVector(q, m.body.Velocity())
	m.localAngularVelocity = physics.InverseRotateVector(q, m.body.AngularVelocity())

	// Pitch-plane and yaw-plane flow angles. atan2 handles the zero-speed
	// case by returning zero.
	m.angleOfAttack = math.Atan2(-m.localVelocity.Y, m.localVelocity.Z)
	m.sideslip = math.Atan2(m.localVelocity.X, m.localVelocity.Z)
}

func (m *Model) applyThrust() {
	m.body.AddLocalForce(physics.Forward.Mul(m.throttle*m.cfg.MaxEnginePower), physics.ForceModeForce)
}

// applyLift computes lift and its induced drag about one reference axis
// and submits them as a single combined body-frame force. The wing call
// uses the pitch-plane angle and the right axis; the rudder call uses the
// sideslip angle and the up axis.
func (m *Model) applyLift(angleRad float64, axis r3.Vector, power float64) {
	liftVelocity := physics.ProjectOnPlane(m.localVelocity, axis)
	speedSq := liftVelocity.Norm2()
	if speedSq == 0 {
		return
	}

	liftCoefficient := m.cfg.LiftCurve.Sample(angleRad * degPerRad)
	liftDirection := physics.SafeNormalize(liftVelocity.Cross(axis))
	lift := liftDirection.Mul(liftCoefficient * speedSq * power)

	inducedDragCoefficient := liftCoefficient * liftCoefficient * m.cfg.InducedDragFactor
	inducedDrag := physics.SafeNormalize(liftVelocity).Mul(-inducedDragCoefficient * speedSq)

	m.body.AddLocalForce(lift.Add(inducedDrag), physics.ForceModeForce)
}

func (m *Model) applyParasiticDrag() {
	speedSq := m.localVelocity.Norm2()
	if speedSq == 0 {
		return
	}
	dragCoefficient := m.cfg.DragCurve.Sample(math.Sqrt(speedSq))
	drag := physics.SafeNormalize(m.localVelocity).Mul(-dragCoefficient * speedSq)
	m.body.AddLocalForce(drag, physics.ForceModeForce)
}

// applyAngularDrag damps rotation with a per-axis quadratic torque in
// acceleration mode, so damping feel does not depend on the body's inertia.
func (m *Model) applyAngularDrag() {
	spinSq := m.localAngularVelocity.Norm2()
	if spinSq == 0 {
		return
	}
	direction := physics.SafeNormalize(m.localAngularVelocity).Mul(-spinSq)
	torque := physics.Hadamard(direction, m.cfg.AngularDragCoefficients)
	m.body.AddLocalTorque(torque, physics.ForceModeAcceleration)
}

// AddThrottle adjusts throttle by amount, clamping the result to [0, 1].
// The change takes effect at the next Step's thrust computation.
func (m *Model) AddThrottle(amount float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.throttle = physics.Clamp01(m.throttle + amount)
}

// Throttle returns the current throttle setting in [0, 1].
func (m *Model) Throttle() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.throttle
}

// SetFlapRad sets the flap deflection in radians. The offset is added to
// the angle of attack in the wing lift computation only.
func (m *Model) SetFlapRad(angle float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flap = angle
}

// FlapRad returns the current flap deflection in radians.
func (m *Model) FlapRad() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flap
}

// ApplyRollTorque applies an instantaneous roll torque about the forward
// axis, clamped to the configured limit. Negative magnitude rolls right.
func (m *Model) ApplyRollTorque(magnitude float64) {
	m.applySteering(physics.Forward, magnitude, m.cfg.SteeringLimits.Z)
}

// ApplyPitchTorque applies an instantaneous pitch torque about the right
// axis, clamped to the configured limit. Negative magnitude pitches up.
func (m *Model) ApplyPitchTorque(magnitude float64) {
	m.applySteering(physics.Right, magnitude, m.cfg.SteeringLimits.X)
}

// ApplyYawTorque applies an instantaneous yaw torque about the up axis,
// clamped to the configured limit. Negative magnitude steers left.
func (m *Model) ApplyYawTorque(magnitude float64) {
	m.applySteering(physics.Up, magnitude, m.cfg.SteeringLimits.Y)
}

func (m *Model) applySteering(axis r3.Vector, magnitude, limit float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clamped := physics.Clamp(magnitude, -limit, limit)
	m.body.AddLocalTorque(axis.Mul(clamped), physics.ForceModeVelocityChange)
}

// AngleOfAttack returns the pitch-plane flow angle in radians from the
// last Step.
func (m *Model) AngleOfAttack() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.angleOfAttack
}

// Sideslip returns the yaw-plane flow angle in radians from the last Step.
func (m *Model) Sideslip() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sideslip
}

// LocalVelocity returns the body-frame velocity snapshot from the last Step.
func (m *Model) LocalVelocity() r3.Vector {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.localVelocity
}
