// pkg/flight/config.go
package flight

import (
	"github.com/golang/geo/r3"

	"github.com/opd-ai/go-airrace/pkg/curve"
)

// Config holds the aerodynamic parameters for one aircraft. It is supplied
// at construction and never mutated afterwards; the model only reads it.
// Callers are responsible for supplying finite values (see pkg/validation
// for load-time checks).
type Config struct {
	// MaxEnginePower is the thrust force at full throttle.
	MaxEnginePower float64
	// WingPower scales lift generated in the pitch plane.
	WingPower float64
	// RudderPower scales lift generated in the yaw plane.
	RudderPower float64
	// InducedDragFactor converts squared lift coefficient into induced drag.
	InducedDragFactor float64
	// AngularDragCoefficients damp rotation per body axis
	// (X = pitch, Y = yaw, Z = roll).
	AngularDragCoefficients r3.Vector
	// SteeringLimits bound the magnitude of control torques per body axis
	// (X = pitch, Y = yaw, Z = roll).
	SteeringLimits r3.Vector
	// LiftCurve maps angle of attack or sideslip in degrees to a lift
	// coefficient.
	LiftCurve curve.Curve
	// DragCurve maps airspeed to a parasitic drag coefficient.
	DragCurve curve.Curve
}
