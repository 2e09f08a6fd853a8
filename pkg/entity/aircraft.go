// pkg/entity/aircraft.go
package entity

import (
	"github.com/EngoEngine/ecs"
	"github.com/golang/geo/r3"

	"github.com/opd-ai/go-airrace/pkg/curve"
	"github.com/opd-ai/go-airrace/pkg/flight"
	"github.com/opd-ai/go-airrace/pkg/physics"
)

// AircraftClass defines the type of aircraft and its handling
type AircraftClass int

const (
	Trainer AircraftClass = iota
	Stunt
	Racer
)

// ClassStats contains the base statistics for an aircraft class
type ClassStats struct {
	Mass              float64
	Inertia           r3.Vector
	MaxEnginePower    float64
	WingPower         float64
	RudderPower       float64
	InducedDragFactor float64
	AngularDrag       r3.Vector
	SteeringLimits    r3.Vector
}

// Aircraft couples a rigid body with its flight model and race progress.
// One instance exists per simulated aircraft; the engine's systems own it.
type Aircraft struct {
	ecs.BasicEntity
	Name  string
	Class AircraftClass
	Body  *physics.Body
	Model *flight.Model

	// Race progress, advanced by the race system.
	NextGate     int
	GatesPassed  int
	Score        int
	Finished     bool
	PrevPosition r3.Vector
}

// NewAircraft creates an aircraft of the given class using the supplied
// authored lift and drag curves. The rigid body starts at the origin at
// rest; callers position it before the race starts.
func NewAircraft(name string, class AircraftClass, lift, drag curve.Curve) *Aircraft {
	stats := getClassStats(class)

	body := physics.NewBody(stats.Mass, stats.Inertia)
	model := flight.New(flight.Config{
		MaxEnginePower:          stats.MaxEnginePower,
		WingPower:               stats.WingPower,
		RudderPower:             stats.RudderPower,
		InducedDragFactor:       stats.InducedDragFactor,
		AngularDragCoefficients: stats.AngularDrag,
		SteeringLimits:          stats.SteeringLimits,
		LiftCurve:               lift,
		DragCurve:               drag,
	}, body)

	return &Aircraft{
		BasicEntity: ecs.NewBasic(),
		Name:        name,
		Class:       class,
		Body:        body,
		Model:       model,
	}
}

// getClassStats returns the base stats for an aircraft class
func getClassStats(class AircraftClass) ClassStats {
	switch class {
	case Stunt:
		return ClassStats{
			Mass:              800,
			Inertia:           r3.Vector{X: 900, Y: 1100, Z: 600},
			MaxEnginePower:    22000,
			WingPower:         4.5,
			RudderPower:       1.4,
			InducedDragFactor: 0.035,
			AngularDrag:       r3.Vector{X: 2.2, Y: 2.2, Z: 1.4},
			SteeringLimits:    r3.Vector{X: 1.4, Y: 0.9, Z: 2.0},
		}
	case Racer:
		return ClassStats{
			Mass:              650,
			Inertia:           r3.Vector{X: 700, Y: 900, Z: 450},
			MaxEnginePower:    30000,
			WingPower:         3.6,
			RudderPower:       1.0,
			InducedDragFactor: 0.05,
			AngularDrag:       r3.Vector{X: 2.8, Y: 2.8, Z: 1.8},
			SteeringLimits:    r3.Vector{X: 1.1, Y: 0.7, Z: 1.6},
		}
	default: // Trainer
		return ClassStats{
			Mass:              1000,
			Inertia:           r3.Vector{X: 1200, Y: 1400, Z: 800},
			MaxEnginePower:    18000,
			WingPower:         5.0,
			RudderPower:       1.6,
			InducedDragFactor: 0.03,
			AngularDrag:       r3.Vector{X: 1.8, Y: 1.8, Z: 1.2},
			SteeringLimits:    r3.Vector{X: 1.0, Y: 0.6, Z: 1.4},
		}
	}
}
