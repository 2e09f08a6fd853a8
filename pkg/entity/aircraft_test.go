// pkg/entity/aircraft_test.go
package entity

import (
	"testing"

	"github.com/opd-ai/go-airrace/pkg/curve"
)

func TestNewAircraft_InitialState(t *testing.T) {
	a := NewAircraft("stunt-1", Stunt, curve.Constant(0), curve.Constant(0))

	if a.Name != "stunt-1" {
		t.Errorf("Name = %q, want %q", a.Name, "stunt-1")
	}
	if a.Class != Stunt {
		t.Errorf("Class = %v, want %v", a.Class, Stunt)
	}
	if a.Body == nil || a.Model == nil {
		t.Fatal("aircraft missing body or model")
	}
	if v := a.Body.Velocity(); v.Norm() != 0 {
		t.Errorf("new aircraft has nonzero velocity %v", v)
	}
	if a.Model.Throttle() != 0 {
		t.Errorf("new aircraft throttle = %v, want 0", a.Model.Throttle())
	}
	if a.NextGate != 0 || a.GatesPassed != 0 || a.Finished {
		t.Errorf("race progress not zeroed: %+v", a)
	}
}

func TestNewAircraft_UniqueIDs(t *testing.T) {
	a := NewAircraft("a", Trainer, curve.Constant(0), curve.Constant(0))
	b := NewAircraft("b", Trainer, curve.Constant(0), curve.Constant(0))

	if a.ID() == b.ID() {
		t.Errorf("two aircraft share entity ID %d", a.ID())
	}
}

func TestGetClassStats_Distinct(t *testing.T) {
	tests := []struct {
		name  string
		class AircraftClass
	}{
		{"trainer", Trainer},
		{"stunt", Stunt},
		{"racer", Racer},
	}

	seen := make(map[float64]string)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := getClassStats(tt.class)
			if stats.Mass <= 0 {
				t.Errorf("class %v mass = %v, want > 0", tt.class, stats.Mass)
			}
			if stats.MaxEnginePower <= 0 {
				t.Errorf("class %v engine power = %v, want > 0", tt.class, stats.MaxEnginePower)
			}
			if stats.SteeringLimits.X <= 0 || stats.SteeringLimits.Y <= 0 || stats.SteeringLimits.Z <= 0 {
				t.Errorf("class %v has a non-positive steering limit: %v", tt.class, stats.SteeringLimits)
			}
			if prev, dup := seen[stats.MaxEnginePower]; dup {
				t.Errorf("classes %s and %s share engine power %v", prev, tt.name, stats.MaxEnginePower)
			}
			seen[stats.MaxEnginePower] = tt.name
		})
	}
}
