// Package input provides a scripted control driver for headless runs and
// tests. It stands in for a real input-device layer: each variable-rate
// frame it calls the same public control operations a player-facing
// binding layer would, and nothing else.
package input

import (
	"sort"

	"github.com/opd-ai/go-airrace/pkg/flight"
)

// Segment describes control input held over a half-open interval
// [Start, End) of race time, in seconds. ThrottleDelta is applied once per
// frame while the segment is active; the torque fields are re-applied every
// frame like a held stick.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`

	ThrottleDelta float64 `json:"throttleDelta"`
	Roll          float64 `json:"roll"`
	Pitch         float64 `json:"pitch"`
	Yaw           float64 `json:"yaw"`
	FlapRad       float64 `json:"flapRad"`
	SetFlap       bool    `json:"setFlap"`
}

// Script replays timed control segments against a flight model.
type Script struct {
	segments []Segment
}

// NewScript builds a script from the given segments, sorted by start time.
func NewScript(segments []Segment) *Script {
	copied := make([]Segment, len(segments))
	copy(copied, segments)
	sort.SliceStable(copied, func(i, j int) bool { return copied[i].Start < copied[j].Start })
	return &Script{segments: copied}
}

// Apply drives the model with every segment active at the given race time.
// Call it once per variable-rate frame, before the next fixed physics step.
func (s *Script) Apply(m *flight.Model, elapsed float64) {
	for _, seg := range s.segments {
		if elapsed < seg.Start || elapsed >= seg.End {
			continue
		}
		if seg.ThrottleDelta != 0 {
			m.AddThrottle(seg.ThrottleDelta)
		}
		if seg.Roll != 0 {
			m.ApplyRollTorque(seg.Roll)
		}
		if seg.Pitch != 0 {
			m.ApplyPitchTorque(seg.Pitch)
		}
		if seg.Yaw != 0 {
			m.ApplyYawTorque(seg.Yaw)
		}
		if seg.SetFlap {
			m.SetFlapRad(seg.FlapRad)
		}
	}
}

// Done reports whether every segment has ended by the given race time.
func (s *Script) Done(elapsed float64) bool {
	for _, seg := range s.segments {
		if elapsed < seg.End {
			return false
		}
	}
	return true
}
