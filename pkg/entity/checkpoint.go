// pkg/entity/checkpoint.go
package entity

import (
	"math/rand"

	"github.com/EngoEngine/ecs"
	"github.com/golang/geo/r3"

	"github.com/opd-ai/go-airrace/pkg/physics"
)

// Checkpoint is one ordered gate on the race course. An aircraft passes
// it by flying its fixed-step movement segment through the gate sphere.
type Checkpoint struct {
	ecs.BasicEntity
	Index int
	Gate  physics.Sphere
}

// NewCheckpoint creates a gate at the given world position.
func NewCheckpoint(index int, center r3.Vector, radius float64) *Checkpoint {
	return &Checkpoint{
		BasicEntity: ecs.NewBasic(),
		Index:       index,
		Gate:        physics.Sphere{Center: center, Radius: radius},
	}
}

// TrackParams control procedural gate placement.
type TrackParams struct {
	Count        int
	Spacing      float64 // forward distance between gates
	Spread       float64 // maximum lateral and vertical offset per gate
	GateRadius   float64
	BaseAltitude float64
	Seed         int64
}

// GenerateTrack places gates along a meandering forward course. The same
// seed always produces the same track, so a race is reproducible from its
// configuration alone.
func GenerateTrack(params TrackParams) []*Checkpoint {
	rng := rand.New(rand.NewSource(params.Seed))

	track := make([]*Checkpoint, 0, params.Count)
	pos := r3.Vector{Y: params.BaseAltitude}
	for i := 0; i < params.Count; i++ {
		pos.Z += params.Spacing
		pos.X += (rng.Float64()*2 - 1) * params.Spread
		pos.Y += (rng.Float64()*2 - 1) * params.Spread
		// Keep gates comfortably above the deck.
		if pos.Y < params.GateRadius*2 {
			pos.Y = params.GateRadius * 2
		}
		track = append(track, NewCheckpoint(i, pos, params.GateRadius))
	}
	return track
}
