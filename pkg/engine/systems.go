// pkg/engine/systems.go
package engine

import (
	"github.com/EngoEngine/ecs"
	"github.com/golang/geo/r3"

	"github.com/opd-ai/go-airrace/pkg/entity"
	"github.com/opd-ai/go-airrace/pkg/event"
	"github.com/opd-ai/go-airrace/pkg/physics"
)

// flightSystem advances every aircraft by one fixed step: gravity, the
// flight model's aerodynamic forces, then the rigid-body integration.
type flightSystem struct {
	game     *Game
	aircraft []*entity.Aircraft
}

func (s *flightSystem) add(a *entity.Aircraft) {
	s.aircraft = append(s.aircraft, a)
}

// Update implements ecs.System.
func (s *flightSystem) Update(dt float32) {
	step := float64(dt)
	gravity := s.game.Config.Race.Gravity
	for _, a := range s.aircraft {
		a.PrevPosition = a.Body.Position()
		if gravity != 0 {
			a.Body.AddForce(r3.Vector{Y: -gravity * a.Body.Mass()}, physics.ForceModeForce)
		}
		a.Model.Step()
		a.Body.Step(step)
	}
}

// Remove implements ecs.System.
func (s *flightSystem) Remove(basic ecs.BasicEntity) {
	for i, a := range s.aircraft {
		if a.ID() == basic.ID() {
			s.aircraft = append(s.aircraft[:i], s.aircraft[i+1:]...)
			break
		}
	}
}

// raceSystem sequences checkpoints, enforces the per-gate countdown and
// keeps score. It runs after the flight system so each gate check sees the
// movement segment of the step that just happened.
type raceSystem struct {
	game       *Game
	aircraft   []*entity.Aircraft
	countdowns map[uint64]float64 // remaining seconds to reach the next gate
}

func (s *raceSystem) add(a *entity.Aircraft) {
	s.aircraft = append(s.aircraft, a)
	s.countdowns[a.ID()] = s.game.Config.Race.CountdownSeconds
}

// Update implements ecs.System.
func (s *raceSystem) Update(dt float32) {
	step := float64(dt)
	for _, a := range s.aircraft {
		if a.Finished {
			continue
		}
		s.advanceGates(a)
		if a.Finished {
			continue
		}
		s.countdowns[a.ID()] -= step
		if s.countdowns[a.ID()] <= 0 {
			s.timeOut(a)
		}
	}
	s.game.checkRaceOver()
}

// advanceGates credits every gate the aircraft's last movement segment
// passed through, in order.
func (s *raceSystem) advanceGates(a *entity.Aircraft) {
	rules := s.game.Config.Race
	for a.NextGate < len(s.game.Track) {
		gate := s.game.Track[a.NextGate]
		if !gate.Gate.CrossedBy(a.PrevPosition, a.Body.Position()) {
			return
		}
		a.GatesPassed++
		a.NextGate++
		a.Score += rules.PointsPerGate
		s.countdowns[a.ID()] = rules.CountdownSeconds
		s.game.EventBus.Publish(event.NewCheckpointEvent(s.game, a.ID(), gate.Index, s.game.ElapsedTime))

		if a.NextGate == len(s.game.Track) {
			a.Finished = true
			a.Score += rules.CompletionBonus
			s.game.EventBus.Publish(event.NewRaceEvent(
				event.RaceCompleted, s.game, a.ID(), a.GatesPassed, a.Score, s.game.ElapsedTime))
			return
		}
	}
}

// timeOut marks an aircraft that failed to reach its next gate in time.
func (s *raceSystem) timeOut(a *entity.Aircraft) {
	a.Finished = true
	s.game.EventBus.Publish(event.NewRaceEvent(
		event.CountdownExpired, s.game, a.ID(), a.GatesPassed, a.Score, s.game.ElapsedTime))
}

// Remove implements ecs.System.
func (s *raceSystem) Remove(basic ecs.BasicEntity) {
	for i, a := range s.aircraft {
		if a.ID() == basic.ID() {
			s.aircraft = append(s.aircraft[:i], s.aircraft[i+1:]...)
			break
		}
	}
	delete(s.countdowns, basic.ID())
}
