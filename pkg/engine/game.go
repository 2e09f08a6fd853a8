// Package engine runs the headless race: a fixed-timestep simulation loop
// over an ECS world whose systems step the flight dynamics and track race
// progress. The engine stands in for a host game engine; it owns pacing,
// events and scoring, while all aerodynamics live in pkg/flight.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/golang/geo/r3"

	"github.com/opd-ai/go-airrace/pkg/config"
	"github.com/opd-ai/go-airrace/pkg/curve"
	"github.com/opd-ai/go-airrace/pkg/entity"
	"github.com/opd-ai/go-airrace/pkg/event"
	"github.com/opd-ai/go-airrace/pkg/hud"
	"github.com/opd-ai/go-airrace/pkg/logging"
	"github.com/opd-ai/go-airrace/pkg/validation"
)

// GameStatus describes the lifecycle of a race session.
type GameStatus int

const (
	GameStatusWaiting GameStatus = iota
	GameStatusActive
	GameStatusFinished
)

// Game is one race session: a generated track, the aircraft flying it,
// and the fixed-timestep world advancing them.
type Game struct {
	Config   *config.GameConfig
	EventBus *event.Bus
	Status   GameStatus

	Track    []*entity.Checkpoint
	Aircraft map[uint64]*entity.Aircraft

	StartTime   time.Time
	ElapsedTime float64

	// EntityLock guards aircraft and race state across Update and the
	// variable-rate input phase when the host runs them on separate
	// goroutines.
	EntityLock sync.RWMutex

	world        *ecs.World
	flightSystem *flightSystem
	raceSystem   *raceSystem
	liftCurve    curve.Curve
	dragCurve    curve.Curve
	palette      *hud.Palette
	logger       *logging.Logger
	maxAircraft  int
	accumulator  float64
}

// NewGame creates a race session from a validated configuration. Session
// limits come from the environment configuration, falling back to defaults
// when the environment is not set.
func NewGame(cfg *config.GameConfig) (*Game, error) {
	if err := validation.ValidateGameConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	lift, drag, err := cfg.Flight.BuildCurves()
	if err != nil {
		return nil, fmt.Errorf("failed to build flight curves: %w", err)
	}
	palette, err := hud.NewPalette(cfg.HUD.SpeedBands)
	if err != nil {
		return nil, fmt.Errorf("failed to build speed palette: %w", err)
	}

	logger := logging.NewLogger()
	envCfg, err := config.LoadConfigFromEnv()
	if err != nil {
		logger.Warn(context.Background(), "invalid environment config, using defaults",
			"error", err.Error(),
		)
		envCfg = &config.EnvironmentConfig{MaxAircraft: 8}
	}

	g := &Game{
		Config:      cfg,
		EventBus:    event.NewEventBus(),
		Status:      GameStatusWaiting,
		Track:       entity.GenerateTrack(cfg.Track.Params()),
		Aircraft:    make(map[uint64]*entity.Aircraft),
		liftCurve:   lift,
		dragCurve:   drag,
		palette:     palette,
		logger:      logger,
		maxAircraft: envCfg.MaxAircraft,
	}

	g.world = &ecs.World{}
	g.flightSystem = &flightSystem{game: g}
	g.raceSystem = &raceSystem{game: g, countdowns: make(map[uint64]float64)}
	// Flight runs before race progress so gate checks see this step's motion.
	g.world.AddSystem(g.flightSystem)
	g.world.AddSystem(g.raceSystem)

	return g, nil
}

// SpawnAircraft admits an aircraft into the session, placed on the start
// line at the track's base altitude, at rest.
func (g *Game) SpawnAircraft(name string, class entity.AircraftClass) (*entity.Aircraft, error) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	if len(g.Aircraft) >= g.maxAircraft {
		return nil, fmt.Errorf("session full: %d aircraft already spawned", len(g.Aircraft))
	}

	a := entity.NewAircraft(name, class, g.liftCurve, g.dragCurve)
	start := r3.Vector{Y: g.Config.Track.BaseAltitude}
	a.Body.SetPosition(start)
	a.PrevPosition = start

	g.Aircraft[a.ID()] = a
	g.flightSystem.add(a)
	g.raceSystem.add(a)

	g.EventBus.Publish(event.NewAircraftEvent(event.AircraftSpawned, g, a.ID(), a.Name))
	g.logger.Info(context.Background(), "aircraft spawned",
		"aircraft_id", a.ID(),
		"name", a.Name,
	)
	return a, nil
}

// RemoveAircraft drops an aircraft from the session.
func (g *Game) RemoveAircraft(id uint64) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	a, ok := g.Aircraft[id]
	if !ok {
		return
	}
	delete(g.Aircraft, id)
	g.world.RemoveEntity(a.BasicEntity)
	g.EventBus.Publish(event.NewAircraftEvent(event.AircraftRemoved, g, id, a.Name))
}

// Start begins the race.
func (g *Game) Start() {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	g.Status = GameStatusActive
	g.StartTime = time.Now()
	g.ElapsedTime = 0
	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameStarted,
		Source:    g,
	})
}

// Stop halts the race immediately.
func (g *Game) Stop() {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()
	g.endRace()
}

// Update advances the race by deltaTime seconds of wall-clock time,
// running as many fixed physics steps as fit. Control input (throttle,
// torques, flap) belongs to the variable-rate phase: call it on the
// aircraft models between Update calls, never during one.
func (g *Game) Update(deltaTime float64) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	if g.Status != GameStatusActive {
		return
	}

	g.accumulator += deltaTime
	step := g.Config.Race.FixedTimestep
	for g.accumulator >= step {
		g.ElapsedTime += step
		g.world.Update(float32(step))
		g.accumulator -= step
		if g.Status != GameStatusActive {
			return
		}
	}
}

// SpeedColor returns the HUD color band for an aircraft's current speed.
func (g *Game) SpeedColor(a *entity.Aircraft) string {
	return g.palette.ColorFor(a.Body.Velocity().Norm())
}

// checkRaceOver ends the session once every aircraft has finished, one
// way or the other. Callers hold EntityLock.
func (g *Game) checkRaceOver() {
	if len(g.Aircraft) == 0 {
		return
	}
	for _, a := range g.Aircraft {
		if !a.Finished {
			return
		}
	}
	g.endRace()
}

func (g *Game) endRace() {
	if g.Status == GameStatusFinished {
		return
	}
	g.Status = GameStatusFinished
	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameEnded,
		Source:    g,
	})
	g.logger.Info(context.Background(), "race ended",
		"elapsed", g.ElapsedTime,
		"aircraft", len(g.Aircraft),
	)
}
