// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Common event types
const (
	GameStarted      Type = "game_started"
	GameEnded        Type = "game_ended"
	AircraftSpawned  Type = "aircraft_spawned"
	AircraftRemoved  Type = "aircraft_removed"
	CheckpointPassed Type = "checkpoint_passed"
	CountdownExpired Type = "countdown_expired"
	RaceCompleted    Type = "race_completed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// subscription pairs a handler with the ID used to remove it again.
type subscription struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]subscription
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type and returns an
// ID that can later be passed to Unsubscribe.
func (b *Bus) Subscribe(eventType Type, handler Handler) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})
	return id
}

// Unsubscribe removes the handler registered under the given ID.
func (b *Bus) Unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.handlers[eventType]
	if !ok {
		return
	}
	for i, s := range subs {
		if s.id == id {
			b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.GetType()]))
	copy(subs, b.handlers[event.GetType()])
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// CheckpointEvent reports an aircraft passing an ordered gate.
type CheckpointEvent struct {
	BaseEvent
	AircraftID uint64
	Checkpoint int
	Elapsed    float64 // seconds since race start
}

// NewCheckpointEvent creates a new checkpoint event
func NewCheckpointEvent(source interface{}, aircraftID uint64, checkpoint int, elapsed float64) *CheckpointEvent {
	return &CheckpointEvent{
		BaseEvent: BaseEvent{
			EventType: CheckpointPassed,
			Source:    source,
		},
		AircraftID: aircraftID,
		Checkpoint: checkpoint,
		Elapsed:    elapsed,
	}
}

// RaceEvent reports a race-level state change: completion, countdown
// expiry, or game end.
type RaceEvent struct {
	BaseEvent
	AircraftID  uint64
	GatesPassed int
	Score       int
	Elapsed     float64
}

// NewRaceEvent creates a new race event
func NewRaceEvent(eventType Type, source interface{}, aircraftID uint64, gatesPassed, score int, elapsed float64) *RaceEvent {
	return &RaceEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		AircraftID:  aircraftID,
		GatesPassed: gatesPassed,
		Score:       score,
		Elapsed:     elapsed,
	}
}

// AircraftEvent reports an aircraft joining or leaving the simulation.
type AircraftEvent struct {
	BaseEvent
	AircraftID uint64
	Name       string
}

// NewAircraftEvent creates a new aircraft event
func NewAircraftEvent(eventType Type, source interface{}, aircraftID uint64, name string) *AircraftEvent {
	return &AircraftEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		AircraftID: aircraftID,
		Name:       name,
	}
}
