// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/opd-ai/go-airrace/pkg/curve"
	"github.com/opd-ai/go-airrace/pkg/entity"
	"github.com/opd-ai/go-airrace/pkg/hud"
)

// GameConfig contains configuration for one race session
type GameConfig struct {
	Flight FlightConfig `json:"flight"`
	Track  TrackConfig  `json:"track"`
	Race   RaceRules    `json:"race"`
	HUD    HUDConfig    `json:"hud"`
}

// FlightConfig carries the externally authored aerodynamic curves shared
// by every aircraft in the session. Angles are in degrees, speeds in m/s.
type FlightConfig struct {
	LiftCurve []curve.Keyframe `json:"liftCurve"`
	DragCurve []curve.Keyframe `json:"dragCurve"`
}

// BuildCurves constructs the sampled curves from the authored keyframes.
func (fc FlightConfig) BuildCurves() (lift, drag curve.Curve, err error) {
	lift, err = curve.NewLinear(fc.LiftCurve)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build lift curve: %w", err)
	}
	drag, err = curve.NewLinear(fc.DragCurve)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build drag curve: %w", err)
	}
	return lift, drag, nil
}

// TrackConfig contains configuration for procedural gate placement
type TrackConfig struct {
	Checkpoints  int     `json:"checkpoints"`
	Spacing      float64 `json:"spacing"`
	Spread       float64 `json:"spread"`
	GateRadius   float64 `json:"gateRadius"`
	BaseAltitude float64 `json:"baseAltitude"`
	Seed         int64   `json:"seed"`
}

// Params converts the track configuration into generation parameters.
func (tc TrackConfig) Params() entity.TrackParams {
	return entity.TrackParams{
		Count:        tc.Checkpoints,
		Spacing:      tc.Spacing,
		Spread:       tc.Spread,
		GateRadius:   tc.GateRadius,
		BaseAltitude: tc.BaseAltitude,
		Seed:         tc.Seed,
	}
}

// RaceRules contains race pacing and scoring configuration
type RaceRules struct {
	FixedTimestep    float64 `json:"fixedTimestep"`    // seconds per physics step
	CountdownSeconds float64 `json:"countdownSeconds"` // time budget per gate
	Gravity          float64 `json:"gravity"`          // m/s^2, applied by the headless engine
	PointsPerGate    int     `json:"pointsPerGate"`
	CompletionBonus  int     `json:"completionBonus"`
}

// HUDConfig contains display hint configuration
type HUDConfig struct {
	SpeedBands []hud.Band `json:"speedBands"`
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default race configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Flight: FlightConfig{
			// Symmetric arcade airfoil with stall falloff past 30 degrees.
			LiftCurve: []curve.Keyframe{
				{X: -90, Y: 0},
				{X: -30, Y: -0.45},
				{X: -20, Y: -0.9},
				{X: 0, Y: 0},
				{X: 20, Y: 0.9},
				{X: 30, Y: 0.45},
				{X: 90, Y: 0},
			},
			DragCurve: []curve.Keyframe{
				{X: 0, Y: 0.025},
				{X: 40, Y: 0.02},
				{X: 120, Y: 0.035},
				{X: 300, Y: 0.08},
			},
		},
		Track: TrackConfig{
			Checkpoints:  12,
			Spacing:      450,
			Spread:       140,
			GateRadius:   35,
			BaseAltitude: 180,
			Seed:         1,
		},
		Race: RaceRules{
			FixedTimestep:    0.02,
			CountdownSeconds: 30,
			Gravity:          9.81,
			PointsPerGate:    100,
			CompletionBonus:  500,
		},
		HUD: HUDConfig{
			SpeedBands: []hud.Band{
				{MinSpeed: 0, Color: "white"},
				{MinSpeed: 40, Color: "green"},
				{MinSpeed: 90, Color: "orange"},
				{MinSpeed: 140, Color: "red"},
			},
		},
	}
}
