// Package validation checks authored race configuration before it reaches
// the simulation. The flight core itself performs no runtime validation;
// every numeric guarantee it relies on is established here at load time.
package validation

import (
	"fmt"
	"math"

	"github.com/opd-ai/go-airrace/pkg/config"
	"github.com/opd-ai/go-airrace/pkg/curve"
	"github.com/opd-ai/go-airrace/pkg/hud"
)

// ValidateGameConfig checks a race configuration for values the simulation
// cannot run with: non-finite numbers, malformed curves, empty tracks and
// non-positive pacing rules.
func ValidateGameConfig(cfg *config.GameConfig) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateFlight(cfg.Flight); err != nil {
		return fmt.Errorf("flight config: %w", err)
	}
	if err := validateTrack(cfg.Track); err != nil {
		return fmt.Errorf("track config: %w", err)
	}
	if err := validateRace(cfg.Race); err != nil {
		return fmt.Errorf("race rules: %w", err)
	}
	if err := validateHUD(cfg.HUD); err != nil {
		return fmt.Errorf("hud config: %w", err)
	}
	return nil
}

func validateFlight(fc config.FlightConfig) error {
	if err := validateKeyframes("lift", fc.LiftCurve); err != nil {
		return err
	}
	if err := validateKeyframes("drag", fc.DragCurve); err != nil {
		return err
	}
	// NewLinear enforces ordering; run it so load fails before a race starts.
	if _, _, err := fc.BuildCurves(); err != nil {
		return err
	}
	return nil
}

func validateKeyframes(name string, frames []curve.Keyframe) error {
	if len(frames) == 0 {
		return fmt.Errorf("%s curve has no keyframes", name)
	}
	for i, f := range frames {
		if !isFinite(f.X) || !isFinite(f.Y) {
			return fmt.Errorf("%s curve keyframe %d is not finite: (%g, %g)", name, i, f.X, f.Y)
		}
	}
	return nil
}

func validateTrack(tc config.TrackConfig) error {
	if tc.Checkpoints <= 0 {
		return fmt.Errorf("checkpoint count must be positive, got %d", tc.Checkpoints)
	}
	for name, v := range map[string]float64{
		"spacing":      tc.Spacing,
		"gate radius":  tc.GateRadius,
		"baseAltitude": tc.BaseAltitude,
	} {
		if !isFinite(v) || v <= 0 {
			return fmt.Errorf("%s must be positive and finite, got %g", name, v)
		}
	}
	if !isFinite(tc.Spread) || tc.Spread < 0 {
		return fmt.Errorf("spread must be non-negative and finite, got %g", tc.Spread)
	}
	return nil
}

func validateRace(rr config.RaceRules) error {
	if !isFinite(rr.FixedTimestep) || rr.FixedTimestep <= 0 {
		return fmt.Errorf("fixed timestep must be positive and finite, got %g", rr.FixedTimestep)
	}
	if !isFinite(rr.CountdownSeconds) || rr.CountdownSeconds <= 0 {
		return fmt.Errorf("countdown must be positive and finite, got %g", rr.CountdownSeconds)
	}
	if !isFinite(rr.Gravity) || rr.Gravity < 0 {
		return fmt.Errorf("gravity must be non-negative and finite, got %g", rr.Gravity)
	}
	if rr.PointsPerGate < 0 {
		return fmt.Errorf("points per gate must be non-negative, got %d", rr.PointsPerGate)
	}
	if rr.CompletionBonus < 0 {
		return fmt.Errorf("completion bonus must be non-negative, got %d", rr.CompletionBonus)
	}
	return nil
}

func validateHUD(hc config.HUDConfig) error {
	for i, b := range hc.SpeedBands {
		if !isFinite(b.MinSpeed) {
			return fmt.Errorf("speed band %d has non-finite speed", i)
		}
		if b.Color == "" {
			return fmt.Errorf("speed band %d has no color", i)
		}
	}
	// NewPalette enforces ordering and the zero band.
	if _, err := hud.NewPalette(hc.SpeedBands); err != nil {
		return err
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
