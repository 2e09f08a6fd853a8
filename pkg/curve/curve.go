// Package curve provides the 1-D authored lookup curves the flight model
// samples for lift and drag coefficients. Curves are piecewise linear over
// a sorted keyframe list and clamp to the first and last keyframe outside
// the authored range; linear interpolation keeps flight feel predictable
// and makes authored values exact at every keyframe.
package curve

import (
	"fmt"
	"sort"
)

// Curve is a continuous scalar function sampled by value.
type Curve interface {
	Sample(x float64) float64
}

// Keyframe is one authored point on a curve.
type Keyframe struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Linear interpolates linearly between sorted keyframes.
type Linear struct {
	frames []Keyframe
}

// NewLinear builds a linear curve from at least one keyframe. Keyframes
// must be strictly increasing in X.
func NewLinear(frames []Keyframe) (*Linear, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("curve requires at least one keyframe")
	}
	for i := 1; i < len(frames); i++ {
		if frames[i].X <= frames[i-1].X {
			return nil, fmt.Errorf("keyframes must be strictly increasing in x: frame %d (x=%g) after x=%g",
				i, frames[i].X, frames[i-1].X)
		}
	}
	copied := make([]Keyframe, len(frames))
	copy(copied, frames)
	return &Linear{frames: copied}, nil
}

// Sample evaluates the curve at x, clamping outside the keyframe range.
func (c *Linear) Sample(x float64) float64 {
	frames := c.frames
	if x <= frames[0].X {
		return frames[0].Y
	}
	last := frames[len(frames)-1]
	if x >= last.X {
		return last.Y
	}

	// First frame with frame.X > x; the segment starts one before it.
	i := sort.Search(len(frames), func(i int) bool { return frames[i].X > x })
	a, b := frames[i-1], frames[i]
	t := (x - a.X) / (b.X - a.X)
	return a.Y + (b.Y-a.Y)*t
}

// Keyframes returns a copy of the authored keyframes.
func (c *Linear) Keyframes() []Keyframe {
	out := make([]Keyframe, len(c.frames))
	copy(out, c.frames)
	return out
}

// Constant is a curve that returns the same value everywhere. Useful for
// tests and for disabling a coefficient without touching the model.
type Constant float64

// Sample returns the constant value regardless of x.
func (c Constant) Sample(float64) float64 { return float64(c) }
