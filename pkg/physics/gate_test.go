// pkg/physics/gate_test.go
package physics

import (
	"testing"

	"github.com/golang/geo/r3"
)

func TestSphere_Contains(t *testing.T) {
	s := Sphere{Center: r3.Vector{X: 10}, Radius: 5}

	tests := []struct {
		name     string
		point    r3.Vector
		expected bool
	}{
		{"center", r3.Vector{X: 10}, true},
		{"inside", r3.Vector{X: 13, Y: 1}, true},
		{"on surface", r3.Vector{X: 15}, true},
		{"outside", r3.Vector{X: 16}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Contains(tt.point); got != tt.expected {
				t.Errorf("Contains(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestSphere_Intersects(t *testing.T) {
	a := Sphere{Center: r3.Vector{}, Radius: 3}
	b := Sphere{Center: r3.Vector{X: 5}, Radius: 3}
	c := Sphere{Center: r3.Vector{X: 10}, Radius: 3}

	if !a.Intersects(b) {
		t.Error("expected overlapping spheres to intersect")
	}
	if a.Intersects(c) {
		t.Error("expected distant spheres not to intersect")
	}
}

func TestSphere_CrossedBy(t *testing.T) {
	gate := Sphere{Center: r3.Vector{Z: 100}, Radius: 10}

	tests := []struct {
		name     string
		from, to r3.Vector
		expected bool
	}{
		{
			name:     "fast pass straight through the gate",
			from:     r3.Vector{Z: 50},
			to:       r3.Vector{Z: 150},
			expected: true,
		},
		{
			name:     "ends inside",
			from:     r3.Vector{Z: 50},
			to:       r3.Vector{Z: 95},
			expected: true,
		},
		{
			name:     "misses wide",
			from:     r3.Vector{X: 50, Z: 50},
			to:       r3.Vector{X: 50, Z: 150},
			expected: false,
		},
		{
			name:     "stationary outside",
			from:     r3.Vector{Z: 50},
			to:       r3.Vector{Z: 50},
			expected: false,
		},
		{
			name:     "stationary inside",
			from:     r3.Vector{Z: 98},
			to:       r3.Vector{Z: 98},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.CrossedBy(tt.from, tt.to); got != tt.expected {
				t.Errorf("CrossedBy(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}
