// Package hud maps simulation telemetry to display hints. It performs no
// rendering; the host engine draws whatever colors and values it is handed.
package hud

import (
	"fmt"
	"sort"
)

// Band maps a minimum speed to a display color.
type Band struct {
	MinSpeed float64 `json:"minSpeed"`
	Color    string  `json:"color"`
}

// Palette resolves an airspeed to the color of the highest band it reaches.
type Palette struct {
	bands []Band
}

// NewPalette builds a palette from at least one band. Bands must be
// strictly increasing in MinSpeed and the first band must start at zero
// so every speed resolves to a color.
func NewPalette(bands []Band) (*Palette, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("palette requires at least one band")
	}
	if bands[0].MinSpeed != 0 {
		return nil, fmt.Errorf("first band must start at speed 0, got %g", bands[0].MinSpeed)
	}
	if !sort.SliceIsSorted(bands, func(i, j int) bool { return bands[i].MinSpeed < bands[j].MinSpeed }) {
		return nil, fmt.Errorf("bands must be sorted by ascending minSpeed")
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].MinSpeed == bands[i-1].MinSpeed {
			return nil, fmt.Errorf("duplicate band at speed %g", bands[i].MinSpeed)
		}
	}
	copied := make([]Band, len(bands))
	copy(copied, bands)
	return &Palette{bands: copied}, nil
}

// ColorFor returns the color of the fastest band at or below speed.
// Negative speeds resolve to the first band.
func (p *Palette) ColorFor(speed float64) string {
	color := p.bands[0].Color
	for _, b := range p.bands {
		if speed < b.MinSpeed {
			break
		}
		color = b.Color
	}
	return color
}
