package layer

import (
	"maps"
	"slices"
)

// Color is an RGB colour with components in [0, 1].
type Color struct {
	R, G, B float64
}

// Render colours. Black is the foreground, White the background.
var (
	Black = Color{}
	White = Color{R: 1, G: 1, B: 1}
)

// Gray returns the luminance of c.
func (c Color) Gray() float64 {
	if c.R == c.G && c.G == c.B {
		return c.R
	}
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Mode selects whether shapes of a layer are filled or only outlined.
type Mode int

const (
	ModeOutline Mode = iota
	ModeFill
)

// String returns the backend name of the mode.
func (m Mode) String() string {
	if m == ModeFill {
		return "fill"
	}
	return "outline"
}

// LayerSettings controls how a single layer is exported.
type LayerSettings struct {
	Color   Color
	Enabled bool
	Mode    Mode
}

// Settings is the complete export configuration for one render.
// A new value is built for every render; the Layers map is never shared
// between two Settings values created by this package.
type Settings struct {
	Layers map[int]LayerSettings

	// MinLineWidth is the minimum stroke width for outlines, in points.
	MinLineWidth float64

	// HolesDiameter replaces the diameter of every drill hole when
	// SetHolesSize is true, in points.
	HolesDiameter float64
	SetHolesSize  bool

	// Mirror flips the render horizontally.
	Mirror bool
}

// defaultSettings returns settings with every catalog layer disabled,
// outlined and in the background colour.
func defaultSettings(c *Catalog) Settings {
	s := Settings{Layers: make(map[int]LayerSettings, c.Len())}
	for _, l := range c.layers {
		s.Layers[l.Index] = LayerSettings{Color: White, Mode: ModeOutline}
	}
	return s
}

// Enabled returns the indices of all enabled layers in ascending order.
func (s Settings) Enabled() []int {
	var out []int
	for _, idx := range slices.Sorted(maps.Keys(s.Layers)) {
		if s.Layers[idx].Enabled {
			out = append(out, idx)
		}
	}
	return out
}

// Layer returns the settings of the layer with the given index.
func (s Settings) Layer(index int) (LayerSettings, bool) {
	ls, ok := s.Layers[index]
	return ls, ok
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	s.Layers = maps.Clone(s.Layers)
	return s
}
