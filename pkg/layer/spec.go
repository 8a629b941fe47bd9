package layer

import (
	"fmt"
	"strings"
)

// Spec names a layer and the way it should be rendered.
// Lengths are in points.
type Spec struct {
	Name string

	// Invert draws the layer in the background colour, cutting it out of
	// whatever was drawn before.
	Invert bool

	// Mirror flips the layer horizontally, for content seen from the
	// other side of the board.
	Mirror bool

	// Outline strokes shape boundaries instead of filling them.
	Outline bool

	// BorderWidth is the minimum stroke width for outline renders.
	BorderWidth float64

	// HoleDiameter forces every drill hole to this diameter. Only the
	// holes layer uses it; zero keeps the true hole sizes.
	HoleDiameter float64
}

// String returns the layer name followed by the enabled flags,
// e.g. "TOP_COPPER[invert,mirror]".
func (s Spec) String() string {
	var flags []string
	if s.Invert {
		flags = append(flags, "invert")
	}
	if s.Mirror {
		flags = append(flags, "mirror")
	}
	if s.Outline {
		flags = append(flags, "outline")
	}
	if s.BorderWidth > 0 {
		flags = append(flags, fmt.Sprintf("border=%.3gpt", s.BorderWidth))
	}
	if s.HoleDiameter > 0 {
		flags = append(flags, fmt.Sprintf("hole=%.3gpt", s.HoleDiameter))
	}
	if len(flags) == 0 {
		return s.Name
	}
	return s.Name + "[" + strings.Join(flags, ",") + "]"
}
