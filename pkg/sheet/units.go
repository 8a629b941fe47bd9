package sheet

import "seehuhn.de/go/geom/rect"

// PointsPerMM is the number of PDF points in one millimetre.
const PointsPerMM = 72 / 25.4

// FromMM converts millimetres to points.
func FromMM(mm float64) float64 { return mm * PointsPerMM }

// ToMM converts points to millimetres.
func ToMM(pt float64) float64 { return pt / PointsPerMM }

// A4 is the ISO A4 paper size (210×297 mm) in points.
var A4 = rect.Rect{URx: FromMM(210), URy: FromMM(297)}

// Gray levels used by board renders.
const (
	Black = 0.0
	White = 1.0
)
