// Package gauge computes the needle of a dial gauge for small pixel displays.
//
// The dial convention follows the SSD1306 examples: an angle of 0 points the
// needle straight up from the center and angles grow clockwise.
package gauge

import (
	"errors"
	"math"

	"github.com/harveysanders/picocompass/heading"
)

var (
	ErrNotFinite    = errors.New("gauge: geometry has a NaN or infinite value")
	ErrNeedleLength = errors.New("gauge: needle length must be at least one pixel")
	ErrNeedleWidth  = errors.New("gauge: needle half width must be at least one pixel")
	ErrHubRadius    = errors.New("gauge: hub radius must not be negative")
	ErrOutOfRange   = errors.New("gauge: needle reaches outside the int16 pixel range")
)

// Vec is a point in display coordinates, y growing downward.
type Vec struct {
	X, Y float64
}

// Point is a whole pixel position.
type Point struct {
	X, Y int16
}

// Geometry is the fixed shape of a gauge. It is set once at startup and
// checked with Validate.
type Geometry struct {
	Center Vec
	// Length from the center to the needle tip.
	Length float64
	// HalfWidth is the distance from the center to either base corner.
	HalfWidth float64
	// HubRadius of the ring drawn over the center. Zero draws no ring.
	HubRadius float64
}

// Validate reports whether g yields a proper triangle for every angle.
// Lengths and widths under a pixel are rejected since rounding can pull the
// tip onto the center or collapse the base. Every corner must also fit in an
// int16 pixel coordinate.
func (g Geometry) Validate() error {
	for _, v := range [...]float64{g.Center.X, g.Center.Y, g.Length, g.HalfWidth, g.HubRadius} {
		if !heading.Valid(v) {
			return ErrNotFinite
		}
	}
	switch {
	case g.Length < 1:
		return ErrNeedleLength
	case g.HalfWidth < 1:
		return ErrNeedleWidth
	case g.HubRadius < 0:
		return ErrHubRadius
	}
	reach := math.Ceil(max(g.Length, g.HalfWidth))
	for _, c := range [...]float64{g.Center.X, g.Center.Y} {
		c = math.Round(c)
		if c-reach < math.MinInt16 || c+reach > math.MaxInt16 {
			return ErrOutOfRange
		}
	}
	return nil
}

// Points is the triangle of a needle.
type Points struct {
	Tip, Left, Right Point
}

// Needle returns the needle triangle for angle. g must be valid.
// The center is snapped to a pixel first so both base corners round the
// same way.
func Needle(angle float64, g Geometry) Points {
	c := Vec{X: math.Round(g.Center.X), Y: math.Round(g.Center.Y)}
	return Points{
		Tip:   project(c, g.Length, angle+180),
		Left:  project(c, g.HalfWidth, angle+90),
		Right: project(c, g.HalfWidth, angle-90),
	}
}

// project moves r pixels away from c along angle and rounds to a pixel.
// Angle 0 points down and angles turn clockwise on screen.
func project(c Vec, r, angle float64) Point {
	s, co := math.Sincos(heading.Normalize(angle) * math.Pi / 180)
	return Point{
		X: int16(math.Round(c.X - r*s)),
		Y: int16(math.Round(c.Y + r*co)),
	}
}

// Collinear reports whether the three points lie on one line, in which case
// there is no triangle to fill.
func (p Points) Collinear() bool {
	ax, ay := int32(p.Left.X)-int32(p.Tip.X), int32(p.Left.Y)-int32(p.Tip.Y)
	bx, by := int32(p.Right.X)-int32(p.Tip.X), int32(p.Right.Y)-int32(p.Tip.Y)
	return ax*by-ay*bx == 0
}

// Sweep turns a frame counter into a needle angle, advancing Step degrees per
// frame.
type Sweep struct {
	Step float64
}

// Angle returns the needle angle for frame.
func (s Sweep) Angle(frame int) float64 {
	return heading.Normalize(float64(frame) * s.Step)
}
