package gauge

import (
	"image/color"
	"math"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
)

// Draw rasterizes the needle p and the hub ring of g into d. It does not
// flush; call d.Display when the frame is complete.
func Draw(d drivers.Displayer, p Points, g Geometry, c color.RGBA) {
	tinydraw.FilledTriangle(d, p.Tip.X, p.Tip.Y, p.Left.X, p.Left.Y, p.Right.X, p.Right.Y, c)
	if r := int16(math.Round(g.HubRadius)); r > 0 {
		tinydraw.Circle(d, int16(math.Round(g.Center.X)), int16(math.Round(g.Center.Y)), r, c)
	}
}
