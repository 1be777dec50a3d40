package oled

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is the font of Label, small enough for the Micro OLED.
var Font = &proggy.TinySZ8pt7b

// Label writes text with its baseline at y.
func Label(d drivers.Displayer, x, y int16, text string, c color.RGBA) {
	tinyfont.WriteLine(d, Font, x, y, text, c)
}
