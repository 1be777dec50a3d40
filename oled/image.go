// Package oled holds the drawing helpers of the SSD1306 examples: 1-bit
// images, text labels and the SparkFun Micro OLED setup.
package oled

import (
	"errors"
	"image/color"

	"tinygo.org/x/drivers"
)

var (
	On  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Off = color.RGBA{A: 255}
)

// Image is a 1-bit bitmap stored row by row, most significant bit first,
// each row padded to a whole byte.
type Image struct {
	width, height int16
	stride        int
	data          []byte
}

// NewImage wraps raw bitmap data width pixels wide. The height follows from
// the length of data.
func NewImage(data []byte, width int16) (Image, error) {
	if width <= 0 {
		return Image{}, errors.New("oled: image width must be positive")
	}
	stride := (int(width) + 7) / 8
	if len(data) == 0 || len(data)%stride != 0 {
		return Image{}, errors.New("oled: image data is not a whole number of rows")
	}
	return Image{
		width:  width,
		height: int16(len(data) / stride),
		stride: stride,
		data:   data,
	}, nil
}

// Size returns the image dimensions in pixels.
func (img Image) Size() (w, h int16) { return img.width, img.height }

// At reports whether the pixel at x, y is set.
func (img Image) At(x, y int16) bool {
	if x < 0 || y < 0 || x >= img.width || y >= img.height {
		return false
	}
	b := img.data[int(y)*img.stride+int(x)/8]
	return b&(0x80>>(x%8)) != 0
}

// Draw copies img onto d with its top left corner at x, y, painting set
// pixels on and clear pixels off. Pixels falling outside d are skipped.
func Draw(d drivers.Displayer, img Image, x, y int16, on, off color.RGBA) {
	dw, dh := d.Size()
	for iy := int16(0); iy < img.height; iy++ {
		py := y + iy
		if py < 0 || py >= dh {
			continue
		}
		for ix := int16(0); ix < img.width; ix++ {
			px := x + ix
			if px < 0 || px >= dw {
				continue
			}
			c := off
			if img.At(ix, iy) {
				c = on
			}
			d.SetPixel(px, py, c)
		}
	}
}

// CenterX returns the x offset that centers something w wide on a display
// displayWidth wide.
func CenterX(displayWidth, w int16) int16 {
	return displayWidth/2 - w/2
}
