package oled

import (
	"image/color"
	"testing"
)

type point struct{ x, y int16 }

type frame struct {
	w, h    int16
	pixels  map[point]color.RGBA
	outside int
}

func newFrame(w, h int16) *frame {
	return &frame{w: w, h: h, pixels: make(map[point]color.RGBA)}
}

func (f *frame) Size() (int16, int16) { return f.w, f.h }

func (f *frame) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		f.outside++
		return
	}
	f.pixels[point{x, y}] = c
}

func (f *frame) Display() error { return nil }

func TestNewImage(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		width   int16
		wantW   int16
		wantH   int16
		wantErr bool
	}{
		{name: "one byte rows", data: []byte{0xFF, 0x00}, width: 8, wantW: 8, wantH: 2},
		{name: "padded rows", data: []byte{0xFF, 0xC0, 0x00, 0x00}, width: 10, wantW: 10, wantH: 2},
		{name: "partial row", data: []byte{0xFF, 0xC0, 0x00}, width: 10, wantErr: true},
		{name: "empty", data: nil, width: 8, wantErr: true},
		{name: "zero width", data: []byte{0xFF}, width: 0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewImage(tt.data, tt.width)
			if err != nil {
				if !tt.wantErr {
					t.Errorf("NewImage() failed: %v", err)
				}
				return
			}
			if tt.wantErr {
				t.Fatal("NewImage() succeeded unexpectedly")
			}
			if w, h := img.Size(); w != tt.wantW || h != tt.wantH {
				t.Errorf("Size() = %d, %d, want %d, %d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestImageAt(t *testing.T) {
	img, err := NewImage([]byte{
		0b1000_0001, 0b0100_0000,
		0b0000_0000, 0b0000_0000,
	}, 10)
	if err != nil {
		t.Fatal(err)
	}
	set := map[point]bool{{0, 0}: true, {7, 0}: true, {9, 0}: true}
	for y := int16(-1); y <= 2; y++ {
		for x := int16(-1); x <= 10; x++ {
			if got := img.At(x, y); got != set[point{x, y}] {
				t.Errorf("At(%d, %d) = %v", x, y, got)
			}
		}
	}
}

func TestDrawClips(t *testing.T) {
	img, _ := NewImage([]byte{0xF0, 0xF0, 0x0F, 0x0F}, 8)
	f := newFrame(6, 3)
	Draw(f, img, -2, 1, On, Off)

	// Columns 2..7 of image rows 0 and 1 land on the frame.
	if f.outside != 0 {
		t.Errorf("%d pixels written outside the frame", f.outside)
	}
	if len(f.pixels) != 6*2 {
		t.Fatalf("drew %d pixels, want 12", len(f.pixels))
	}
	if f.pixels[point{0, 1}] != On || f.pixels[point{1, 1}] != On || f.pixels[point{2, 1}] != Off {
		t.Errorf("row 0 drawn wrong: %v", f.pixels)
	}
	if _, ok := f.pixels[point{0, 0}]; ok {
		t.Error("row above the image was drawn")
	}
}

func TestLogo(t *testing.T) {
	w, h := Logo.Size()
	if w != LogoWidth || h != 32 {
		t.Fatalf("Logo is %dx%d", w, h)
	}
	// Rose center is hollow and the north point is solid.
	if Logo.At(15, 15) || !Logo.At(15, 8) {
		t.Error("logo bitmap does not look like the compass rose")
	}
	f := newFrame(64, 48)
	x := CenterX(64, w)
	Draw(f, Logo, x, 0, On, Off)
	if x != 16 || len(f.pixels) != 32*32 {
		t.Errorf("centered at %d, drew %d pixels", x, len(f.pixels))
	}
}

func TestLabel(t *testing.T) {
	f := newFrame(64, 48)
	Label(f, 0, 10, "NNE", On)
	if len(f.pixels) == 0 {
		t.Error("Label drew nothing")
	}
}
