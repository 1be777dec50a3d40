package oled

// LogoWidth is the width of Logo in pixels.
const LogoWidth = 32

// logoData is a 32x32 compass rose.
var logoData = []byte{
	0x00, 0x03, 0xC0, 0x00,
	0x00, 0x3F, 0xFC, 0x00,
	0x00, 0xF0, 0x0F, 0x00,
	0x01, 0xC1, 0x83, 0x80,
	0x07, 0x01, 0x80, 0xE0,
	0x0E, 0x01, 0x80, 0x70,
	0x0C, 0x01, 0x80, 0x30,
	0x18, 0x03, 0xC0, 0x18,
	0x30, 0x03, 0xC0, 0x0C,
	0x30, 0x03, 0xC0, 0x0C,
	0x60, 0x23, 0xC4, 0x06,
	0x60, 0x1F, 0xF8, 0x06,
	0x40, 0x1F, 0xF8, 0x02,
	0x40, 0x1F, 0xF8, 0x02,
	0xC1, 0xFC, 0x3F, 0x83,
	0xDF, 0xFC, 0x3F, 0xFB,
	0xDF, 0xFC, 0x3F, 0xFB,
	0xC1, 0xFC, 0x3F, 0x83,
	0x40, 0x1F, 0xF8, 0x02,
	0x40, 0x1F, 0xF8, 0x02,
	0x60, 0x1F, 0xF8, 0x06,
	0x60, 0x23, 0xC4, 0x06,
	0x30, 0x03, 0xC0, 0x0C,
	0x30, 0x03, 0xC0, 0x0C,
	0x18, 0x03, 0xC0, 0x18,
	0x0C, 0x01, 0x80, 0x30,
	0x0E, 0x01, 0x80, 0x70,
	0x07, 0x01, 0x80, 0xE0,
	0x01, 0xC1, 0x83, 0x80,
	0x00, 0xF0, 0x0F, 0x00,
	0x00, 0x3F, 0xFC, 0x00,
	0x00, 0x03, 0xC0, 0x00,
}

// Logo is the splash image of the logo example.
var Logo = mustImage(logoData, LogoWidth)

func mustImage(data []byte, width int16) Image {
	img, err := NewImage(data, width)
	if err != nil {
		panic(err.Error())
	}
	return img
}
