//go:build tinygo

package oled

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"
)

// SparkFun Micro OLED panel.
const (
	MicroWidth   = 64
	MicroHeight  = 48
	MicroAddress = 0x3D // Jumper closed, the board default.
)

// NewMicroOLED configures the 64x48 SparkFun Micro OLED on bus. The panel
// sits in the middle of the controller's 128 columns, so the column window
// is moved to 32..95 and the page window to the 6 pages of 48 rows.
func NewMicroOLED(bus drivers.I2C) ssd1306.Device {
	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{
		Width:     MicroWidth,
		Height:    MicroHeight,
		Address:   MicroAddress,
		VccState:  ssd1306.SWITCHCAPVCC,
		ResetCol:  ssd1306.ResetValue{32, 95},
		ResetPage: ssd1306.ResetValue{0, 5},
	})
	return dev
}
