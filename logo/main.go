// logo shows the compass rose splash image on a SparkFun Micro OLED and
// then idles.
package main

import (
	"machine"
	"time"

	"github.com/harveysanders/picocompass/oled"
)

func main() {
	err := machine.I2C0.Configure(machine.I2CConfig{
		SDA:       machine.GP4,
		SCL:       machine.GP5,
		Frequency: 100 * machine.KHz,
	})
	if err != nil {
		for {
			println("could not configure I2C", err.Error())
			time.Sleep(time.Second)
		}
	}

	display := oled.NewMicroOLED(machine.I2C0)
	display.ClearBuffer()
	display.ClearDisplay()

	w, h := oled.Logo.Size()
	oled.Draw(&display, oled.Logo, oled.CenterX(oled.MicroWidth, w), (oled.MicroHeight-h)/2, oled.On, oled.Off)
	if err := display.Display(); err != nil {
		println("display:", err.Error())
	}

	// Keep main() running
	for {
		time.Sleep(time.Minute)
	}
}
