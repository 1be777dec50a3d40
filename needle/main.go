// needle animates a dial gauge on a SparkFun Micro OLED: the needle sweeps
// one step per frame and the compass point it shows is printed in the
// corner.
package main

import (
	"log/slog"
	"machine"
	"strconv"
	"time"

	"github.com/harveysanders/picocompass/gauge"
	"github.com/harveysanders/picocompass/heading"
	"github.com/harveysanders/picocompass/oled"
)

const frameRate = 6 // Hz

var dial = gauge.Geometry{
	Center:    gauge.Vec{X: oled.MicroWidth / 2, Y: oled.MicroHeight * 0.75},
	Length:    20,
	HalfWidth: 3,
	HubRadius: 4,
}

func main() {
	logger := slog.New(slog.NewTextHandler(machine.Serial, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	if err := dial.Validate(); err != nil {
		printErrForever(logger, "dial geometry", slog.Any("reason", err))
	}

	err := machine.I2C0.Configure(machine.I2CConfig{
		SDA:       machine.GP4,
		SCL:       machine.GP5,
		Frequency: 400 * machine.KHz,
	})
	if err != nil {
		printErrForever(logger, "configure I2C", slog.Any("reason", err))
	}
	display := oled.NewMicroOLED(machine.I2C0)
	display.ClearDisplay()

	sweep := gauge.Sweep{Step: heading.SectorWidth / 2}
	// Reused every frame so the heap isn't exhausted by string building.
	label := make([]byte, 0, 12)
	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()
	for frame := 0; ; frame++ {
		angle := sweep.Angle(frame)

		display.ClearBuffer()
		gauge.Draw(&display, gauge.Needle(angle, dial), dial, oled.On)

		label = label[:0]
		label = append(label, heading.Classify(angle).String()...)
		label = append(label, ' ')
		label = strconv.AppendInt(label, int64(angle), 10)
		oled.Label(&display, 0, 8, string(label), oled.On)

		if err := display.Display(); err != nil {
			logger.Error("display", slog.String("err", err.Error()))
		}
		<-ticker.C
	}
}

// printErrForever logs msg @ 1hz. It blocks forever.
func printErrForever(logger *slog.Logger, msg string, args ...any) {
	for {
		logger.Error(msg, args...)
		time.Sleep(time.Second)
	}
}
