// pixelcompass is ledcompass on an 8 pixel WS2812B ring, driven through a
// PIO state machine.
package main

import (
	"image/color"
	"log/slog"
	"machine"
	"strconv"
	"time"

	"github.com/harveysanders/picocompass/compass"
	"github.com/harveysanders/picocompass/indicator"
	pio "github.com/tinygo-org/pio/rp2-pio"
	"github.com/tinygo-org/pio/rp2-pio/piolib"
	"tinygo.org/x/drivers/lsm303agr"
)

// Set with -ldflags "-X main.ringPin=16 -X main.northPixel=0".
var (
	ringPin    = "16"
	northPixel = "0"
)

const lightIntensity = 32

func main() {
	logger := slog.New(slog.NewTextHandler(machine.Serial, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	pinNum, err := strconv.Atoi(ringPin)
	if err != nil {
		logger.Warn("invalid ring pin, using GP16", slog.String("pin", ringPin))
		pinNum = 16
	}
	north, err := strconv.Atoi(northPixel)
	if err != nil {
		logger.Warn("invalid north pixel, using 0", slog.String("pixel", northPixel))
		north = 0
	}

	sm, err := pio.PIO0.ClaimStateMachine()
	if err != nil {
		printErrForever(logger, "claim PIO state machine", slog.Any("reason", err))
	}
	ws, err := piolib.NewWS2812B(sm, machine.Pin(pinNum))
	if err != nil {
		printErrForever(logger, "configure WS2812B", slog.Any("reason", err))
	}
	ring := indicator.NewRing(indicator.NewPixels(ws, color.RGBA{R: lightIntensity}, north))
	ring.Clear()

	err = machine.I2C0.Configure(machine.I2CConfig{
		SDA:       machine.GP4,
		SCL:       machine.GP5,
		Frequency: 400 * machine.KHz,
	})
	if err != nil {
		printErrForever(logger, "configure I2C", slog.Any("reason", err))
	}
	sensor := lsm303agr.New(machine.I2C0)
	if err := sensor.Configure(lsm303agr.Configuration{}); err != nil {
		printErrForever(logger, "configure LSM303AGR", slog.Any("reason", err))
	}

	loop, err := compass.New(sensor, ring, compass.Config{Logger: logger})
	if err != nil {
		printErrForever(logger, "compass setup", slog.Any("reason", err))
	}
	loop.Run()
}

// printErrForever logs msg @ 1hz. It blocks forever.
func printErrForever(logger *slog.Logger, msg string, args ...any) {
	for {
		logger.Error(msg, args...)
		time.Sleep(time.Second)
	}
}
