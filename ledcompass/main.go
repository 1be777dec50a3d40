// ledcompass points a ring of 8 LEDs at magnetic north using an LSM303AGR
// magnetometer. While the sensor cannot be read the whole ring blinks.
package main

import (
	"log/slog"
	"machine"
	"time"

	"github.com/harveysanders/picocompass/compass"
	"github.com/harveysanders/picocompass/indicator"
	"tinygo.org/x/drivers/lsm303agr"
)

// LEDs on GP8..GP15, GP8 facing North and going clockwise.
const firstLED = machine.GP8

func main() {
	logger := slog.New(slog.NewTextHandler(machine.Serial, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	var pins indicator.Pins
	for i := range pins {
		pin := firstLED + machine.Pin(i)
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pins[i] = pin
	}
	ring := indicator.NewRing(&pins)

	// Light the ring up one LED per bring-up step so a stuck board shows
	// where it stopped.
	step := func(n int) { pins.SetMask(uint8(1)<<n - 1) }

	step(1)
	err := machine.I2C0.Configure(machine.I2CConfig{
		SDA:       machine.GP4,
		SCL:       machine.GP5,
		Frequency: 400 * machine.KHz,
	})
	if err != nil {
		printErrForever(logger, "configure I2C", slog.Any("reason", err))
	}
	step(2)

	sensor := lsm303agr.New(machine.I2C0)
	if !sensor.Connected() {
		printErrForever(logger, "LSM303AGR not found on I2C0")
	}
	step(3)
	if err := sensor.Configure(lsm303agr.Configuration{}); err != nil {
		printErrForever(logger, "configure LSM303AGR", slog.Any("reason", err))
	}
	step(4)
	time.Sleep(time.Second)
	ring.Clear()

	loop, err := compass.New(sensor, ring, compass.Config{
		Interval: compass.DefaultInterval,
		Logger:   logger,
	})
	if err != nil {
		printErrForever(logger, "compass setup", slog.Any("reason", err))
	}
	logger.Info("compass:start")
	loop.Run()
}

// printErrForever logs msg @ 1hz. It blocks forever.
func printErrForever(logger *slog.Logger, msg string, args ...any) {
	for {
		logger.Error(msg, args...)
		time.Sleep(time.Second)
	}
}
