package main

import (
	"errors"
	"log/slog"
	"machine"
	"time"

	"github.com/harveysanders/picocompass/compass"
	"github.com/harveysanders/picocompass/indicator"
	"github.com/harveysanders/picocompass/mqttcompass/cyw43439"
	"github.com/harveysanders/picocompass/mqttcompass/lcd"
	"github.com/harveysanders/picocompass/mqttcompass/mqtt"
	"tinygo.org/x/drivers/hd44780i2c"
	"tinygo.org/x/drivers/lsm303agr"
)

// Set with -ldflags "-X main.serverAddrStr=host:port". Brokers that need
// credentials also take -X main.mqttUser=NAME -X main.mqttPass=SECRET.
var (
	serverAddrStr = "10.0.0.9:1883"
	mqttUser      string
	mqttPass      string
)

func main() {
	logger := slog.New(slog.NewTextHandler(machine.Serial, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	err := machine.I2C0.Configure(machine.I2CConfig{
		SDA:       machine.GP4,
		SCL:       machine.GP5,
		Frequency: 400 * machine.KHz,
	})
	if err != nil {
		printErrForever(logger, "configure I2C", slog.Any("reason", err))
	}

	display, err := configureLCD(machine.I2C0)
	if err != nil {
		printErrForever(logger, "configure LCD", slog.Any("reason", err))
	}
	lcdMessages := make(chan lcd.Message, 10)
	go lcd.NewHandler(&display, lcdMessages, logger).Run()
	lcd.Send(lcdMessages, "picocompass", "Starting...")

	sensor := lsm303agr.New(machine.I2C0)
	if !sensor.Connected() {
		lcd.Send(lcdMessages, "LSM303AGR", "not found")
		printErrForever(logger, "LSM303AGR not found on I2C0")
	}
	if err := sensor.Configure(lsm303agr.Configuration{}); err != nil {
		printErrForever(logger, "configure LSM303AGR", slog.Any("reason", err))
	}

	var pins indicator.Pins
	for i := range pins {
		pin := machine.GP8 + machine.Pin(i)
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pins[i] = pin
	}
	ring := indicator.NewRing(&pins)
	ring.Clear()

	// Buffered so a slow broker only costs dropped readings.
	readings := make(chan compass.Reading, 10)
	loop, err := compass.New(sensor, ring, compass.Config{
		Interval: compass.DefaultInterval,
		Logger:   logger,
		Readings: readings,
	})
	if err != nil {
		printErrForever(logger, "compass setup", slog.Any("reason", err))
	}

	go publish(logger, readings, lcdMessages)
	loop.Run()
}

// publish brings up WiFi and forwards readings to the broker. Readings also
// go to the LCD, which keeps showing connection status for a few seconds
// after each change.
func publish(logger *slog.Logger, readings <-chan compass.Reading, lcdMessages chan<- lcd.Message) {
	forward := make(chan compass.Reading, 10)
	go func() {
		for r := range readings {
			select {
			case lcdMessages <- lcd.HeadingMessage(r):
			default:
			}
			select {
			case forward <- r:
			default:
			}
		}
	}()

	lcd.Send(lcdMessages, "WiFi", "Joining...")
	stack, err := cyw43439.Connect(logger)
	if err != nil {
		lcd.Send(lcdMessages, "WiFi failed", err.Error())
		printErrForever(logger, "wifi setup", slog.Any("reason", err))
	}

	c := mqtt.Client{
		ID:                "tinygo-compass",
		Logger:            logger,
		Timeout:           5 * time.Second,
		TCPBufSize:        2030, // MTU - ethhdr - iphdr - tcphdr
		HeartbeatInterval: 10 * time.Second,
		Username:          mqttUser,
		Password:          mqttPass,
	}
	err = c.ConnectAndPublish(stack.Net(), serverAddrStr, forward, lcdMessages)
	if err != nil {
		printErrForever(logger, "connect to MQTT broker", slog.Any("reason", err))
	}
}

// configureLCD takes a preconfigured I2C peripheral and attempts to
// initialize the HD44780 LCD display on the common backpack addresses.
func configureLCD(i2c *machine.I2C) (hd44780i2c.Device, error) {
	for _, a := range []uint8{0x27, 0x3F} {
		dev := hd44780i2c.New(i2c, a)
		err := dev.Configure(hd44780i2c.Config{
			Width:  16,
			Height: 2,
		})
		if err == nil {
			return dev, nil
		}
	}
	return hd44780i2c.Device{}, errors.New("LCD not found on addresses: 0x27, 0x3f")
}

// printErrForever logs msg @ 1hz so it shows up whenever the serial
// monitor attaches. It blocks forever.
func printErrForever(logger *slog.Logger, msg string, args ...any) {
	for {
		logger.Error(msg, args...)
		time.Sleep(time.Second)
	}
}
