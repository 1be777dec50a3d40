// Package lcd shows compass status on a 16x2 HD44780 LCD, fed through a
// channel so network code never waits on the I2C bus.
//
// Example usage:
//
//	lcdMessages := make(chan lcd.Message, 10)
//	handler := lcd.NewHandler(&device, lcdMessages, logger)
//	go handler.Run()
//
//	lcd.Send(lcdMessages, "Heading", "NNE 21.5")
package lcd

import (
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/harveysanders/picocompass/compass"
)

// StatusHold is how long a status message stays up before heading messages
// may replace it.
const StatusHold = 3 * time.Second

// Message represents a two-line LCD message.
type Message struct {
	Line1 []byte
	Line2 []byte
	// Status marks connection and setup messages. They hold the screen for
	// StatusHold against non-status messages.
	Status bool
}

// Screen is the part of hd44780i2c.Device the handler uses.
type Screen interface {
	ClearDisplay()
	SetCursor(x, y uint8)
	Print(data []byte)
}

// Handler processes LCD messages from a channel.
type Handler struct {
	device   Screen
	messages <-chan Message
	logger   *slog.Logger
	rows     int
	columns  int
	hold     time.Duration
	now      func() time.Time
	statusAt time.Time
}

// NewHandler creates a new 16x2 LCD message handler.
func NewHandler(device Screen, messages <-chan Message, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		device:   device,
		messages: messages,
		logger:   logger,
		rows:     2,
		columns:  16,
		hold:     StatusHold,
		now:      time.Now,
	}
}

// Run processes messages from the channel and updates the LCD until the
// channel is closed. Run should be called in a separate goroutine.
func (h *Handler) Run() {
	for msg := range h.messages {
		if !msg.Status && h.holding() {
			continue
		}
		h.display(msg)
		if msg.Status {
			h.statusAt = h.now()
		}
	}
	h.logger.Info("lcd:handler-stopped")
}

// display prints msg to the LCD, truncating each line to the screen width.
func (h *Handler) display(msg Message) {
	h.device.ClearDisplay()
	h.device.SetCursor(0, 0)
	h.device.Print(truncate(msg.Line1, h.columns))
	h.device.SetCursor(0, 1)
	h.device.Print(truncate(msg.Line2, h.columns))
}

func (h *Handler) holding() bool {
	return !h.statusAt.IsZero() && h.now().Sub(h.statusAt) < h.hold
}

func truncate(line []byte, n int) []byte {
	if len(line) > n {
		return line[:n]
	}
	return line
}

// Send queues a status message without blocking. It reports false when the
// channel is full and the message was dropped.
func Send(messages chan<- Message, line1, line2 string) bool {
	select {
	case messages <- Message{Line1: []byte(line1), Line2: []byte(line2), Status: true}:
		return true
	default:
		return false
	}
}

// HeadingMessage formats r as
//
//	NNE  21.5 deg
//	North-northeast
func HeadingMessage(r compass.Reading) Message {
	line1 := make([]byte, 0, 16)
	line1 = append(line1, r.Direction.String()...)
	for len(line1) < 4 {
		line1 = append(line1, ' ')
	}
	line1 = strconv.AppendFloat(line1, r.Angle, 'f', 1, 64)
	line1 = append(line1, " deg"...)
	return Message{
		Line1: line1,
		Line2: []byte(r.Direction.Name()),
	}
}
