// Package compass runs the read, classify, display loop shared by the LED
// compass examples.
package compass

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/harveysanders/picocompass/heading"
	"github.com/harveysanders/picocompass/indicator"
)

// DefaultInterval is the pause between two readings.
const DefaultInterval = 500 * time.Millisecond

// ErrRead wraps magnetometer failures returned by Step.
var ErrRead = errors.New("compass: magnetometer read failed")

// FieldReader reads the magnetic field vector. lsm303agr.Device implements it.
type FieldReader interface {
	ReadMagneticField() (x, y, z int32, err error)
}

// Reading is one heading sample.
type Reading struct {
	X, Y, Z   int32             // Raw field components as returned by the sensor.
	Angle     float64           // Heading in degrees, offset applied, in [0, 360).
	Direction heading.Direction // Compass point of Angle.
	SinceBoot time.Duration
}

// Config configures a Loop. The zero value is usable.
type Config struct {
	// Interval between readings in Run. Defaults to DefaultInterval.
	Interval time.Duration
	// Offset in degrees added to every heading, to correct for how the
	// sensor is mounted on the board.
	Offset float64
	// Logger for loop events. Nil discards.
	Logger *slog.Logger
	// Readings, if set, receives every successful reading. Sends never
	// block; readings are dropped while the channel is full.
	Readings chan<- Reading
}

// Loop polls a magnetometer and points an indicator ring at the heading.
type Loop struct {
	sensor   FieldReader
	ring     *indicator.Ring
	interval time.Duration
	offset   float64
	log      *slog.Logger
	readings chan<- Reading
	start    time.Time
	dropped  int
}

// New returns a loop reading sensor and showing results on ring.
func New(sensor FieldReader, ring *indicator.Ring, cfg Config) (*Loop, error) {
	if sensor == nil || ring == nil {
		return nil, errors.New("compass: nil sensor or ring")
	}
	if !heading.Valid(cfg.Offset) {
		return nil, errors.New("compass: offset is not a finite angle")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.Level(127),
		}))
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{
		sensor:   sensor,
		ring:     ring,
		interval: interval,
		offset:   cfg.Offset,
		log:      logger,
		readings: cfg.Readings,
		start:    time.Now(),
	}, nil
}

// Step takes one reading and updates the ring. When the sensor fails the
// classifier is skipped, the whole ring is toggled instead and the returned
// error wraps ErrRead.
func (l *Loop) Step() (Reading, error) {
	x, y, z, err := l.sensor.ReadMagneticField()
	if err != nil {
		l.log.Error("compass:read", slog.String("err", err.Error()))
		if terr := l.ring.Toggle(); terr != nil {
			l.log.Error("compass:toggle", slog.String("err", terr.Error()))
		}
		return Reading{}, errors.Join(ErrRead, err)
	}

	angle := heading.Normalize(heading.FromVector(float64(x), float64(y)) + l.offset)
	r := Reading{
		X:         x,
		Y:         y,
		Z:         z,
		Angle:     angle,
		Direction: heading.Classify(angle),
		SinceBoot: time.Since(l.start),
	}
	l.log.Debug("compass:field", slog.Int64("x", int64(x)), slog.Int64("y", int64(y)), slog.Int64("z", int64(z)))
	l.log.Info("compass:heading", slog.Float64("deg", angle), slog.String("dir", r.Direction.String()))

	if err := l.ring.Show(r.Direction); err != nil {
		return r, errors.New("compass: show " + r.Direction.String() + ": " + err.Error())
	}
	l.publish(r)
	return r, nil
}

func (l *Loop) publish(r Reading) {
	if l.readings == nil {
		return
	}
	select {
	case l.readings <- r:
	default:
		l.dropped++
		l.log.Warn("compass:reading-dropped", slog.Int("total", l.dropped))
	}
}

// Dropped returns how many readings did not fit in Config.Readings.
func (l *Loop) Dropped() int { return l.dropped }

// Run calls Step forever, Interval apart. Errors are logged and the loop
// carries on; the ring already shows the failure.
func (l *Loop) Run() {
	for {
		if _, err := l.Step(); err != nil && !errors.Is(err, ErrRead) {
			l.log.Error("compass:step", slog.String("err", err.Error()))
		}
		time.Sleep(l.interval)
	}
}
