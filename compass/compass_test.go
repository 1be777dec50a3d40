package compass

import (
	"errors"
	"math"
	"testing"

	"github.com/harveysanders/picocompass/heading"
	"github.com/harveysanders/picocompass/indicator"
)

type field struct {
	x, y, z int32
	err     error
}

type sensor struct {
	fields []field
	calls  int
}

func (s *sensor) ReadMagneticField() (x, y, z int32, err error) {
	f := s.fields[s.calls%len(s.fields)]
	s.calls++
	return f.x, f.y, f.z, f.err
}

type lamps struct {
	masks []uint8
}

func (l *lamps) SetMask(mask uint8) error {
	l.masks = append(l.masks, mask)
	return nil
}

func newLoop(t *testing.T, s *sensor, cfg Config) (*Loop, *lamps) {
	t.Helper()
	l := &lamps{}
	loop, err := New(s, indicator.NewRing(l), cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return loop, l
}

func TestStep(t *testing.T) {
	tests := []struct {
		name    string
		field   field
		offset  float64
		wantDir heading.Direction
		wantDeg float64
	}{
		{name: "x axis", field: field{x: 300}, wantDir: heading.North, wantDeg: 0},
		{name: "y axis", field: field{y: 300}, wantDir: heading.East, wantDeg: 90},
		{name: "negative y", field: field{x: 100, y: -100}, wantDir: heading.NorthWest, wantDeg: 315},
		{name: "offset", field: field{x: 300}, offset: -22.5, wantDir: heading.NNW, wantDeg: 337.5},
		{name: "offset wraps", field: field{x: -300}, offset: 200, wantDir: heading.NNE, wantDeg: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loop, l := newLoop(t, &sensor{fields: []field{tt.field}}, Config{Offset: tt.offset})
			r, err := loop.Step()
			if err != nil {
				t.Fatalf("Step() failed: %v", err)
			}
			if r.Direction != tt.wantDir {
				t.Errorf("Direction = %v, want %v", r.Direction, tt.wantDir)
			}
			if math.Abs(r.Angle-tt.wantDeg) > 1e-9 {
				t.Errorf("Angle = %v, want %v", r.Angle, tt.wantDeg)
			}
			if len(l.masks) != 1 || l.masks[0] != heading.IndicatorMask(tt.wantDir) {
				t.Errorf("ring masks %08b, want [%08b]", l.masks, heading.IndicatorMask(tt.wantDir))
			}
		})
	}
}

func TestStepReadFailureBlinks(t *testing.T) {
	bus := errors.New("i2c nack")
	s := &sensor{fields: []field{{err: bus}}}
	loop, l := newLoop(t, s, Config{})

	for i := 0; i < 3; i++ {
		_, err := loop.Step()
		if !errors.Is(err, ErrRead) || !errors.Is(err, bus) {
			t.Fatalf("Step() error = %v, want ErrRead wrapping %v", err, bus)
		}
	}
	want := []uint8{0xFF, 0x00, 0xFF}
	if len(l.masks) != len(want) {
		t.Fatalf("masks %08b, want %08b", l.masks, want)
	}
	for i := range want {
		if l.masks[i] != want[i] {
			t.Fatalf("masks %08b, want %08b", l.masks, want)
		}
	}
}

func TestStepRecovers(t *testing.T) {
	s := &sensor{fields: []field{{err: errors.New("timeout")}, {y: -50}}}
	loop, l := newLoop(t, s, Config{})
	if _, err := loop.Step(); err == nil {
		t.Fatal("expected first Step to fail")
	}
	r, err := loop.Step()
	if err != nil {
		t.Fatalf("second Step failed: %v", err)
	}
	if r.Direction != heading.West {
		t.Errorf("Direction = %v, want W", r.Direction)
	}
	if last := l.masks[len(l.masks)-1]; last != heading.IndicatorMask(heading.West) {
		t.Errorf("ring mask %08b after recovery", last)
	}
}

func TestReadingsFanOut(t *testing.T) {
	ch := make(chan Reading, 1)
	loop, _ := newLoop(t, &sensor{fields: []field{{x: 1}}}, Config{Readings: ch})

	for i := 0; i < 3; i++ {
		if _, err := loop.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if got := loop.Dropped(); got != 2 {
		t.Errorf("Dropped() = %d, want 2", got)
	}
	r := <-ch
	if r.Direction != heading.North || r.X != 1 {
		t.Errorf("got reading %+v", r)
	}
}

func TestNew(t *testing.T) {
	ring := indicator.NewRing(&lamps{})
	if _, err := New(nil, ring, Config{}); err == nil {
		t.Error("New with nil sensor should fail")
	}
	if _, err := New(&sensor{}, ring, Config{Offset: math.NaN()}); err == nil {
		t.Error("New with NaN offset should fail")
	}
	loop, err := New(&sensor{}, ring, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if loop.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", loop.interval, DefaultInterval)
	}
}
