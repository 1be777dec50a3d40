// Package indicator drives the ring of 8 direction lamps of the compass
// examples, either as discrete LEDs on GPIO pins or as a NeoPixel ring.
package indicator

import (
	"image/color"

	"github.com/harveysanders/picocompass/heading"
)

// Count is the number of lamps on a ring, lamp 0 facing North.
const Count = heading.IndicatorCount

// Lamps is a set of 8 lamps addressed by a bit mask, bit i being lamp i.
type Lamps interface {
	SetMask(mask uint8) error
}

// Switch is a single on/off output. machine.Pin implements it.
type Switch interface {
	Set(high bool)
}

// Pins drives one LED per GPIO pin.
type Pins [Count]Switch

// SetMask sets every pin to its bit in mask.
func (p *Pins) SetMask(mask uint8) error {
	for i, sw := range p {
		sw.Set(mask&(1<<i) != 0)
	}
	return nil
}

// RawWriter sends a strip of GRB colors, as the PIO WS2812B driver does.
type RawWriter interface {
	WriteRaw(rawGRB []uint32) error
}

// Pixels drives a ring of 8 WS2812B pixels.
type Pixels struct {
	strip  RawWriter
	on     uint32
	offset int
	buf    [Count]uint32
}

// NewPixels returns a pixel ring lighting lamps with c. north is the index of
// the pixel facing North, for rings mounted rotated.
func NewPixels(strip RawWriter, c color.RGBA, north int) *Pixels {
	return &Pixels{
		strip:  strip,
		on:     RawGRB(c),
		offset: (north%Count + Count) % Count,
	}
}

// SetMask lights the pixels in mask and blanks the others.
func (p *Pixels) SetMask(mask uint8) error {
	for i := range p.buf {
		v := uint32(0)
		if mask&(1<<i) != 0 {
			v = p.on
		}
		p.buf[(i+p.offset)%Count] = v
	}
	return p.strip.WriteRaw(p.buf[:])
}

// RawGRB packs c the way WS2812B pixels expect it on the wire.
func RawGRB(c color.RGBA) uint32 {
	return uint32(c.G)<<24 | uint32(c.R)<<16 | uint32(c.B)<<8
}

// Ring keeps track of which lamps are lit.
type Ring struct {
	lamps Lamps
	mask  uint8
}

// NewRing returns a ring over lamps with everything off. Call Clear to push
// that state to the hardware.
func NewRing(lamps Lamps) *Ring {
	return &Ring{lamps: lamps}
}

// Show lights the lamps pointing at d and turns the rest off.
func (r *Ring) Show(d heading.Direction) error {
	return r.set(heading.IndicatorMask(d))
}

// Toggle flips every lamp. Called repeatedly it blinks the whole ring, which
// the compass uses to signal it has no reading.
func (r *Ring) Toggle() error {
	return r.set(^r.mask)
}

// Clear turns every lamp off.
func (r *Ring) Clear() error {
	return r.set(0)
}

// Mask returns the lamps currently lit.
func (r *Ring) Mask() uint8 { return r.mask }

func (r *Ring) set(mask uint8) error {
	if err := r.lamps.SetMask(mask); err != nil {
		return err
	}
	r.mask = mask
	return nil
}
