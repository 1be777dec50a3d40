package heading

import "sort"

// Direction is one of the 16 compass points, ordered clockwise from North.
type Direction uint8

const (
	North Direction = iota
	NNE
	NorthEast
	ENE
	East
	ESE
	SouthEast
	SSE
	South
	SSW
	SouthWest
	WSW
	West
	WNW
	NorthWest
	NNW
)

const numDirections = 16

// SectorWidth is the angular width of every Direction in degrees.
const SectorWidth = 360.0 / numDirections

// sectorEnd holds the exclusive upper bound of each sector, in order. The
// last entry closes the wrapped half of North.
var sectorEnd = [numDirections + 1]float64{
	11.25, 33.75, 56.25, 78.75,
	101.25, 123.75, 146.25, 168.75,
	191.25, 213.75, 236.25, 258.75,
	281.25, 303.75, 326.25, 348.75,
	360,
}

var abbrevs = [numDirections]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

var names = [numDirections]string{
	"North", "North-northeast", "Northeast", "East-northeast",
	"East", "East-southeast", "Southeast", "South-southeast",
	"South", "South-southwest", "Southwest", "West-southwest",
	"West", "West-northwest", "Northwest", "North-northwest",
}

// Classify returns the Direction whose sector contains a. The angle does not
// need to be normalized. Sectors include their lower edge and exclude their
// upper edge, so 11.25 is NNE and 348.75 is North. a must be Valid; the
// result for NaN or infinite input is meaningless.
func Classify(a float64) Direction {
	a = Normalize(a)
	i := sort.Search(len(sectorEnd), func(i int) bool { return a < sectorEnd[i] })
	return Direction(i % numDirections)
}

// ClassifyInt is Classify for whole degrees.
func ClassifyInt(a int) Direction {
	return Classify(float64(NormalizeInt(a)))
}

// Valid reports whether d is one of the 16 compass points.
func (d Direction) Valid() bool { return d < numDirections }

// String returns the abbreviation, e.g. "NNE".
func (d Direction) String() string {
	if !d.Valid() {
		return "Direction(?)"
	}
	return abbrevs[d]
}

// Name returns the spelled out name, e.g. "North-northeast".
func (d Direction) Name() string {
	if !d.Valid() {
		return "unknown"
	}
	return names[d]
}

// Center returns the angle in the middle of the sector.
func (d Direction) Center() float64 {
	return float64(d%numDirections) * SectorWidth
}

// Sector returns the [lo, hi) bounds of d. North is reported as
// [348.75, 371.25), hi wrapping past 360.
func (d Direction) Sector() (lo, hi float64) {
	c := d.Center()
	lo = Normalize(c - SectorWidth/2)
	return lo, lo + SectorWidth
}

// Next returns the neighbouring direction clockwise.
func (d Direction) Next() Direction { return (d + 1) % numDirections }

// Prev returns the neighbouring direction counter-clockwise.
func (d Direction) Prev() Direction { return (d + numDirections - 1) % numDirections }

// IndicatorCount is the size of the indicator ring IndicatorMask targets.
const IndicatorCount = numDirections / 2

// IndicatorMask maps d onto a ring of 8 indicators, bit i being indicator i
// with indicator 0 at North. The eight principal directions light a single
// indicator, the ones in between light both neighbours.
func IndicatorMask(d Direction) uint8 {
	d %= numDirections
	first := uint8(d / 2)
	mask := uint8(1) << first
	if d%2 == 1 {
		mask |= 1 << ((first + 1) % IndicatorCount)
	}
	return mask
}
