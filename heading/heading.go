// Package heading turns raw angles into compass headings.
//
// Angles are degrees measured clockwise from north. Nothing in this package
// touches hardware, so it builds and tests on the host as well as under TinyGo.
package heading

import "math"

// Valid reports whether a can be normalized. NaN and infinite angles are
// rejected; callers feeding sensor data should check before classifying.
func Valid(a float64) bool {
	return !math.IsNaN(a) && !math.IsInf(a, 0)
}

// Normalize reduces a to the range [0, 360). The result is NaN when a is not
// Valid.
func Normalize(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	// -tiny + 360 rounds up to exactly 360 in float64, and Mod keeps the
	// sign of -0 or -720. Both come out as +0.
	if a >= 360 || a == 0 {
		a = 0
	}
	return a
}

// NormalizeInt is Normalize for whole degrees.
func NormalizeInt(a int) int {
	a %= 360
	if a < 0 {
		a += 360
	}
	return a
}

// FromVector returns the heading of the (x, y) field components, as read from
// a magnetometer, in [0, 360).
func FromVector(x, y float64) float64 {
	return Normalize(math.Atan2(y, x) * 180 / math.Pi)
}
