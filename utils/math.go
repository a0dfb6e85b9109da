// Package utils contains small numeric helpers shared across the library.
package utils

import "math"

// Math.pow( x, 2 ) is slow, this is faster.
func Square(n float64) float64 {
	return n * n
}

// Math.pow( x, 2 ) is slow, this is faster.
func SquareInt(n int) int {
	return n * n
}

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}
