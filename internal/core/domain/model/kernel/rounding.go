package kernel

import "math"

// RoundHalfUp rounds v to the given number of decimal places, with ties
// rounded away from zero. Monetary amounts use 2 places, volumes use
// CBMPrecision places.
func RoundHalfUp(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	if v < 0 {
		return -math.Floor(-v*shift+0.5) / shift
	}
	return math.Floor(v*shift+0.5) / shift
}
