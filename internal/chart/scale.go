package chart

import "math"

const (
	// minCeiling keeps the y axis from collapsing when every value is zero.
	minCeiling = 5
	// headroom leaves space above the tallest point so its marker is not clipped.
	headroom = 1.2
)

// MaxValue returns the largest value of key over points. Absent values count
// as 0, and an empty slice yields 0.
func MaxValue(points []TimeSeriesPoint, key MetricKey) float64 {
	if len(points) == 0 {
		return 0
	}
	highest := math.Inf(-1)
	for _, p := range points {
		if v := key.ValueOrZero(p); v > highest {
			highest = v
		}
	}
	return highest
}

// YAxisCeiling returns the upper bound of the y axis for the given maximum.
func YAxisCeiling(maxValue float64) float64 {
	return math.Max(minCeiling, math.Ceil(maxValue*headroom))
}

// HasPositiveValue reports whether any point carries key with a value above 0.
func HasPositiveValue(points []TimeSeriesPoint, key MetricKey) bool {
	for _, p := range points {
		if v, ok := key.Lookup(p); ok && v > 0 {
			return true
		}
	}
	return false
}
