package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxValue(t *testing.T) {
	points := []TimeSeriesPoint{
		{TimeInterval: "a", Revenue: Float(10)},
		{TimeInterval: "b"},
		{TimeInterval: "c", Revenue: Float(42.5)},
	}

	assert.Equal(t, 42.5, MaxValue(points, Revenue))
	assert.Equal(t, 0.0, MaxValue(points, Units), "absent values count as zero")
	assert.Equal(t, 0.0, MaxValue(nil, Revenue), "empty input is zero")
}

func TestMaxValue_NegativeValues(t *testing.T) {
	points := []TimeSeriesPoint{
		{TimeInterval: "a", Amount: Float(-3)},
		{TimeInterval: "b", Amount: Float(-1)},
	}
	assert.Equal(t, -1.0, MaxValue(points, Amount))
	assert.Equal(t, 5.0, YAxisCeiling(MaxValue(points, Amount)))
}

func TestMaxValue_ExtraField(t *testing.T) {
	points := []TimeSeriesPoint{
		{TimeInterval: "a", Extra: map[string]any{"visitors": 12.0}},
		{TimeInterval: "b", Extra: map[string]any{"visitors": "n/a"}},
	}
	assert.Equal(t, 12.0, MaxValue(points, MetricKey("visitors")))
}

func TestYAxisCeiling(t *testing.T) {
	tests := []struct {
		max      float64
		expected float64
	}{
		{max: 0, expected: 5},
		{max: 3, expected: 5},
		{max: 4.5, expected: 6},
		{max: 10, expected: 12},
		{max: 100, expected: 120},
		{max: 1234, expected: 1481},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, YAxisCeiling(tt.max), "max=%v", tt.max)
	}
}

func TestYAxisCeiling_NeverBelowFive(t *testing.T) {
	sets := [][]TimeSeriesPoint{
		{{TimeInterval: "a"}},
		{{TimeInterval: "a", Units: Float(0)}, {TimeInterval: "b", Units: Float(0)}},
		{{TimeInterval: "a", Units: Float(1)}},
		{{TimeInterval: "a", Units: Float(-50)}},
		{{TimeInterval: "a", Units: Float(900)}},
	}

	for _, points := range sets {
		assert.GreaterOrEqual(t, YAxisCeiling(MaxValue(points, Units)), 5.0)
	}
}

func TestHasPositiveValue(t *testing.T) {
	zeroOrAbsent := []TimeSeriesPoint{
		{TimeInterval: "a", Orders: Float(0)},
		{TimeInterval: "b"},
	}
	assert.False(t, HasPositiveValue(zeroOrAbsent, Orders))
	assert.False(t, HasPositiveValue(nil, Orders))

	oneHit := append([]TimeSeriesPoint{}, zeroOrAbsent...)
	oneHit = append(oneHit, TimeSeriesPoint{TimeInterval: "c", Orders: Float(0.5)})
	assert.True(t, HasPositiveValue(oneHit, Orders))

	negative := []TimeSeriesPoint{{TimeInterval: "a", Orders: Float(-2)}}
	assert.False(t, HasPositiveValue(negative, Orders))
}
