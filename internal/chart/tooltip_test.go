package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hovered(key MetricKey, point TimeSeriesPoint) HoverState {
	return Active{
		Point: DisplayPoint{TimeSeriesPoint: point, TimeLabel: "05/21"},
		Key:   key,
	}
}

func TestFormatTooltip(t *testing.T) {
	tests := []struct {
		name       string
		key        MetricKey
		point      TimeSeriesPoint
		valueLabel string
		value      string
	}{
		{
			name:       "units are plain",
			key:        Units,
			point:      TimeSeriesPoint{TimeInterval: "2023-05-21", Units: Float(7)},
			valueLabel: "Units Sold",
			value:      "7",
		},
		{
			name:       "amount is currency",
			key:        Amount,
			point:      TimeSeriesPoint{TimeInterval: "2023-05-21", Amount: Float(1500)},
			valueLabel: "Sales Amount",
			value:      "₹1,500",
		},
		{
			name:       "revenue is currency",
			key:        Revenue,
			point:      TimeSeriesPoint{TimeInterval: "2023-05-21", Revenue: Float(999.6)},
			valueLabel: "Revenue",
			value:      "₹1,000",
		},
		{
			name:       "orders fall back to Value",
			key:        Orders,
			point:      TimeSeriesPoint{TimeInterval: "2023-05-21", Orders: Float(12)},
			valueLabel: "Value",
			value:      "12",
		},
		{
			name:       "missing value is zero",
			key:        Revenue,
			point:      TimeSeriesPoint{TimeInterval: "2023-05-21"},
			valueLabel: "Revenue",
			value:      "₹0",
		},
		{
			name:       "unknown key reads extra",
			key:        MetricKey("visitors"),
			point:      TimeSeriesPoint{TimeInterval: "2023-05-21", Extra: map[string]any{"visitors": 2.5}},
			valueLabel: "Value",
			value:      "2.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tip, ok := FormatTooltip(hovered(tt.key, tt.point))
			require.True(t, ok)
			assert.Equal(t, "05/21", tip.Label)
			assert.Equal(t, tt.valueLabel, tip.ValueLabel)
			assert.Equal(t, tt.value, tip.Value)
			assert.Equal(t, tt.valueLabel+": "+tt.value, tip.Text())
		})
	}
}

func TestFormatTooltip_Inactive(t *testing.T) {
	tip, ok := FormatTooltip(Inactive{})
	assert.False(t, ok)
	assert.Nil(t, tip)

	tip, ok = FormatTooltip(nil)
	assert.False(t, ok)
	assert.Nil(t, tip)
}
