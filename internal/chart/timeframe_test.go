package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name     string
		interval string
		frame    TimeFrame
		expected string
	}{
		{name: "today keeps the hour", interval: "14:30", frame: Today, expected: "14"},
		{name: "today without colon passes through", interval: "14", frame: Today, expected: "14"},
		{name: "today empty", interval: "", frame: Today, expected: ""},
		{name: "7days formats month/day", interval: "2023-05-21", frame: SevenDays, expected: "05/21"},
		{name: "7days malformed passes through", interval: "malformed", frame: SevenDays, expected: "malformed"},
		{name: "7days too many parts passes through", interval: "2023-05-21-01", frame: SevenDays, expected: "2023-05-21-01"},
		{name: "30days week key", interval: "2023-W21", frame: ThirtyDays, expected: "W21"},
		{name: "30days without W passes through", interval: "2023-05-21", frame: ThirtyDays, expected: "2023-05-21"},
		{name: "unknown frame passes through", interval: "2023-05-21", frame: TimeFrame("unknown-frame"), expected: "2023-05-21"},
		{name: "empty frame passes through", interval: "14:30", frame: "", expected: "14:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Label(tt.interval, tt.frame))
		})
	}
}

func TestTimeFrameKnown(t *testing.T) {
	assert.True(t, Today.Known())
	assert.True(t, SevenDays.Known())
	assert.True(t, ThirtyDays.Known())
	assert.False(t, TimeFrame("90days").Known())
	assert.False(t, TimeFrame("").Known())
}
