package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{in: 0, expected: "₹0"},
		{in: 7, expected: "₹7"},
		{in: 1500, expected: "₹1,500"},
		{in: 1499.5, expected: "₹1,500"},
		{in: 1499.4, expected: "₹1,499"},
		{in: 150000, expected: "₹1,50,000"},
		{in: 12345678, expected: "₹1,23,45,678"},
		{in: -1500, expected: "-₹1,500"},
		{in: math.NaN(), expected: "₹0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCurrency(tt.in), "in=%v", tt.in)
	}
}

func TestFormatPlain(t *testing.T) {
	assert.Equal(t, "7", FormatPlain(7))
	assert.Equal(t, "7.25", FormatPlain(7.25))
	assert.Equal(t, "0", FormatPlain(math.Copysign(0, -1)))
	assert.Equal(t, "0", FormatPlain(math.NaN()))
	assert.Equal(t, "1500", FormatPlain(1500))
}
