package chart

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const rupeeSign = "₹"

var indianEnglish = language.MustParse("en-IN")

// FormatCurrency renders v as whole Indian Rupees with en-IN digit grouping,
// e.g. 150000 -> "₹1,50,000". Values are rounded half away from zero.
func FormatCurrency(v float64) string {
	if math.IsNaN(v) {
		v = 0
	}
	rounded := math.Round(v)
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	p := message.NewPrinter(indianEnglish)
	return sign + rupeeSign + p.Sprint(number.Decimal(rounded, number.MaxFractionDigits(0)))
}

// FormatPlain renders v as a plain number using the shortest representation.
func FormatPlain(v float64) string {
	if math.IsNaN(v) || v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
