// Package chart builds the "sales over time" line chart model shown on the
// analytics dashboard: axis labels per time frame, the y-axis ceiling, and
// the tooltip text for each point. Drawing is left to internal/render.
package chart

import "strings"

// TimeFrame is the window a series covers. It decides how interval keys are
// turned into axis labels.
type TimeFrame string

// Supported time frames.
const (
	Today      TimeFrame = "today"
	SevenDays  TimeFrame = "7days"
	ThirtyDays TimeFrame = "30days"
)

// Known reports whether tf is one of the supported frames.
func (tf TimeFrame) Known() bool {
	switch tf {
	case Today, SevenDays, ThirtyDays:
		return true
	default:
		return false
	}
}

// String returns the string representation of the time frame.
func (tf TimeFrame) String() string {
	return string(tf)
}

// Label formats a raw interval key for display on the x axis.
//
//	today   "14:30"      -> "14"
//	7days   "2023-05-21" -> "05/21"
//	30days  "2023-W21"   -> "W21"
//
// Keys that do not have the expected shape, and unknown frames, are returned
// unchanged.
func Label(timeInterval string, tf TimeFrame) string {
	switch tf {
	case Today:
		hour, _, _ := strings.Cut(timeInterval, ":")
		return hour
	case SevenDays:
		if parts := strings.Split(timeInterval, "-"); len(parts) == 3 {
			return parts[1] + "/" + parts[2]
		}
	case ThirtyDays:
		if _, week, ok := strings.Cut(timeInterval, "W"); ok {
			return "W" + week
		}
	}
	return timeInterval
}
