package chart

import (
	"encoding/json"
	"math"
)

// MetricKey selects the numeric field plotted on the y axis.
type MetricKey string

// Known metrics carried by every series point.
const (
	Units   MetricKey = "units"
	Amount  MetricKey = "amount"
	Revenue MetricKey = "revenue"
	Orders  MetricKey = "orders"
)

var accessors = map[MetricKey]func(TimeSeriesPoint) *float64{
	Units:   func(p TimeSeriesPoint) *float64 { return p.Units },
	Amount:  func(p TimeSeriesPoint) *float64 { return p.Amount },
	Revenue: func(p TimeSeriesPoint) *float64 { return p.Revenue },
	Orders:  func(p TimeSeriesPoint) *float64 { return p.Orders },
}

// String returns the string representation of the metric key.
func (k MetricKey) String() string {
	return string(k)
}

// Builtin reports whether k is one of the metrics every point carries.
func (k MetricKey) Builtin() bool {
	_, ok := accessors[k]
	return ok
}

// Lookup returns the value of the metric on p. ok is false when the point does
// not carry the metric or carries something that is not a number.
//
// Keys outside the known set are read from the point's extra fields.
func (k MetricKey) Lookup(p TimeSeriesPoint) (float64, bool) {
	if get, found := accessors[k]; found {
		if v := get(p); v != nil {
			return *v, true
		}
		return 0, false
	}
	return numeric(p.Extra[string(k)])
}

// ValueOrZero returns the metric value, treating absent and NaN as 0.
func (k MetricKey) ValueOrZero(p TimeSeriesPoint) float64 {
	v, ok := k.Lookup(p)
	if !ok || math.IsNaN(v) {
		return 0
	}
	return v
}

// ValueLabel returns the caption shown next to the value in the tooltip.
func (k MetricKey) ValueLabel() string {
	switch k {
	case Units:
		return "Units Sold"
	case Amount:
		return "Sales Amount"
	case Revenue:
		return "Revenue"
	default:
		return "Value"
	}
}

// Monetary reports whether values of the metric are shown as currency.
func (k MetricKey) Monetary() bool {
	return k == Amount || k == Revenue
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
