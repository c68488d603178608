package chart

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingInterval is returned when a decoded point has no timeInterval.
var ErrMissingInterval = errors.New("series point is missing timeInterval")

// TimeSeriesPoint is one bucketed observation. Metric fields are nil when the
// upstream source did not report them. Extra holds any other fields; they are
// carried through JSON untouched.
type TimeSeriesPoint struct {
	TimeInterval string
	Units        *float64
	Amount       *float64
	Revenue      *float64
	Orders       *float64
	Extra        map[string]any
}

// DisplayPoint is a series point with its axis label attached.
type DisplayPoint struct {
	TimeSeriesPoint
	TimeLabel string
}

const (
	fieldTimeInterval = "timeInterval"
	fieldTimeLabel    = "timeLabel"
)

// Float returns a pointer to v, for building points in code.
func Float(v float64) *float64 {
	return &v
}

// Normalize attaches the axis label for tf to each point. The result has the
// same length and order as points; the input is not modified.
func Normalize(points []TimeSeriesPoint, tf TimeFrame) []DisplayPoint {
	out := make([]DisplayPoint, len(points))
	for i, p := range points {
		out[i] = DisplayPoint{
			TimeSeriesPoint: p,
			TimeLabel:       Label(p.TimeInterval, tf),
		}
	}
	return out
}

// MarshalJSON flattens the known fields and Extra into a single object.
// Absent metrics are omitted.
func (p TimeSeriesPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.fields())
}

// UnmarshalJSON reads a point from a flat object. Unknown fields go to Extra;
// a metric that is not a number is kept in Extra instead of failing.
func (p *TimeSeriesPoint) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out TimeSeriesPoint
	for key, value := range raw {
		switch key {
		case fieldTimeInterval:
			if err := json.Unmarshal(value, &out.TimeInterval); err != nil {
				return fmt.Errorf("decode %s: %w", fieldTimeInterval, err)
			}
		case fieldTimeLabel:
			// Derived on every build.
		case string(Units), string(Amount), string(Revenue), string(Orders):
			v, ok := decodeMetric(value)
			if ok {
				out.setMetric(MetricKey(key), v)
				continue
			}
			out.putExtra(key, value)
		default:
			out.putExtra(key, value)
		}
	}
	if _, ok := raw[fieldTimeInterval]; !ok {
		return ErrMissingInterval
	}

	*p = out
	return nil
}

// MarshalJSON writes the point with its timeLabel.
func (d DisplayPoint) MarshalJSON() ([]byte, error) {
	fields := d.TimeSeriesPoint.fields()
	fields[fieldTimeLabel] = d.TimeLabel
	return json.Marshal(fields)
}

func (p TimeSeriesPoint) fields() map[string]any {
	out := make(map[string]any, len(p.Extra)+5)
	for k, v := range p.Extra {
		out[k] = v
	}
	out[fieldTimeInterval] = p.TimeInterval
	for key, get := range accessors {
		if v := get(p); v != nil {
			out[string(key)] = *v
		}
	}
	return out
}

func (p *TimeSeriesPoint) setMetric(key MetricKey, v *float64) {
	switch key {
	case Units:
		p.Units = v
	case Amount:
		p.Amount = v
	case Revenue:
		p.Revenue = v
	case Orders:
		p.Orders = v
	}
}

func (p *TimeSeriesPoint) putExtra(key string, value json.RawMessage) {
	var v any
	if err := json.Unmarshal(value, &v); err != nil {
		return
	}
	if p.Extra == nil {
		p.Extra = make(map[string]any)
	}
	p.Extra[key] = v
}

// decodeMetric returns (nil, true) for null and (v, true) for a number.
func decodeMetric(value json.RawMessage) (*float64, bool) {
	if string(value) == "null" {
		return nil, true
	}
	var f float64
	if err := json.Unmarshal(value, &f); err != nil {
		return nil, false
	}
	return &f, true
}
