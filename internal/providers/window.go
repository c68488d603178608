package providers

import (
	"fmt"
	"time"

	"github.com/niaga-platform/service-analytics/internal/chart"
)

const (
	sevenDays  = 7
	thirtyDays = 30
)

// Window is the time range a series covers and its bucket keys, in order.
type Window struct {
	TimeFrame chart.TimeFrame
	Start     time.Time
	End       time.Time
	Keys      []string
	loc       *time.Location
}

// NewWindow returns the window of tf ending with the day that contains now,
// in loc. A nil loc means UTC.
func NewWindow(tf chart.TimeFrame, now time.Time, loc *time.Location) (Window, error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	tomorrow := today.AddDate(0, 0, 1)

	w := Window{TimeFrame: tf, End: tomorrow, loc: loc}
	switch tf {
	case chart.Today:
		w.Start = today
		for h := 0; h < 24; h++ {
			w.Keys = append(w.Keys, fmt.Sprintf("%02d:00", h))
		}
	case chart.SevenDays:
		w.Start = today.AddDate(0, 0, -(sevenDays - 1))
		for d := w.Start; d.Before(tomorrow); d = d.AddDate(0, 0, 1) {
			w.Keys = append(w.Keys, dayKey(d))
		}
	case chart.ThirtyDays:
		w.Start = today.AddDate(0, 0, -(thirtyDays - 1))
		seen := make(map[string]bool)
		for d := w.Start; d.Before(tomorrow); d = d.AddDate(0, 0, 1) {
			k := weekKey(d)
			if !seen[k] {
				seen[k] = true
				w.Keys = append(w.Keys, k)
			}
		}
	default:
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidTimeFrame, string(tf))
	}
	return w, nil
}

// Contains reports whether t falls in [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// KeyFor returns the bucket key of t.
func (w Window) KeyFor(t time.Time) string {
	t = t.In(w.loc)
	switch w.TimeFrame {
	case chart.Today:
		return fmt.Sprintf("%02d:00", t.Hour())
	case chart.ThirtyDays:
		return weekKey(t)
	default:
		return dayKey(t)
	}
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Bucketize aggregates orders into the buckets of the tf window ending at now.
// Every bucket is present, zero-filled, in window order. Cancelled orders and
// orders outside the window are skipped. Numeric order attributes that are not
// builtin metrics are summed into the point's extra fields.
func Bucketize(orders []Order, tf chart.TimeFrame, now time.Time, loc *time.Location) ([]chart.TimeSeriesPoint, error) {
	w, err := NewWindow(tf, now, loc)
	if err != nil {
		return nil, err
	}
	return w.Bucketize(orders), nil
}

// Bucketize aggregates orders into the window's buckets.
func (w Window) Bucketize(orders []Order) []chart.TimeSeriesPoint {
	points := make([]chart.TimeSeriesPoint, len(w.Keys))
	index := make(map[string]int, len(w.Keys))
	for i, k := range w.Keys {
		index[k] = i
		points[i] = chart.TimeSeriesPoint{
			TimeInterval: k,
			Units:        chart.Float(0),
			Amount:       chart.Float(0),
			Revenue:      chart.Float(0),
			Orders:       chart.Float(0),
		}
	}

	for _, o := range orders {
		if o.Cancelled() || !w.Contains(o.PlacedAt) {
			continue
		}
		i, ok := index[w.KeyFor(o.PlacedAt)]
		if !ok {
			continue
		}
		p := &points[i]
		*p.Units += float64(o.Quantity)
		*p.Amount += o.GrossAmount
		*p.Revenue += o.NetRevenue()
		*p.Orders++

		for k, v := range o.Attributes {
			f, ok := v.(float64)
			if !ok || chart.MetricKey(k).Builtin() {
				continue
			}
			if p.Extra == nil {
				p.Extra = make(map[string]any)
			}
			sum, _ := p.Extra[k].(float64)
			p.Extra[k] = sum + f
		}
	}
	return points
}
