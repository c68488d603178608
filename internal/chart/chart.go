package chart

import "errors"

// ErrNoData signals that a chart has nothing to draw.
var ErrNoData = errors.New("no chart data")

// Config is the input of a chart build.
type Config struct {
	Data      []TimeSeriesPoint `json:"data"`
	DataKey   MetricKey         `json:"dataKey"`
	Color     string            `json:"color"`
	TimeFrame TimeFrame         `json:"timeFrame"`
}

// Axis is a numeric axis domain.
type Axis struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// LineChart is everything a renderer needs to draw one series.
type LineChart struct {
	TimeFrame        TimeFrame      `json:"time_frame"`
	DataKey          MetricKey      `json:"data_key"`
	Points           []DisplayPoint `json:"points"`
	Labels           []string       `json:"labels"`
	Values           []*float64     `json:"values"`
	YAxis            Axis           `json:"y_axis"`
	MaxValue         float64        `json:"max_value"`
	HasPositiveValue bool           `json:"has_positive_value"`
	Tooltips         []Tooltip      `json:"tooltips"`
	Style            Style          `json:"style"`
}

// Build turns cfg into a chart model. It returns nil when there is no data,
// which renderers treat as "draw nothing".
//
// HasPositiveValue is reported on the model but does not stop a chart of
// all-zero values from being built.
func Build(cfg Config) *LineChart {
	if len(cfg.Data) == 0 {
		return nil
	}

	points := Normalize(cfg.Data, cfg.TimeFrame)
	maxValue := MaxValue(cfg.Data, cfg.DataKey)

	c := &LineChart{
		TimeFrame:        cfg.TimeFrame,
		DataKey:          cfg.DataKey,
		Points:           points,
		Labels:           make([]string, len(points)),
		Values:           make([]*float64, len(points)),
		YAxis:            Axis{Min: 0, Max: YAxisCeiling(maxValue)},
		MaxValue:         maxValue,
		HasPositiveValue: HasPositiveValue(cfg.Data, cfg.DataKey),
		Tooltips:         make([]Tooltip, len(points)),
		Style:            DefaultStyle(cfg.Color),
	}

	for i, p := range points {
		c.Labels[i] = p.TimeLabel
		if v, ok := cfg.DataKey.Lookup(p.TimeSeriesPoint); ok {
			c.Values[i] = Float(v)
		}
		tip, _ := FormatTooltip(Active{Point: p, Key: cfg.DataKey})
		c.Tooltips[i] = *tip
	}

	return c
}

// Len returns the number of points on the chart.
func (c *LineChart) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Points)
}

// Hover returns the hover state for the point at index i. Indexes outside the
// chart, and a nil chart, are Inactive.
func (c *LineChart) Hover(i int) HoverState {
	if i < 0 || i >= c.Len() {
		return Inactive{}
	}
	return Active{Point: c.Points[i], Key: c.DataKey}
}
