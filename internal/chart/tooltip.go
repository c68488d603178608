package chart

// HoverState is the charting surface's hover state: either Inactive or
// Active on one point.
type HoverState interface {
	hoverState()
}

// Inactive means no point is hovered.
type Inactive struct{}

// Active means Point is hovered while Key is plotted.
type Active struct {
	Point DisplayPoint
	Key   MetricKey
}

func (Inactive) hoverState() {}
func (Active) hoverState()   {}

// Tooltip is the text shown for a hovered point.
type Tooltip struct {
	Label      string `json:"label"`
	ValueLabel string `json:"value_label"`
	Value      string `json:"value"`
}

// Text returns the value line, e.g. "Revenue: ₹1,500".
func (t Tooltip) Text() string {
	return t.ValueLabel + ": " + t.Value
}

// FormatTooltip returns the tooltip for state. An inactive (or nil) state has
// no tooltip.
func FormatTooltip(state HoverState) (*Tooltip, bool) {
	active, ok := state.(Active)
	if !ok {
		return nil, false
	}

	v := active.Key.ValueOrZero(active.Point.TimeSeriesPoint)
	value := FormatPlain(v)
	if active.Key.Monetary() {
		value = FormatCurrency(v)
	}

	return &Tooltip{
		Label:      active.Point.TimeLabel,
		ValueLabel: active.Key.ValueLabel(),
		Value:      value,
	}, true
}
