package chart

// DefaultColor is used when a chart is built without a color.
const DefaultColor = "#2563eb"

// Margin is the space around the plot area, in px.
type Margin struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Style holds the visual parameters every renderer draws with.
type Style struct {
	Color           string    `json:"color"`
	Curve           string    `json:"curve"`
	StrokeWidth     float64   `json:"stroke_width"`
	DotRadius       float64   `json:"dot_radius"`
	DotStrokeWidth  float64   `json:"dot_stroke_width"`
	DotFill         string    `json:"dot_fill"`
	ActiveDotRadius float64   `json:"active_dot_radius"`
	FillOpacity     float64   `json:"fill_opacity"`
	Animate         bool      `json:"animate"`
	TickFontSize    float64   `json:"tick_font_size"`
	XPadding        float64   `json:"x_padding"`
	GridDash        []float64 `json:"grid_dash"`
	GridColor       string    `json:"grid_color"`
	ReferenceValue  float64   `json:"reference_value"`
	ReferenceColor  string    `json:"reference_color"`
	Margin          Margin    `json:"margin"`
}

// DefaultStyle returns the dashboard's line chart style in the given color.
func DefaultStyle(color string) Style {
	if color == "" {
		color = DefaultColor
	}
	return Style{
		Color:           color,
		Curve:           "monotone",
		StrokeWidth:     3,
		DotRadius:       6,
		DotStrokeWidth:  2,
		DotFill:         "#ffffff",
		ActiveDotRadius: 8,
		FillOpacity:     0.2,
		Animate:         true,
		TickFontSize:    12,
		XPadding:        10,
		GridDash:        []float64{3, 3},
		GridColor:       "#e5e7eb",
		ReferenceValue:  0,
		ReferenceColor:  "#e5e7eb",
		Margin:          Margin{Top: 10, Right: 30, Bottom: 30, Left: 0},
	}
}
