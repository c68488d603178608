package render

import (
	"fmt"
	"io"
	"math"
	"regexp"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/niaga-platform/service-analytics/internal/chart"
)

// samplesPerSegment is how finely a smoothed line is drawn between points.
const samplesPerSegment = 12

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// StaticRenderer draws a chart as an image with go-chart.
type StaticRenderer struct {
	provider gochart.RendererProvider
}

// NewPNGRenderer returns a renderer producing PNG images.
func NewPNGRenderer() StaticRenderer {
	return StaticRenderer{provider: gochart.PNG}
}

// NewSVGRenderer returns a renderer producing SVG documents.
func NewSVGRenderer() StaticRenderer {
	return StaticRenderer{provider: gochart.SVG}
}

// Render draws c into w. A nil chart writes nothing.
func (r StaticRenderer) Render(w io.Writer, c *chart.LineChart, opts Options) error {
	if c == nil || c.Len() == 0 {
		return nil
	}
	opts = opts.withDefaults()

	graph := buildGraph(c, opts)
	if err := graph.Render(r.provider, w); err != nil {
		return fmt.Errorf("render static chart: %w", err)
	}
	return nil
}

func buildGraph(c *chart.LineChart, opts Options) gochart.Chart {
	st := c.Style
	color := parseColor(st.Color, chart.DefaultColor)
	grid := parseColor(st.GridColor, "#e5e7eb")
	tickFont := gochart.Style{
		FontSize:  st.TickFontSize,
		FontColor: drawing.ColorFromHex("6b7280"),
	}

	var series []gochart.Series

	for i, seg := range segments(c.Values) {
		// A lone point has no line; its dot is drawn below.
		if len(seg[0]) < 2 {
			continue
		}
		xs, ys := monotoneCurve(seg[0], seg[1], samplesPerSegment)
		series = append(series, gochart.ContinuousSeries{
			Name: fmt.Sprintf("%s-%d", c.DataKey, i),
			Style: gochart.Style{
				StrokeColor: color,
				StrokeWidth: st.StrokeWidth,
				FillColor:   color.WithAlpha(uint8(math.Round(st.FillOpacity * 255))),
			},
			XValues: xs,
			YValues: ys,
		})
	}

	// Dots are a colored disc with a white disc on top, which reads as a
	// ring of DotStrokeWidth around a DotFill center.
	dotX, dotY := definedPoints(c.Values)
	if len(dotX) > 0 {
		series = append(series,
			gochart.ContinuousSeries{
				Name: "dot-ring",
				Style: gochart.Style{
					StrokeWidth: gochart.Disabled,
					DotColor:    color,
					DotWidth:    st.DotRadius + st.DotStrokeWidth/2,
				},
				XValues: dotX,
				YValues: dotY,
			},
			gochart.ContinuousSeries{
				Name: "dot-fill",
				Style: gochart.Style{
					StrokeWidth: gochart.Disabled,
					DotColor:    parseColor(st.DotFill, "#ffffff"),
					DotWidth:    st.DotRadius - st.DotStrokeWidth/2,
				},
				XValues: dotX,
				YValues: dotY,
			},
		)
	}

	n := float64(c.Len())
	series = append(series, gochart.ContinuousSeries{
		Name: "baseline",
		Style: gochart.Style{
			StrokeColor: parseColor(st.ReferenceColor, "#e5e7eb"),
			StrokeWidth: 1,
		},
		XValues: []float64{-0.5, n - 0.5},
		YValues: []float64{st.ReferenceValue, st.ReferenceValue},
	})

	return gochart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: gochart.Style{
			Padding: gochart.Box{
				Top:    st.Margin.Top,
				Right:  st.Margin.Right,
				Bottom: st.Margin.Bottom,
				Left:   st.Margin.Left + int(st.XPadding),
			},
		},
		XAxis: gochart.XAxis{
			Style:          tickFont,
			Ticks:          xTicks(c.Labels),
			GridMajorStyle: gochart.Style{Hidden: true},
			GridMinorStyle: gochart.Style{Hidden: true},
		},
		YAxis: gochart.YAxis{
			Style: gochart.Style{
				StrokeColor: drawing.ColorTransparent,
				FontSize:    tickFont.FontSize,
				FontColor:   tickFont.FontColor,
			},
			Ticks: yTicks(c.YAxis.Max, c.DataKey),
			GridMajorStyle: gochart.Style{
				StrokeColor:     grid,
				StrokeWidth:     1,
				StrokeDashArray: st.GridDash,
			},
			GridMinorStyle: gochart.Style{Hidden: true},
		},
		Series: series,
	}
}

// xTicks places one tick per point at its index, plus unlabeled ticks half a
// step outside both ends so the first and last points are not on the edge.
func xTicks(labels []string) []gochart.Tick {
	ticks := make([]gochart.Tick, 0, len(labels)+2)
	ticks = append(ticks, gochart.Tick{Value: -0.5})
	for i, l := range labels {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: l})
	}
	return append(ticks, gochart.Tick{Value: float64(len(labels)) - 0.5})
}

// yTicks returns nice ticks from zero to ceiling. The last tick always sits
// on the ceiling so the axis spans the whole domain.
func yTicks(ceiling float64, key chart.MetricKey) []gochart.Tick {
	format := chart.FormatPlain
	if key.Monetary() {
		format = chart.FormatCurrency
	}

	var ticks []gochart.Tick
	for _, v := range niceTicks(0, ceiling, 5) {
		if v > ceiling {
			break
		}
		ticks = append(ticks, gochart.Tick{Value: v, Label: format(v)})
	}
	if len(ticks) == 0 || ticks[len(ticks)-1].Value < ceiling {
		ticks = append(ticks, gochart.Tick{Value: ceiling, Label: format(ceiling)})
	}
	return ticks
}

// niceTicks returns about n values covering [min, max] on a 1/2/2.5/5 step.
func niceTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	mag := math.Pow(10, math.Floor(math.Log10((max-min)/float64(n-1))))
	step := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		candidate := c * mag
		count := math.Max(2, math.Ceil((max-min)/candidate))
		if score := math.Abs(count - float64(n)); score < bestScore {
			bestScore = score
			step = candidate
		}
	}

	start := math.Floor(min/step) * step
	end := math.Ceil(max/step) * step
	var out []float64
	for v := start; v <= end+step/2 && len(out) <= n+2; v += step {
		out = append(out, v)
	}
	return out
}

func definedPoints(values []*float64) ([]float64, []float64) {
	var xs, ys []float64
	for i, v := range values {
		if v == nil {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, *v)
	}
	return xs, ys
}

func parseColor(s, fallback string) drawing.Color {
	if !hexColor.MatchString(s) {
		s = fallback
	}
	return drawing.ColorFromHex(s)
}
