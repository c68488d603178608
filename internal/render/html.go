package render

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/niaga-platform/service-analytics/internal/chart"
)

// HTMLRenderer draws an interactive chart page with go-echarts.
type HTMLRenderer struct{}

// Render writes a standalone HTML page for c. A nil chart writes nothing.
func (HTMLRenderer) Render(w io.Writer, c *chart.LineChart, o Options) error {
	if c == nil || c.Len() == 0 {
		return nil
	}
	o = o.withDefaults()
	st := c.Style

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: pageTitle(o.Title, c),
			Width:     "100%",
			Height:    o.HTMLHeight,
		}),
		charts.WithAnimation(st.Animate),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "axis",
			Formatter: opts.FuncOpts(tooltipFunc(c.Tooltips)),
		}),
		charts.WithGridOpts(opts.Grid{
			Top:          strconv.Itoa(st.Margin.Top),
			Right:        strconv.Itoa(st.Margin.Right),
			Bottom:       strconv.Itoa(st.Margin.Bottom),
			Left:         strconv.Itoa(st.Margin.Left),
			ContainLabel: opts.Bool(true),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
			AxisTick:  &opts.AxisTick{Show: opts.Bool(false)},
			AxisLine:  &opts.AxisLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: st.GridColor}},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:     "value",
			Min:      c.YAxis.Min,
			Max:      c.YAxis.Max,
			AxisLine: &opts.AxisLine{Show: opts.Bool(false)},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
				LineStyle: &opts.LineStyle{
					Color: st.GridColor,
					Type:  "dashed",
				},
			},
		}),
	)

	line.SetXAxis(c.Labels)

	line.AddSeries(string(c.DataKey), lineData(c.Values),
		charts.WithLineChartOpts(opts.LineChart{
			Smooth:       opts.Bool(st.Curve == "monotone"),
			Symbol:       "circle",
			SymbolSize:   st.DotRadius * 2,
			ShowSymbol:   opts.Bool(true),
			ConnectNulls: opts.Bool(false),
		}),
		charts.WithLineStyleOpts(opts.LineStyle{
			Color: st.Color,
			Width: float32(st.StrokeWidth),
		}),
		charts.WithItemStyleOpts(opts.ItemStyle{
			Color:       st.DotFill,
			BorderColor: st.Color,
			BorderWidth: float32(st.DotStrokeWidth),
		}),
		charts.WithAreaStyleOpts(opts.AreaStyle{
			Color:   st.Color,
			Opacity: opts.Float(float32(st.FillOpacity)),
		}),
	)

	baseline := make([]opts.LineData, c.Len())
	for i := range baseline {
		baseline[i] = opts.LineData{Value: st.ReferenceValue}
	}
	line.AddSeries("baseline", baseline,
		charts.WithLineChartOpts(opts.LineChart{
			Symbol:     "none",
			ShowSymbol: opts.Bool(false),
		}),
		charts.WithLineStyleOpts(opts.LineStyle{
			Color: st.ReferenceColor,
			Width: 1,
		}),
	)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render html chart: %w", err)
	}
	return nil
}

func pageTitle(title string, c *chart.LineChart) string {
	if title != "" {
		return title
	}
	return c.DataKey.ValueLabel()
}

// lineData maps values to echarts points. "-" is echarts' empty value, so
// missing points leave a gap.
func lineData(values []*float64) []opts.LineData {
	out := make([]opts.LineData, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = opts.LineData{Value: "-"}
			continue
		}
		out[i] = opts.LineData{Value: *v}
	}
	return out
}

// tooltipFunc builds the tooltip formatter. It only uses single quotes, the
// option JSON escapes double quotes inside function bodies.
func tooltipFunc(tips []chart.Tooltip) string {
	var b strings.Builder
	b.WriteString("function (params) { var tips = [")
	for i, t := range tips {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "['%s','%s']", jsText(t.Label), jsText(t.ValueLabel+": "+t.Value))
	}
	b.WriteString("]; if (!params || !params.length) { return ''; }")
	b.WriteString(" var t = tips[params[0].dataIndex]; if (!t) { return ''; }")
	b.WriteString(" return '<b>' + t[0] + '</b><br/>' + t[1]; }")
	return b.String()
}

func jsText(s string) string {
	s = html.EscapeString(s)
	return strings.ReplaceAll(s, `\`, "&#92;")
}
