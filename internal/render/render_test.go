package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/niaga-platform/service-analytics/internal/chart"
)

func sampleChart() *chart.LineChart {
	return chart.Build(chart.Config{
		Data: []chart.TimeSeriesPoint{
			{TimeInterval: "2023-05-19", Amount: chart.Float(1000)},
			{TimeInterval: "2023-05-20"},
			{TimeInterval: "2023-05-21", Amount: chart.Float(1500)},
			{TimeInterval: "2023-05-22", Amount: chart.Float(400)},
			{TimeInterval: "2023-05-23", Amount: chart.Float(900)},
		},
		DataKey:   chart.Amount,
		Color:     "#16a34a",
		TimeFrame: chart.SevenDays,
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected Format
		wantErr  bool
	}{
		{in: "", expected: FormatJSON},
		{in: "json", expected: FormatJSON},
		{in: "PNG", expected: FormatPNG},
		{in: " svg ", expected: FormatSVG},
		{in: "html", expected: FormatHTML},
		{in: "xlsx", expected: FormatXLSX},
		{in: "gif", wantErr: true},
	}

	for _, tt := range tests {
		f, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnsupportedFormat)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.expected, f)
	}
}

func TestFor(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatPNG, FormatSVG, FormatHTML, FormatXLSX} {
		r, err := For(f)
		require.NoError(t, err)
		assert.NotNil(t, r)
	}

	_, err := For(Format("bmp"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRenderers_NilChartWritesNothing(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatPNG, FormatSVG, FormatHTML, FormatXLSX} {
		r, err := For(f)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, nil, Options{}), f)
		assert.Zero(t, buf.Len(), f)
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONRenderer{}.Render(&buf, sampleChart(), Options{}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "amount", got["data_key"])
	assert.Equal(t, []any{"05/19", "05/20", "05/21", "05/22", "05/23"}, got["labels"])
	assert.Equal(t, map[string]any{"min": 0.0, "max": 1800.0}, got["y_axis"])
}

func TestStaticRenderer_PNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPNGRenderer().Render(&buf, sampleChart(), Options{Width: 400, Height: 200}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")))
}

func TestStaticRenderer_SVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSVGRenderer().Render(&buf, sampleChart(), Options{}))
	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "05/21")
	assert.Contains(t, out, "₹1,800", "top y tick is the ceiling")
}

func TestStaticRenderer_SinglePoint(t *testing.T) {
	c := chart.Build(chart.Config{
		Data:      []chart.TimeSeriesPoint{{TimeInterval: "09:00", Units: chart.Float(3)}},
		DataKey:   chart.Units,
		TimeFrame: chart.Today,
	})

	var buf bytes.Buffer
	require.NoError(t, NewSVGRenderer().Render(&buf, c, Options{}))
	assert.Contains(t, buf.String(), "<svg")
}

func TestHTMLRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTMLRenderer{}.Render(&buf, sampleChart(), Options{Title: "Weekly sales"}))
	out := buf.String()

	assert.Contains(t, out, "<title>Weekly sales</title>")
	assert.Contains(t, out, "05/19")
	assert.Contains(t, out, "Sales Amount: ₹1,500")
	assert.Contains(t, out, "#16a34a")
	assert.Contains(t, out, `"-"`, "missing values leave a gap")
	assert.NotContains(t, out, "__f__")
}

func TestTooltipFunc_EscapesText(t *testing.T) {
	js := tooltipFunc([]chart.Tooltip{{Label: `<b>'x'\`, ValueLabel: "Units Sold", Value: "7"}})
	assert.NotContains(t, js, `"`)
	assert.Contains(t, js, "&lt;b&gt;&#39;x&#39;&#92;")
	assert.Contains(t, js, "Units Sold: 7")
}

func TestXLSXRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSXRenderer{}.Render(&buf, sampleChart(), Options{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue(SheetName, ref, excelize.Options{RawCellValue: true})
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Period", cell("A1"))
	assert.Equal(t, "Sales Amount", cell("C1"))
	assert.Equal(t, "05/19", cell("A2"))
	assert.Equal(t, "2023-05-19", cell("B2"))
	assert.Equal(t, "1000", cell("C2"))
	assert.Equal(t, "", cell("C3"))
	assert.Equal(t, "1500", cell("C4"))
	assert.Equal(t, "05/23", cell("A6"))
}

func TestMonotoneCurve(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{0, 10, 10, 2}

	ox, oy := monotoneCurve(xs, ys, 8)
	require.Len(t, ox, 3*8+1)
	require.Len(t, oy, len(ox))

	for i := range xs {
		assert.InDelta(t, ys[i], oy[i*8], 1e-9, "passes through point %d", i)
	}
	for i := 8; i <= 16; i++ {
		assert.InDelta(t, 10, oy[i], 1e-9, "flat segment stays flat")
	}
	for _, y := range oy {
		assert.GreaterOrEqual(t, y, 0.0)
		assert.LessOrEqual(t, y, 10.0)
	}
}

func TestMonotoneCurve_ShortInput(t *testing.T) {
	ox, oy := monotoneCurve([]float64{0, 1}, []float64{3, 4}, 8)
	assert.Equal(t, []float64{0, 1}, ox)
	assert.Equal(t, []float64{3, 4}, oy)
}

func TestSegments(t *testing.T) {
	v := func(f float64) *float64 { return &f }
	segs := segments([]*float64{v(1), v(2), nil, v(4), nil, nil})
	require.Len(t, segs, 2)
	assert.Equal(t, []float64{0, 1}, segs[0][0])
	assert.Equal(t, []float64{1, 2}, segs[0][1])
	assert.Equal(t, []float64{3}, segs[1][0])
}

func TestYTicks(t *testing.T) {
	ticks := yTicks(1800, chart.Amount)
	require.NotEmpty(t, ticks)
	assert.Equal(t, 0.0, ticks[0].Value)
	assert.Equal(t, 1800.0, ticks[len(ticks)-1].Value)
	assert.Equal(t, "₹1,800", ticks[len(ticks)-1].Label)

	ticks = yTicks(5, chart.Units)
	assert.Equal(t, "5", ticks[len(ticks)-1].Label)
}
