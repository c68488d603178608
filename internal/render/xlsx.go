package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/niaga-platform/service-analytics/internal/chart"
)

// SheetName is the worksheet holding the series and its chart.
const SheetName = "Sales"

// inrNumFmt groups rupee amounts in lakhs and crores.
const inrNumFmt = `[>=10000000]"₹"##\,##\,##\,##0;[>=100000]"₹"##\,##\,##0;"₹"#,##0`

// XLSXRenderer writes the series to a workbook with a native line chart.
type XLSXRenderer struct{}

// Render writes a workbook for c. A nil chart writes nothing.
func (XLSXRenderer) Render(w io.Writer, c *chart.LineChart, o Options) error {
	if c == nil || c.Len() == 0 {
		return nil
	}
	o = o.withDefaults()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []interface{}{"Period", "Interval", c.DataKey.ValueLabel()}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, p := range c.Points {
		var value interface{}
		if v := c.Values[i]; v != nil {
			value = *v
		}
		row := []interface{}{p.TimeLabel, p.TimeInterval, value}
		if err := f.SetSheetRow(SheetName, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	last := c.Len() + 1
	if err := styleSheet(f, c, last); err != nil {
		return err
	}

	minY, maxY := c.YAxis.Min, c.YAxis.Max
	title := o.Title
	if title == "" {
		title = c.DataKey.ValueLabel()
	}
	err := f.AddChart(SheetName, "E2", &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$C$1", SheetName),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", SheetName, last),
			Values:     fmt.Sprintf("%s!$C$2:$C$%d", SheetName, last),
			Line: excelize.ChartLine{
				Smooth: c.Style.Curve == "monotone",
				Width:  c.Style.StrokeWidth,
			},
			Marker: excelize.ChartMarker{
				Symbol: "circle",
				Size:   int(c.Style.DotRadius),
			},
		}},
		Title:     []excelize.RichTextRun{{Text: title}},
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: uint(o.Width), Height: uint(o.Height)},
		YAxis: excelize.ChartAxis{
			MajorGridLines: true,
			Minimum:        &minY,
			Maximum:        &maxY,
		},
		ShowBlanksAs: "gap",
	})
	if err != nil {
		return fmt.Errorf("add chart: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func styleSheet(f *excelize.File, c *chart.LineChart, last int) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "C1", bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", "C", 16); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if !c.DataKey.Monetary() {
		return nil
	}
	numFmt := inrNumFmt
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("currency style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "C2", fmt.Sprintf("C%d", last), money); err != nil {
		return fmt.Errorf("apply currency style: %w", err)
	}
	return nil
}
