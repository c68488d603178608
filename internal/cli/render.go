package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/niaga-platform/service-analytics/internal/chart"
	"github.com/niaga-platform/service-analytics/internal/render"
)

func newRenderCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw a chart from a JSON series file",
		Long: `Render draws the sales over time chart as PNG, SVG, HTML, XLSX or JSON.

Examples:
  # Weekly revenue as a PNG
  chartctl render -i series.json -m revenue -t 7days -o revenue.png

  # Interactive HTML from stdin
  cat today.json | chartctl render -t today -f html -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runRender(cmd)
		},
	}

	cmd.Flags().StringP("input", "i", "-", "series JSON file, or - for stdin")
	cmd.Flags().StringP("metric", "m", "", "metric to plot (units, amount, revenue, orders or an extra field)")
	cmd.Flags().StringP("time-frame", "t", "", "time frame of the series: today, 7days or 30days")
	cmd.Flags().String("line-color", "", "line color, e.g. #2563eb")
	cmd.Flags().StringP("format", "f", "", "output format: png, svg, html, xlsx or json (default from --output, else png)")
	cmd.Flags().StringP("output", "o", "", "output file, or - for stdout (default sales-chart.<format>)")
	cmd.Flags().Int("width", 0, "image width in px")
	cmd.Flags().Int("height", 0, "image height in px")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command) error {
	cfg, err := readConfig(a.v.GetString("input"), cmd.InOrStdin(),
		a.v.GetString("metric"), a.v.GetString("time-frame"), a.v.GetString("line-color"))
	if err != nil {
		return err
	}

	output := a.v.GetString("output")
	format, err := resolveFormat(a.v.GetString("format"), output)
	if err != nil {
		return err
	}
	if output == "" {
		output = "sales-chart." + format.Extension()
	}

	a.logger.Debug("rendering chart",
		zap.Int("points", len(cfg.Data)),
		zap.String("metric", cfg.DataKey.String()),
		zap.String("time_frame", cfg.TimeFrame.String()),
		zap.String("format", string(format)),
	)

	c := chart.Build(cfg)
	if c == nil {
		printStatus(cmd.ErrOrStderr(), warnColor, "No data points, nothing rendered")
		return nil
	}

	r, err := render.For(format)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	opts := render.Options{Width: a.v.GetInt("width"), Height: a.v.GetInt("height")}
	if err := r.Render(&buf, c, opts); err != nil {
		return err
	}

	if output == "-" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printStatus(cmd.ErrOrStderr(), successColor, "Wrote %d point %s chart to %s", c.Len(), format, output)
	return nil
}

// resolveFormat uses the explicit format, then the output extension, then PNG.
func resolveFormat(explicit, output string) (render.Format, error) {
	if explicit != "" {
		return render.ParseFormat(explicit)
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" && output != "-" {
		return render.ParseFormat(ext)
	}
	return render.FormatPNG, nil
}
