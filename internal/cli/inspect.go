package cli

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/niaga-platform/service-analytics/internal/chart"
)

func newInspectCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the labels, values and tooltips a chart would show",
		Long: `Inspect builds the chart model and prints it as a table, one row per point,
followed by the y axis domain.

Example:
  chartctl inspect -i series.json -m amount -t today`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInspect(cmd)
		},
	}

	cmd.Flags().StringP("input", "i", "-", "series JSON file, or - for stdin")
	cmd.Flags().StringP("metric", "m", "", "metric to plot")
	cmd.Flags().StringP("time-frame", "t", "", "time frame of the series: today, 7days or 30days")
	return cmd
}

func (a *app) runInspect(cmd *cobra.Command) error {
	cfg, err := readConfig(a.v.GetString("input"), cmd.InOrStdin(),
		a.v.GetString("metric"), a.v.GetString("time-frame"), "")
	if err != nil {
		return err
	}

	c := chart.Build(cfg)
	out := cmd.OutOrStdout()
	if c == nil {
		printStatus(out, warnColor, "No data points")
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header([]string{"#", "Interval", "Label", c.DataKey.ValueLabel(), "Tooltip"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	data := make([][]string, 0, c.Len())
	for i, p := range c.Points {
		value := "-"
		if v := c.Values[i]; v != nil {
			value = strconv.FormatFloat(*v, 'f', -1, 64)
		}
		data = append(data, []string{
			strconv.Itoa(i),
			p.TimeInterval,
			p.TimeLabel,
			value,
			c.Tooltips[i].Text(),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, _ = labelColor.Fprint(out, "Y axis: ")
	_, _ = fmt.Fprintf(out, "%s to %s (max %s)\n",
		formatAxis(c, c.YAxis.Min), formatAxis(c, c.YAxis.Max), formatAxis(c, c.MaxValue))
	if !c.HasPositiveValue {
		printStatus(out, warnColor, "Every value is zero or missing")
	}
	return nil
}

func formatAxis(c *chart.LineChart, v float64) string {
	if c.DataKey.Monetary() {
		return chart.FormatCurrency(v)
	}
	return chart.FormatPlain(v)
}
