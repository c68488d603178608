package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/niaga-platform/service-analytics/internal/chart"
)

// readConfig reads chart input from path, or stdin for "-". The input is
// either a bare array of points or a full chart configuration object.
// Non-empty flag values override the object's fields.
func readConfig(path string, stdin io.Reader, metric, timeFrame, lineColor string) (chart.Config, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return chart.Config{}, fmt.Errorf("read input: %w", err)
	}

	var cfg chart.Config
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &cfg.Data); err != nil {
			return chart.Config{}, fmt.Errorf("decode series: %w", err)
		}
	} else if err := json.Unmarshal(trimmed, &cfg); err != nil {
		return chart.Config{}, fmt.Errorf("decode chart config: %w", err)
	}

	if metric != "" {
		cfg.DataKey = chart.MetricKey(metric)
	}
	if timeFrame != "" {
		cfg.TimeFrame = chart.TimeFrame(timeFrame)
	}
	if lineColor != "" {
		cfg.Color = lineColor
	}
	if cfg.DataKey == "" {
		cfg.DataKey = chart.Amount
	}
	if cfg.Color == "" {
		cfg.Color = chart.DefaultColor
	}
	return cfg, nil
}
