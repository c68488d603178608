package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/niaga-platform/service-analytics/internal/chart"
)

// JSONRenderer writes the chart model itself, for clients that draw it.
type JSONRenderer struct{}

// Render encodes c as JSON. A nil chart writes nothing.
func (JSONRenderer) Render(w io.Writer, c *chart.LineChart, _ Options) error {
	if c == nil {
		return nil
	}
	if err := json.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	return nil
}
