// Package render draws a chart.LineChart with one of the supported backends.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/niaga-platform/service-analytics/internal/chart"
)

// ErrUnsupportedFormat is returned for output formats no renderer handles.
var ErrUnsupportedFormat = errors.New("unsupported chart format")

// Format is a chart output format.
type Format string

// Output formats.
const (
	FormatJSON Format = "json"
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
)

// ParseFormat parses a format name case-insensitively. An empty name is JSON.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatPNG, FormatSVG, FormatHTML, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json; charset=utf-8"
	}
}

// Extension returns the file extension of the format, without a dot.
func (f Format) Extension() string {
	return string(f)
}

// Options control the output size. Zero values fall back to DefaultOptions.
type Options struct {
	Width      int
	Height     int
	HTMLHeight string
	Title      string
}

// DefaultOptions returns the dashboard card size.
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     320,
		HTMLHeight: "360px",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.HTMLHeight == "" {
		o.HTMLHeight = d.HTMLHeight
	}
	return o
}

// Renderer writes a chart to w. A nil chart writes nothing.
type Renderer interface {
	Render(w io.Writer, c *chart.LineChart, opts Options) error
}

// For returns the renderer for f.
func For(f Format) (Renderer, error) {
	switch f {
	case FormatJSON, "":
		return JSONRenderer{}, nil
	case FormatPNG:
		return NewPNGRenderer(), nil
	case FormatSVG:
		return NewSVGRenderer(), nil
	case FormatHTML:
		return HTMLRenderer{}, nil
	case FormatXLSX:
		return XLSXRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}
