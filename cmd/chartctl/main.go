// chartctl renders and inspects sales over time charts from the command line.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/niaga-platform/service-analytics/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		_, _ = color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "chartctl: %v\n", err)
		os.Exit(1)
	}
}
