// Package cli implements chartctl, a command line tool that renders and
// inspects sales over time charts from exported series data.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	applogger "github.com/niaga-platform/service-analytics/internal/logger"
)

// EnvPrefix prefixes the environment variables that mirror chartctl flags.
const EnvPrefix = "CHARTCTL"

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	labelColor   = color.New(color.FgCyan)
)

// app carries what every subcommand needs.
type app struct {
	v      *viper.Viper
	logger *zap.Logger
}

// NewRootCommand returns the chartctl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "chartctl",
		Short:         "Render and inspect sales over time charts.",
		Long:          `chartctl draws the dashboard's sales over time line chart from a JSON series export.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	root.PersistentFlags().Bool("verbose", false, "log debug details to stderr")
	root.PersistentFlags().String("color", "auto", "colorize output: auto, yes or no")

	root.AddCommand(newRenderCommand(a), newInspectCommand(a))
	return root
}

// setup binds flags and environment to viper and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	var bindErr error
	bind := func(f *pflag.Flag) {
		if err := a.v.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = err
		}
	}
	cmd.Flags().VisitAll(bind)
	cmd.InheritedFlags().VisitAll(bind)
	if bindErr != nil {
		return fmt.Errorf("bind flags: %w", bindErr)
	}

	switch strings.ToLower(a.v.GetString("color")) {
	case "yes", "true", "always":
		color.NoColor = false
	case "no", "false", "never":
		color.NoColor = true
	}

	if a.v.GetBool("verbose") {
		logger, err := applogger.New("development")
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		a.logger = logger
	}
	return nil
}

func printStatus(w io.Writer, c *color.Color, format string, args ...any) {
	_, _ = c.Fprintf(w, format, args...)
	_, _ = fmt.Fprintln(w)
}
