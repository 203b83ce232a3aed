// Package cli contains all commands for weather-widget
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"weather-widget/config"
	"weather-widget/logger"
)

var version = "dev"

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

// ExitError carries a process exit code for failures already shown to the user
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// app holds state shared by every command of one invocation
type app struct {
	cfgFile string
	verbose bool
	noColor bool

	cfg    *config.Config
	logger *slog.Logger
}

// Execute runs the root command with ctx
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "weather-widget",
		Short: "Current weather and a 5-day forecast for any location",
		Long: `weather-widget looks up the current weather and a five day forecast
(one reading per day, taken at noon) from OpenWeatherMap.

Example usage:
  weather-widget search London        # Show current weather and forecast
  weather-widget search New York      # Multi-word locations need no quotes
  weather-widget theme toggle         # Switch between light and dark mode
  weather-widget serve --port 8080    # Serve the widget in a browser`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is .weather-widget.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newSearchCmd(a),
		newThemeCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// initConfig loads configuration and sets up the logger
func (a *app) initConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	level := cfg.Logging.Level
	if a.verbose {
		level = "debug"
	}
	a.logger, err = logger.New(level, logger.Format(cfg.Logging.Format), cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	slog.SetDefault(a.logger)

	a.logger.Debug("configuration loaded",
		"preferences_backend", cfg.Preferences.Backend,
		"forecast_timezone", cfg.Forecast.Timezone,
	)
	return nil
}

// IsExitError reports whether err carries an exit code and returns it
func IsExitError(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
