// RodCut plans how to cut required lengths from stock rods (aluminium
// profiles, tubes, bars) with as little waste as possible.
//
// Build:
//
//	go build -o rodcut ./cmd/rodcut
//
// Usage:
//
//	rodcut plan --stock 600x10 --cuts 55.5x50 --kerf 0.5 --out plan.pdf
//	rodcut serve --addr :8080 --history ~/.rodcut/history.db
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/piwi3910/RodCut/internal/model"
	"github.com/piwi3910/RodCut/internal/project"
)

var version = "dev"

var (
	flagConfig   string
	flagLogLevel string
	flagJSONLog  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rodcut",
		Short: "Plan rod cuts from stock with minimal waste",
		Long: `RodCut computes a cutting plan for a list of required lengths from the
available stock rods and leftovers, charging one saw kerf per cut. Lengths
are unitless; use the same unit everywhere.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", project.DefaultConfigPath(), "Config file path")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagJSONLog, "json-log", false, "Log as JSON instead of console text")

	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(estimateCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(templateCmd())
	rootCmd.AddCommand(inventoryCmd())
	rootCmd.AddCommand(backupCmd())

	if err := rootCmd.Execute(); err != nil {
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger from the global flags. Console output
// goes to stderr so stdout stays clean for reports.
func newLogger(forceJSON bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(flagLogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	if flagJSONLog || forceJSON {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func loadConfig() (model.AppConfig, error) {
	cfg, err := project.LoadAppConfig(flagConfig)
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
