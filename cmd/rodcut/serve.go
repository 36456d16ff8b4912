package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RodCut/internal/history"
	"github.com/piwi3910/RodCut/internal/model"
	"github.com/piwi3910/RodCut/internal/server"
	"github.com/piwi3910/RodCut/internal/telemetry"
)

func serveCmd() *cobra.Command {
	var (
		addr      string
		historyDB string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serves POST /api/plan, /api/estimate and /api/compare, the run history
under /api/runs and GET /healthz. Traces are exported when
OTEL_EXPORTER_OTLP_ENDPOINT is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(true)
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.ListenAddr
			}
			if !cmd.Flags().Changed("history") {
				historyDB = cfg.HistoryDB
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			shutdown, err := telemetry.Setup(ctx, "rodcut", version)
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Warn().Err(err).Msg("telemetry shutdown")
				}
			}()

			settings := model.DefaultSettings()
			cfg.ApplyToSettings(&settings)

			srvCfg := server.Config{
				Settings:   settings,
				Report:     reportOptions(cfg, "", "", 0),
				ChromePath: cfg.ChromeExecutable,
				Logger:     log,
			}
			if historyDB != "" {
				store, err := history.Open(historyDB)
				if err != nil {
					return err
				}
				defer store.Close()
				srvCfg.History = store
				log.Info().Str("db", historyDB).Msg("run history enabled")
			}

			return server.New(srvCfg).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address (default from config)")
	cmd.Flags().StringVar(&historyDB, "history", "", "SQLite run history path (default from config)")
	return cmd
}
