package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flowintel/flowintel/internal/api"
	"github.com/flowintel/flowintel/internal/app"
	"github.com/flowintel/flowintel/internal/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the FlowIntel API server",
	Long: `Start the HTTP API. SIGHUP re-reads profile documents when the
profile source is localfs or s3.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	bootLog := newLogger("")
	cfg, err := loadConfig(bootLog)
	if err != nil {
		return err
	}

	log := newLogger(cfg.Log.Level)
	defer log.Sync()

	ctx := cmd.Context()

	repo, n, err := app.OpenRepository(ctx, cfg.Profiles, log)
	if err != nil {
		return fmt.Errorf("opening profiles: %w", err)
	}

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
		reg.SetProfilesLoaded(n)
	}

	a := app.New(cfg, repo, log, reg)

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	server, err := api.NewServer(api.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		MetricsPath: metricsPath,
	}, api.Dependencies{App: a, Metrics: reg}, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	log.Info("starting FlowIntel server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("profiles_source", cfg.Profiles.Source),
		zap.Int("profiles", n),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)

	for {
		select {
		case err := <-errCh:
			return err
		case sig := <-signals:
			if sig == syscall.SIGHUP {
				reload(ctx, a, log)
				continue
			}

			log.Info("shutting down FlowIntel server", zap.String("signal", sig.String()))

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			return server.Shutdown(shutdownCtx)
		}
	}
}

func reload(ctx context.Context, a *app.App, log *zap.Logger) {
	n, err := a.Reload(ctx)
	if err != nil {
		log.Warn("profile reload failed", zap.Error(err))
		return
	}
	log.Info("profiles reloaded", zap.Int("count", n))
}
