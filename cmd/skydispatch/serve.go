package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mattjoyce/skydispatch/internal/backend"
	"github.com/mattjoyce/skydispatch/internal/config"
	"github.com/mattjoyce/skydispatch/internal/dispatch"
	"github.com/mattjoyce/skydispatch/internal/log"
	"github.com/mattjoyce/skydispatch/internal/metrics"
	"github.com/mattjoyce/skydispatch/internal/reply"
	"github.com/mattjoyce/skydispatch/internal/signature"
	"github.com/mattjoyce/skydispatch/internal/webhook"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the interaction webhook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	log.Setup(cfg.Service.LogLevel, cfg.Service.LogFormat)
	logger := log.WithComponent("main")
	logger.Info("skydispatch starting", "version", version, "driver", cfg.Store.Driver)

	verifier := signature.NewVerifier(cfg.Discord.PublicKey)
	if !verifier.Configured() {
		logger.Warn("public key missing or invalid; every interaction will fail verification",
			"env", config.EnvPublicKey)
	}

	stores := backend.Initialize(ctx, cfg.Store, log.WithComponent("backend"))
	defer func() {
		if err := stores.Close(); err != nil {
			logger.Warn("closing stores", "error", err)
		}
	}()

	prom := metrics.NewProm("skydispatch")
	prom.SetStoreReady(stores.Ready())

	dispatcher := dispatch.New(stores,
		dispatch.WithFormatter(reply.NewFormatter(cfg.Service.Footer)),
		dispatch.WithMetrics(prom),
	)
	logger.Info("dispatcher ready", "commands", dispatcher.Commands(), "store_ready", stores.Ready())

	whCfg, err := webhook.FromConfig(cfg)
	if err != nil {
		return err
	}
	server := webhook.New(whCfg, webhook.Deps{
		Verifier:       verifier,
		Dispatcher:     dispatcher,
		Stores:         stores,
		Metrics:        prom,
		MetricsHandler: prom.Handler(),
	}, log.WithComponent("webhook"))

	if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("skydispatch stopped")
	return nil
}
