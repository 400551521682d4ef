package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"scythe/internal/engine"
	"scythe/internal/engine/modules"
	"scythe/internal/metrics"
	"scythe/internal/server"
	"scythe/internal/settings"
)

var port int

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web randomizer and shared tables",
		RunE:  runServe,
	}
	serveCmd.Flags().IntVar(&port, "port", 8080, "Server port")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	catalog, err := engine.DefaultCatalog()
	if err != nil {
		return err
	}
	store, err := settings.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec, err := metrics.NewPrometheus(reg, "")
	if err != nil {
		return err
	}

	srv := server.New(cfg, server.Deps{
		Generator:      engine.NewGenerator(catalog, modules.Default(), nil),
		Settings:       store,
		Metrics:        rec,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Logger:         logger,
		Static:         static,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down", zap.Error(context.Cause(ctx)))
		return nil
	})
	return g.Wait()
}
