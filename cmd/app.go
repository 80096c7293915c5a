package cmd

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/bisegni/grapharscan/pkg/config"
	"github.com/bisegni/grapharscan/pkg/database"
	"github.com/bisegni/grapharscan/pkg/engine"
	"github.com/bisegni/grapharscan/pkg/graph"
	"github.com/bisegni/grapharscan/pkg/graphar"
	"github.com/bisegni/grapharscan/pkg/logging"
	"github.com/bisegni/grapharscan/pkg/metrics"
	"github.com/bisegni/grapharscan/pkg/planner"
)

// app holds everything a command needs once flags and config are resolved.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *graph.FileStore
	catalog  *database.Catalog
	registry *prometheus.Registry
	closeLog func()
}

// flagKeys maps root persistent flags onto config keys.
var flagKeys = map[string]string{
	"workers":      "workers",
	"capacity":     "vector_capacity",
	"format":       "output.format",
	"pretty":       "output.pretty",
	"metrics-addr": "metrics.addr",
	"log-level":    "log.level",
}

func newApp(cmd *cobra.Command) (*app, error) {
	v, err := config.New(ConfigFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Root().PersistentFlags()
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Decode(v)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.SetupLogger(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		SeqURL: cfg.Log.SeqURL,
	})
	if err != nil {
		return nil, err
	}

	store, err := graph.NewFileStore(cfg.CacheChunks, logger)
	if err != nil {
		closeLog()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	catalog := database.NewCatalog()
	graphar.Register(catalog, store,
		graphar.WithLogger(logger),
		graphar.WithObserver(metrics.NewScanMetrics(registry)),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		catalog:  catalog,
		registry: registry,
		closeLog: closeLog,
	}, nil
}

// serveMetrics starts the /metrics endpoint when an address is configured.
func (a *app) serveMetrics(ctx context.Context) {
	if a.cfg.Metrics.Addr == "" {
		return
	}
	go func() {
		if err := metrics.Serve(ctx, a.cfg.Metrics.Addr, a.registry, a.logger); err != nil {
			a.logger.Error("metrics server failed", "error", err)
		}
	}()
}

func (a *app) settings() planner.Settings {
	return planner.Settings{
		Workers:        a.cfg.Workers,
		VectorCapacity: a.cfg.VectorCapacity,
		Logger:         a.logger,
	}
}

func (a *app) executor() *engine.Executor {
	return &engine.Executor{
		Format: a.cfg.Output.Format,
		Pretty: a.cfg.Output.Pretty,
	}
}

func (a *app) Close() {
	a.closeLog()
}
