// Package app wires configuration, logging, the storage medium, metrics and
// the storefront service together.
package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/natefinch/lumberjack.v2"

	"storefront/internal/config"
	"storefront/internal/core"
	"storefront/internal/kv"
	"storefront/internal/logging"
	"storefront/internal/store"
)

// Application owns the resources behind one storefront service.
type Application struct {
	cfg      config.Config
	logger   logging.Logger
	medium   kv.Medium
	registry *prometheus.Registry
	trace    *lumberjack.Logger
	service  *core.Service
}

// Options tweak construction; tests use them to skip the configured medium
// or logger.
type Options struct {
	Medium kv.Medium
	Logger logging.Logger
}

// New opens the configured medium and the service on top of it.
func New(ctx context.Context, cfg config.Config, opts Options) (*Application, error) {
	a := &Application{cfg: cfg, logger: opts.Logger, medium: opts.Medium}
	if a.logger == nil {
		zl, err := logging.New(cfg.Logging())
		if err != nil {
			return nil, err
		}
		a.logger = zl
	}
	if a.medium == nil {
		medium, err := kv.Open(ctx, cfg.Storage())
		if err != nil {
			return nil, fmt.Errorf("open %s medium: %w", cfg.Driver, err)
		}
		a.medium = medium
	}

	a.registry = prometheus.NewRegistry()
	metrics, err := core.NewPrometheusMetricsRecorder(a.registry, cfg.MetricsNamespace)
	if err != nil {
		_ = a.medium.Close()
		return nil, err
	}
	ids, err := core.NewSnowflakeIDs(cfg.NodeID)
	if err != nil {
		_ = a.medium.Close()
		return nil, err
	}

	svcOpts := []core.Option{
		core.WithLogger(a.logger),
		core.WithMetrics(metrics),
		core.WithIDGenerator(ids),
		core.WithStrictAdminLogin(cfg.StrictAdminLogin),
	}
	if cfg.TraceFile != "" {
		a.trace = &lumberjack.Logger{
			Filename:   cfg.TraceFile,
			MaxSize:    20,
			MaxBackups: 5,
			MaxAge:     14,
		}
		svcOpts = append(svcOpts, core.WithTracer(core.NewJSONTracer(a.trace, cfg.TraceRetain)))
	}

	a.service, err = core.Open(ctx,
		store.NewDurable(a.medium, cfg.SnapshotKey, a.logger),
		store.NewSession(a.medium, a.logger),
		svcOpts...,
	)
	if err != nil {
		a.closeTrace()
		_ = a.medium.Close()
		return nil, err
	}
	a.logger.Info("storefront ready",
		"driver", a.medium.Driver(),
		"strict_admin_login", cfg.StrictAdminLogin,
		"trace_file", cfg.TraceFile,
	)
	return a, nil
}

// Service returns the storefront service.
func (a *Application) Service() *core.Service { return a.service }

// Config returns the configuration the application was built from.
func (a *Application) Config() config.Config { return a.cfg }

// Logger returns the application logger.
func (a *Application) Logger() logging.Logger { return a.logger }

// Registry returns the metrics registry the service reports to.
func (a *Application) Registry() *prometheus.Registry { return a.registry }

// WriteMetrics writes the registry in the node exporter textfile format.
func (a *Application) WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, a.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Close releases the medium and flushes the logger and trace file.
func (a *Application) Close() error {
	if s, ok := a.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	a.closeTrace()
	return a.medium.Close()
}

func (a *Application) closeTrace() {
	if a.trace == nil {
		return
	}
	if err := a.trace.Close(); err != nil {
		a.logger.Warn("close trace file failed", "error", err)
	}
}
